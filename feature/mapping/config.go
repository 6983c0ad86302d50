package mapping

import "fmt"

// Config describes one owner-to-option relationship through a join model.
type Config struct {
	// Name identifies the mapping in the HTTP API.
	Name string `mapstructure:"name"`
	// OwnerModel restricts Attach to owners of this type when set.
	OwnerModel string `mapstructure:"owner_model"`
	// JoinModel is the type tag of the join records.
	JoinModel string `mapstructure:"join_model"`
	// ObjectAttr is the join attribute referencing the owner.
	ObjectAttr string `mapstructure:"object_attr"`
	// OptionAttr is the join attribute referencing the related object.
	OptionAttr string `mapstructure:"option_attr"`
	// OptionModel restricts options to this type when set.
	OptionModel string `mapstructure:"option_model"`
	// ListAttr is the owner attribute holding the join stubs.
	ListAttr string `mapstructure:"list_attr"`
	// MaxBindings caps the bindings kept by Bind. 0 means DefaultMaxBindings.
	MaxBindings int `mapstructure:"max_bindings"`
}

// DefaultMaxBindings is the binding cap used when MaxBindings is unset.
const DefaultMaxBindings = 1024

// Validate checks that the required attributes are set.
func (c Config) Validate() error {
	switch {
	case c.Name == "":
		return fmt.Errorf("mapping: name is required")
	case c.JoinModel == "":
		return fmt.Errorf("mapping %s: join_model is required", c.Name)
	case c.ObjectAttr == "":
		return fmt.Errorf("mapping %s: object_attr is required", c.Name)
	case c.OptionAttr == "":
		return fmt.Errorf("mapping %s: option_attr is required", c.Name)
	case c.ListAttr == "":
		return fmt.Errorf("mapping %s: list_attr is required", c.Name)
	}
	return nil
}
