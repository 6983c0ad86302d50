package mapping

import (
	"encoding/json"

	"objectsync/core/model"
)

// MappingNode is one step of the chain that produced a MappedResult.
// It is either Base or Indirect.
type MappingNode interface {
	mappingNode()
}

// Base marks the owner of the binding itself.
type Base struct{}

func (Base) mappingNode() {}

// MarshalJSON renders Base as "self".
func (Base) MarshalJSON() ([]byte, error) {
	return []byte(`"self"`), nil
}

// Indirect is a hop through one join record.
type Indirect struct {
	Join     model.Reference `json:"join"`
	Children []MappingNode   `json:"children"`
}

func (Indirect) mappingNode() {}

// MappedResult pairs an instance with the mappings that produced it.
type MappedResult struct {
	Instance model.Reference `json:"instance"`
	Mappings []MappingNode   `json:"mappings"`
}

// MarshalJSON renders the join as a stub so results stay shallow.
func (n Indirect) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Join     model.Ref     `json:"join"`
		Children []MappingNode `json:"children"`
	}{Join: model.RefOf(n.Join), Children: n.Children})
}

func (r *MappedResult) clone() MappedResult {
	return MappedResult{
		Instance: r.Instance,
		Mappings: append([]MappingNode(nil), r.Mappings...),
	}
}

// joinIndex returns the position of the Indirect node for join, or -1.
func (r *MappedResult) joinIndex(join model.Reference) int {
	for i, node := range r.Mappings {
		if in, ok := node.(Indirect); ok && model.Same(in.Join, join) {
			return i
		}
	}
	return -1
}
