package sqlsource

// Table maps one model type onto a database table.
type Table struct {
	// Type is the model type tag served by the table.
	Type string `mapstructure:"type"`
	// Name is the table name.
	Name string `mapstructure:"table"`
	// IDColumn holds the record id. Defaults to "id".
	IDColumn string `mapstructure:"id_column"`
	// Refs rewrite foreign key columns into reference attributes.
	Refs []Ref `mapstructure:"refs"`
	// HasMany load list-valued reference attributes from child tables.
	HasMany []HasMany `mapstructure:"has_many"`
}

// Ref turns Column into the reference attribute Attr pointing at Type.
type Ref struct {
	Column string `mapstructure:"column"`
	Attr   string `mapstructure:"attr"`
	Type   string `mapstructure:"type"`
}

// HasMany fills Attr with references to the Type rows of Table whose ForeignKey
// points back at the record.
type HasMany struct {
	Attr       string `mapstructure:"attr"`
	Table      string `mapstructure:"table"`
	ForeignKey string `mapstructure:"foreign_key"`
	Type       string `mapstructure:"type"`
	// IDColumn of the child table. Defaults to "id".
	IDColumn string `mapstructure:"id_column"`
}

func (t Table) idColumn() string {
	if t.IDColumn == "" {
		return "id"
	}
	return t.IDColumn
}

func (h HasMany) idColumn() string {
	if h.IDColumn == "" {
		return "id"
	}
	return h.IDColumn
}

// Columns returns the columns of Name that the mapping reads.
func (t Table) Columns() []string {
	cols := []string{t.idColumn()}
	for _, ref := range t.Refs {
		cols = append(cols, ref.Column)
	}
	return cols
}
