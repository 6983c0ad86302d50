package sqlsource

import (
	"context"
	"fmt"

	"objectsync/core/database"
	"objectsync/core/model"
	"objectsync/core/utils"

	"gorm.io/gorm"
)

// Model fetches records of one type from its table.
type Model struct {
	db    *gorm.DB
	table Table
}

// New creates a Model for table.
func New(db *gorm.DB, table Table) *Model {
	return &Model{db: db, table: table}
}

// Name implements model.Model.
func (m *Model) Name() string {
	return m.table.Type
}

// Verify checks that the table and every mapped column exist.
func (m *Model) Verify() error {
	missing, err := database.MissingColumns(m.db, m.table.Name, m.table.Columns()...)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("table %s is missing columns %v", m.table.Name, missing)
	}
	for _, rel := range m.table.HasMany {
		missing, err := database.MissingColumns(m.db, rel.Table, rel.idColumn(), rel.ForeignKey)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return fmt.Errorf("table %s is missing columns %v", rel.Table, missing)
		}
	}
	return nil
}

// FindAll implements model.Model with one IN query plus one query per has-many relation.
func (m *Model) FindAll(ctx context.Context, q model.Query) ([]model.Record, error) {
	if len(q.IDIn) == 0 {
		return nil, nil
	}

	idCol := m.table.idColumn()
	var rows []map[string]any
	err := m.db.WithContext(ctx).
		Table(m.table.Name).
		Where(idCol+" IN ?", q.IDIn).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", m.table.Name, err)
	}

	refs := make(map[string]Ref, len(m.table.Refs))
	for _, ref := range m.table.Refs {
		refs[ref.Column] = ref
	}

	records := make([]model.Record, 0, len(rows))
	byID := make(map[string]model.Record, len(rows))
	for _, row := range rows {
		rec := make(model.Record, len(row))
		for col, v := range row {
			v = scalar(v)
			switch ref, isRef := refs[col]; {
			case col == idCol:
				rec["id"] = v
			case isRef:
				rec[ref.Attr] = stub(ref.Type, v)
			default:
				rec[col] = v
			}
		}
		id := utils.ToString(rec["id"])
		byID[id] = rec
		records = append(records, rec)
	}

	for _, rel := range m.table.HasMany {
		if err := m.loadHasMany(ctx, rel, q.IDIn, byID); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func (m *Model) loadHasMany(ctx context.Context, rel HasMany, ids []string, byID map[string]model.Record) error {
	childID := rel.idColumn()
	var rows []map[string]any
	err := m.db.WithContext(ctx).
		Table(rel.Table).
		Select(childID+", "+rel.ForeignKey).
		Where(rel.ForeignKey+" IN ?", ids).
		Order(childID).
		Find(&rows).Error
	if err != nil {
		return fmt.Errorf("query %s: %w", rel.Table, err)
	}

	// Records with no children still get an empty list.
	for _, rec := range byID {
		rec[rel.Attr] = []any{}
	}
	for _, row := range rows {
		parent, ok := byID[utils.ToString(scalar(row[rel.ForeignKey]))]
		if !ok {
			continue
		}
		parent[rel.Attr] = append(parent[rel.Attr].([]any), stub(rel.Type, scalar(row[childID])))
	}
	return nil
}

func stub(typ string, id any) any {
	if id == nil {
		return nil
	}
	return map[string]any{"type": typ, "id": utils.ToString(id)}
}

// scalar turns driver byte slices into strings.
func scalar(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
