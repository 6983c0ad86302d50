package mocks

import (
	"context"

	"objectsync/core/model"

	"github.com/stretchr/testify/mock"
)

// Model is a mock implementation of model.Model
type Model struct {
	mock.Mock
	Type string
}

// NewModel creates a mock serving the given type tag.
func NewModel(typ string) *Model {
	return &Model{Type: typ}
}

func (m *Model) Name() string {
	return m.Type
}

func (m *Model) FindAll(ctx context.Context, q model.Query) ([]model.Record, error) {
	args := m.Called(ctx, q)
	if recs, ok := args.Get(0).([]model.Record); ok {
		return recs, args.Error(1)
	}
	return nil, args.Error(1)
}
