package cmd

import (
	"bytes"
	"context"
	"testing"
	"time"

	"objectsync/core/identity"
	"objectsync/core/model"
	"objectsync/core/refresh"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseRefs(t *testing.T) {
	refs, err := parseRefs([]string{"Person:1", "Group:7"})
	require.NoError(t, err)
	assert.Equal(t, []model.Ref{{Type: "Person", ID: "1"}, {Type: "Group", ID: "7"}}, refs)

	_, err = parseRefs([]string{"Person"})
	assert.Error(t, err)
}

func TestRunRefresh(t *testing.T) {
	reg := model.NewRegistry()
	calls := 0
	reg.Register(model.Func("Person", func(_ context.Context, q model.Query) ([]model.Record, error) {
		calls++
		out := make([]model.Record, 0, len(q.IDIn))
		for _, id := range q.IDIn {
			out = append(out, model.Record{"id": id, "name": "p" + id})
		}
		return out, nil
	}))
	mgr := refresh.NewManager(reg, identity.New(), zap.NewNop(), nil, refresh.Config{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	items, err := runRefresh(ctx, mgr, []model.Ref{{Type: "Person", ID: "2"}, {Type: "Person", ID: "1"}}, false)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "2", items[0].ModelID())
	assert.Equal(t, "1", items[1].ModelID())
	assert.Equal(t, 1, calls)

	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, items))
	assert.Contains(t, buf.String(), `"name": "p2"`)
}
