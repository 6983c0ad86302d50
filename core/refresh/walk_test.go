package refresh

import (
	"context"
	"errors"
	"testing"

	"objectsync/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func peopleModels(roleErr error) []model.Model {
	person := model.Func("Person", func(ctx context.Context, q model.Query) ([]model.Record, error) {
		recs := make([]model.Record, 0, len(q.IDIn))
		for _, id := range q.IDIn {
			recs = append(recs, model.Record{"id": id, "name": "person-" + id})
		}
		return recs, nil
	})
	userRole := model.Func("UserRole", func(ctx context.Context, q model.Query) ([]model.Record, error) {
		recs := make([]model.Record, 0, len(q.IDIn))
		for _, id := range q.IDIn {
			rec := model.Record{"id": id}
			if id == "1" {
				rec["role"] = map[string]any{"type": "Role", "id": 10}
			}
			recs = append(recs, rec)
		}
		return recs, nil
	})
	role := model.Func("Role", func(ctx context.Context, q model.Query) ([]model.Record, error) {
		if roleErr != nil {
			return nil, roleErr
		}
		recs := make([]model.Record, 0, len(q.IDIn))
		for _, id := range q.IDIn {
			recs = append(recs, model.Record{"id": id, "name": "role-" + id})
		}
		return recs, nil
	})
	return []model.Model{person, userRole, role}
}

func seedPerson(t *testing.T, mgr *Manager) *model.Object {
	t.Helper()
	obj, err := mgr.Cache().Store("Person", model.Record{
		"id": 1,
		"user_roles": []any{
			map[string]any{"type": "UserRole", "id": 1},
			map[string]any{"type": "UserRole", "id": 2},
		},
		"manager": map[string]any{"type": "Person", "id": 2},
	})
	require.NoError(t, err)
	return obj
}

func TestRefreshAll_ListFanOutWithBrokenBranch(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	mgr := newTestManagerWithLogger(t, zap.New(core), Config{DebounceMS: 1}, peopleModels(nil)...)
	root := seedPerson(t, mgr)

	res, err := mgr.RefreshAll(context.Background(), root, []string{"user_roles", "role"}, false)
	require.NoError(t, err)

	assert.True(t, res.Multiple)
	assert.Nil(t, res.Single())
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Role", res.Items[0].ModelType())
	assert.Equal(t, "10", res.Items[0].ModelID())
	assert.True(t, model.IsLoaded(res.Items[0]))

	broken := logs.FilterMessage("Broken refresh path").All()
	require.Len(t, broken, 1)
	assert.Equal(t, "UserRole", broken[0].ContextMap()["model"])
	assert.Equal(t, "2", broken[0].ContextMap()["id"])
}

func TestRefreshAll_SingularHop(t *testing.T) {
	mgr := newTestManager(t, Config{DebounceMS: 1}, peopleModels(nil)...)
	root := seedPerson(t, mgr)

	res, err := mgr.RefreshAll(context.Background(), root, []string{"manager"}, false)
	require.NoError(t, err)

	item := res.Single()
	require.NotNil(t, item)
	assert.Equal(t, "2", item.ModelID())
	obj, ok := item.(*model.Object)
	require.True(t, ok)
	name, _ := obj.Get("name")
	assert.Equal(t, "person-2", name)
}

func TestRefreshAll_EmptyPathReturnsRoot(t *testing.T) {
	mgr := newTestManager(t, Config{}, peopleModels(nil)...)
	root := seedPerson(t, mgr)

	res, err := mgr.RefreshAll(context.Background(), model.Ref{Type: "Person", ID: "1"}, nil, false)
	require.NoError(t, err)
	assert.Same(t, root, res.Single())
}

func TestRefreshAll_UncachedRootIsBrokenPath(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	mgr := newTestManagerWithLogger(t, zap.New(core), Config{}, peopleModels(nil)...)

	res, err := mgr.RefreshAll(context.Background(), model.Ref{Type: "Person", ID: "9"}, []string{"manager"}, false)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, 1, logs.FilterMessage("Broken refresh path").Len())
}

func TestRefreshAll_PropagatesFetchFailure(t *testing.T) {
	boom := errors.New("role backend down")
	mgr := newTestManager(t, Config{DebounceMS: 1}, peopleModels(boom)...)
	root := seedPerson(t, mgr)

	_, err := mgr.RefreshAll(context.Background(), root, []string{"user_roles", "role"}, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "Role", fetchErr.Model)
}

func TestRefreshAll_ScalarHopIsBrokenPath(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	mgr := newTestManagerWithLogger(t, zap.New(core), Config{DebounceMS: 1}, peopleModels(nil)...)
	_, err := mgr.Cache().Store("Person", model.Record{"id": 1, "name": "Ada", "user_roles": []any{}})
	require.NoError(t, err)
	root := model.Ref{Type: "Person", ID: "1"}

	res, err := mgr.RefreshAll(context.Background(), root, []string{"name", "role"}, false)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	broken := logs.FilterMessage("Broken refresh path").All()
	require.Len(t, broken, 1)
	assert.Equal(t, "name", broken[0].ContextMap()["property"])

	res, err = mgr.RefreshAll(context.Background(), root, []string{"user_roles", "role"}, false)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, 1, logs.FilterMessage("Broken refresh path").Len())
}
