package refresh

import (
	"context"
	"testing"
	"time"

	"objectsync/core/identity"
	"objectsync/core/model"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestManager(t *testing.T, cfg Config, models ...model.Model) *Manager {
	t.Helper()
	return newTestManagerWithLogger(t, zap.NewNop(), cfg, models...)
}

func newTestManagerWithLogger(t *testing.T, logger *zap.Logger, cfg Config, models ...model.Model) *Manager {
	t.Helper()
	reg := model.NewRegistry()
	for _, m := range models {
		reg.Register(m)
	}
	return NewManager(reg, identity.New(), logger, nil, cfg)
}

func ref(typ, id string) model.Ref {
	return model.Ref{Type: typ, ID: id}
}

// echoModel returns one record per requested id after an optional delay.
func echoModel(typ string, delay time.Duration) model.Model {
	return model.Func(typ, func(ctx context.Context, q model.Query) ([]model.Record, error) {
		if delay > 0 {
			time.Sleep(delay)
		}
		recs := make([]model.Record, 0, len(q.IDIn))
		for _, id := range q.IDIn {
			recs = append(recs, model.Record{"id": id, "name": typ + "-" + id})
		}
		return recs, nil
	})
}

func waitFuture(t *testing.T, f *Future) ([]model.Reference, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	items, err := f.Wait(ctx)
	require.NotErrorIs(t, err, context.DeadlineExceeded)
	return items, err
}
