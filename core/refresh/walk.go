package refresh

import (
	"context"

	"objectsync/core/model"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// WalkResult is the outcome of RefreshAll.
type WalkResult struct {
	// Items holds the reified objects reached at the end of the path, in traversal order.
	Items []model.Reference
	// Multiple is set when any hop along the path was list-valued.
	Multiple bool
}

// Single returns the only item of a walk over singular hops, or nil.
func (r *WalkResult) Single() model.Reference {
	if r.Multiple || len(r.Items) != 1 {
		return nil
	}
	return r.Items[0]
}

// RefreshAll refreshes the objects reachable from root along path. Each hop is refreshed
// before the next is read; list-valued hops fan out in parallel and are joined before
// returning. A root missing the next property ends that branch with a warning.
func (m *Manager) RefreshAll(ctx context.Context, root model.Reference, path []string, force bool) (*WalkResult, error) {
	if len(path) == 0 {
		return &WalkResult{Items: []model.Reference{m.cache.Reify(root)}}, nil
	}
	prop, rest := path[0], path[1:]

	var (
		refs     []model.Reference
		multiple bool
	)
	obj, ok := m.cache.Reify(root).(*model.Object)
	if ok {
		var value any
		if value, ok = obj.Get(prop); ok {
			refs, multiple = model.References(value)
		}
	}
	// An empty list ends the branch quietly; a missing or non-reference value is broken.
	if !ok || (len(refs) == 0 && !multiple) {
		m.logger.Warn("Broken refresh path",
			zap.String("model", root.ModelType()),
			zap.String("id", root.ModelID()),
			zap.String("property", prop),
			zap.Strings("remaining", rest),
		)
		return &WalkResult{}, nil
	}

	rq := m.NewRefreshQueue()
	if _, err := rq.Enqueue(refs, force); err != nil {
		return nil, err
	}
	items, err := rq.Trigger(m.cfg.Debounce()).Wait(ctx)
	if err != nil {
		return nil, err
	}

	if len(rest) == 0 {
		return &WalkResult{Items: items, Multiple: multiple}, nil
	}

	results := make([]*WalkResult, len(items))
	g, gctx := errgroup.WithContext(ctx)
	for i, item := range items {
		g.Go(func() error {
			res, err := m.RefreshAll(gctx, item, rest, force)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &WalkResult{Multiple: multiple}
	for _, res := range results {
		out.Items = append(out.Items, res.Items...)
		out.Multiple = out.Multiple || res.Multiple
	}
	return out, nil
}
