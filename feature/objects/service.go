package objects

import (
	"context"
	"errors"
	"fmt"

	"objectsync/core/events"
	"objectsync/core/model"
	"objectsync/core/refresh"
	"objectsync/feature/mapping"

	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when a fetch completes without the requested object.
	ErrNotFound = errors.New("object not found")
	// ErrUnknownMapping is returned for mapping names without a loader.
	ErrUnknownMapping = errors.New("unknown mapping")
	// ErrInvalidEvent is returned for event names other than created, destroyed, orphaned.
	ErrInvalidEvent = errors.New("invalid event")
)

// Service handles object operations.
type Service struct {
	manager *refresh.Manager
	loaders map[string]*mapping.Loader
	logger  *zap.Logger
}

// NewService creates a new objects service.
func NewService(manager *refresh.Manager, loaders []*mapping.Loader, logger *zap.Logger) *Service {
	byName := make(map[string]*mapping.Loader, len(loaders))
	for _, l := range loaders {
		byName[l.Config().Name] = l
	}
	return &Service{
		manager: manager,
		loaders: byName,
		logger:  logger,
	}
}

// Refresh resolves refs through one RefreshQueue and returns them in order.
func (s *Service) Refresh(ctx context.Context, refs []model.Ref, force bool) ([]model.Reference, error) {
	return s.resolve(ctx, refs, force)
}

func (s *Service) resolve(ctx context.Context, items any, force bool) ([]model.Reference, error) {
	rq := s.manager.NewRefreshQueue()
	if _, err := rq.Enqueue(items, force); err != nil {
		return nil, err
	}
	return rq.Trigger(s.manager.Debounce()).Wait(ctx)
}

// Get returns the canonical, loaded object for (typ, id).
func (s *Service) Get(ctx context.Context, typ, id string, force bool) (*model.Object, error) {
	items, err := s.Refresh(ctx, []model.Ref{{Type: typ, ID: id}}, force)
	if err != nil {
		return nil, err
	}
	obj, ok := items[0].(*model.Object)
	if !ok || !obj.IsLoaded() {
		return nil, fmt.Errorf("%w: %s:%s", ErrNotFound, typ, id)
	}
	return obj, nil
}

// Walk refreshes the objects reachable from root along path.
func (s *Service) Walk(ctx context.Context, root model.Ref, path []string, force bool) (*refresh.WalkResult, error) {
	start, err := s.Get(ctx, root.Type, root.ID, force)
	if err != nil {
		return nil, err
	}
	return s.manager.RefreshAll(ctx, start, path, force)
}

// Bindings returns the mapped results of the owner (typ, id) under the named mapping.
func (s *Service) Bindings(ctx context.Context, name, typ, id string) ([]mapping.MappedResult, error) {
	l, ok := s.loaders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMapping, name)
	}
	owner, err := s.Get(ctx, typ, id, false)
	if err != nil {
		return nil, err
	}
	b, err := l.Bind(ctx, owner)
	if err != nil {
		return nil, err
	}

	// Options announced by events may still be stubs.
	results := b.Results()
	instances := make([]model.Reference, len(results))
	for i, r := range results {
		instances[i] = r.Instance
	}
	loaded, err := s.resolve(ctx, instances, false)
	if err != nil {
		return nil, err
	}
	for i := range results {
		results[i].Instance = loaded[i]
	}
	return results, nil
}

// Publish announces a lifecycle event for records of typ. Created records carrying
// fields are stored as-is; bare ids are fetched first. The published references are
// returned.
func (s *Service) Publish(ctx context.Context, typ string, event events.Event, records []model.Record) ([]model.Reference, error) {
	if !event.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEvent, event)
	}
	if _, ok := s.manager.Registry().Model(typ); !ok {
		return nil, fmt.Errorf("%w: %s", refresh.ErrUnknownModel, typ)
	}

	cache := s.manager.Cache()
	refs := make([]model.Reference, 0, len(records))
	var stubs []model.Ref
	for _, rec := range records {
		id, err := rec.ID()
		if err != nil {
			return nil, err
		}
		if event == events.Created && hasFields(rec) {
			obj, err := cache.Store(typ, rec)
			if err != nil {
				return nil, err
			}
			refs = append(refs, obj)
			continue
		}
		ref := model.Ref{Type: typ, ID: id}
		if event == events.Created {
			stubs = append(stubs, ref)
		}
		refs = append(refs, ref)
	}

	if len(stubs) > 0 {
		if _, err := s.Refresh(ctx, stubs, true); err != nil {
			return nil, err
		}
	}

	refs = cache.ReifyAll(refs)
	s.manager.Registry().Events(typ).Publish(event, refs...)
	s.logger.Debug("Published lifecycle event",
		zap.String("model", typ),
		zap.String("event", string(event)),
		zap.Int("records", len(refs)),
	)
	return refs, nil
}

func hasFields(rec model.Record) bool {
	for k := range rec {
		if k != "id" && k != "type" {
			return true
		}
	}
	return false
}
