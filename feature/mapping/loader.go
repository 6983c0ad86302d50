package mapping

import (
	"context"
	"fmt"

	"objectsync/core/events"
	"objectsync/core/model"
	"objectsync/core/refresh"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Loader derives bindings for one mapping Config.
type Loader struct {
	cfg     Config
	manager *refresh.Manager
	logger  *zap.Logger

	bindings *lru.Cache[string, *Binding]
	sf       singleflight.Group
}

// NewLoader validates cfg and creates a loader.
func NewLoader(cfg Config, manager *refresh.Manager, logger *zap.Logger) (*Loader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, ok := manager.Registry().Model(cfg.JoinModel); !ok {
		return nil, fmt.Errorf("mapping %s: %w: %s", cfg.Name, refresh.ErrUnknownModel, cfg.JoinModel)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxBindings <= 0 {
		cfg.MaxBindings = DefaultMaxBindings
	}

	l := &Loader{
		cfg:     cfg,
		manager: manager,
		logger:  logger.With(zap.String("mapping", cfg.Name)),
	}
	// Evicted bindings release their watch and subscriptions.
	bindings, err := lru.NewWithEvict(cfg.MaxBindings, func(key string, b *Binding) {
		l.logger.Debug("Binding evicted", zap.String("owner", key))
		b.Close()
	})
	if err != nil {
		return nil, fmt.Errorf("mapping %s: %w", cfg.Name, err)
	}
	l.bindings = bindings
	return l, nil
}

// Config returns the mapping description.
func (l *Loader) Config() Config {
	return l.cfg
}

// Bind returns the live binding of owner, attaching one on first use. The loader keeps
// at most MaxBindings of them; the least recently bound one is closed to make room.
func (l *Loader) Bind(ctx context.Context, owner *model.Object) (*Binding, error) {
	key := model.Key(owner)
	if b, ok := l.bindings.Get(key); ok {
		return b, nil
	}

	v, err, _ := l.sf.Do(key, func() (interface{}, error) {
		if b, ok := l.bindings.Get(key); ok {
			return b, nil
		}

		b, err := l.Attach(ctx, owner)
		if err != nil {
			return nil, err
		}
		l.bindings.Add(key, b)
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Binding), nil
}

// Len returns the number of bindings held by Bind.
func (l *Loader) Len() int {
	return l.bindings.Len()
}

func (l *Loader) forget(b *Binding) {
	key := model.Key(b.owner)
	if cur, ok := l.bindings.Peek(key); ok && cur == b {
		l.bindings.Remove(key)
	}
}

// Attach creates a binding for owner: it watches the owner's join list, subscribes to
// the join model's lifecycle events and populates the binding from the current list.
func (l *Loader) Attach(ctx context.Context, owner *model.Object) (*Binding, error) {
	if owner == nil {
		return nil, fmt.Errorf("mapping %s: nil owner", l.cfg.Name)
	}
	if l.cfg.OwnerModel != "" && owner.ModelType() != l.cfg.OwnerModel {
		return nil, fmt.Errorf("mapping %s: owner %s is not a %s", l.cfg.Name, model.Key(owner), l.cfg.OwnerModel)
	}

	b := newBinding(l, owner)
	ch := l.manager.Registry().Events(l.cfg.JoinModel)

	b.cancels = append(b.cancels,
		owner.Watch(l.cfg.ListAttr, func(model.Change) { l.scheduleRefresh(b) }),
		ch.Subscribe(events.Created, func(items []model.Reference) { l.onCreated(b, items) }),
		ch.Subscribe(events.Destroyed, func(items []model.Reference) { l.onRemoved(b, items) }),
		ch.Subscribe(events.Orphaned, func(items []model.Reference) { l.onRemoved(b, items) }),
	)

	if err := l.RefreshStubs(ctx, b); err != nil {
		b.Close()
		return nil, err
	}
	l.logger.Debug("Binding attached", zap.String("owner", model.Key(owner)))
	return b, nil
}

// IsValidMapping reports whether join links b's owner to an acceptable option.
func (l *Loader) IsValidMapping(b *Binding, join model.Reference) bool {
	obj, ok := l.reifyObject(join)
	if !ok {
		return false
	}

	side, ok := l.attrRef(obj, l.cfg.ObjectAttr)
	if !ok {
		return false
	}
	if !model.Same(l.manager.Cache().Reify(side), b.owner) {
		return false
	}

	if l.cfg.OptionModel != "" {
		opt, ok := l.attrRef(obj, l.cfg.OptionAttr)
		if !ok || l.manager.Cache().Reify(opt).ModelType() != l.cfg.OptionModel {
			return false
		}
	}
	return true
}

// InsertInstancesFromMappings adds the reified option of every join to b. Joins
// without an option reference are skipped.
func (l *Loader) InsertInstancesFromMappings(b *Binding, joins []model.Reference) {
	changed := false
	for _, ref := range joins {
		join := l.manager.Cache().Reify(ref)
		obj, ok := join.(*model.Object)
		if !ok {
			continue
		}
		opt, ok := l.attrRef(obj, l.cfg.OptionAttr)
		if !ok {
			l.logger.Debug("Skipping join without option", zap.String("join", model.Key(join)))
			continue
		}
		if b.insert(l.manager.Cache().Reify(opt), join) {
			changed = true
		}
	}
	if changed {
		b.notify()
	}
}

// RemoveInstanceFromMapping removes the node produced by join from b.
func (l *Loader) RemoveInstanceFromMapping(b *Binding, join model.Reference) {
	if b.remove(l.manager.Cache().Reify(join)) {
		b.notify()
	}
}

// RefreshStubs refreshes every join stub listed by the owner in one batch, then the
// options they point at, and inserts the valid results. An owner without the list
// attribute has no readable joins and yields nothing.
func (l *Loader) RefreshStubs(ctx context.Context, b *Binding) error {
	raw, ok := b.owner.Get(l.cfg.ListAttr)
	if !ok {
		return nil
	}
	stubs, _ := model.References(raw)
	if len(stubs) == 0 {
		return nil
	}

	joins, err := l.refresh(ctx, stubs)
	if err != nil {
		return fmt.Errorf("mapping %s: refresh joins: %w", l.cfg.Name, err)
	}

	var valid, options []model.Reference
	for _, join := range joins {
		obj, ok := join.(*model.Object)
		if !ok {
			continue
		}
		opt, ok := l.attrRef(obj, l.cfg.OptionAttr)
		if !ok {
			// No read access to the option side.
			l.logger.Debug("Skipping restricted join", zap.String("join", model.Key(join)))
			continue
		}
		if l.cfg.OptionModel != "" && opt.ModelType() != l.cfg.OptionModel {
			continue
		}
		valid = append(valid, join)
		options = append(options, opt)
	}

	if _, err := l.refresh(ctx, options); err != nil {
		return fmt.Errorf("mapping %s: refresh options: %w", l.cfg.Name, err)
	}
	l.InsertInstancesFromMappings(b, valid)
	return nil
}

func (l *Loader) refresh(ctx context.Context, refs []model.Reference) ([]model.Reference, error) {
	rq := l.manager.NewRefreshQueue()
	if _, err := rq.Enqueue(refs, false); err != nil {
		return nil, err
	}
	return rq.Trigger(l.manager.Debounce()).Wait(ctx)
}

// scheduleRefresh reloads stubs off the notifying goroutine, which may be a fetch
// completing inside the refresh layer.
func (l *Loader) scheduleRefresh(b *Binding) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.pending.Add(1)
	b.mu.Unlock()

	go func() {
		defer b.pending.Done()
		if err := l.RefreshStubs(context.Background(), b); err != nil {
			l.logger.Warn("Stub refresh failed", zap.String("owner", model.Key(b.owner)), zap.Error(err))
		}
	}()
}

func (l *Loader) onCreated(b *Binding, items []model.Reference) {
	var valid []model.Reference
	for _, item := range items {
		if l.IsValidMapping(b, item) {
			valid = append(valid, item)
		}
	}
	if len(valid) > 0 {
		l.InsertInstancesFromMappings(b, valid)
	}
}

func (l *Loader) onRemoved(b *Binding, items []model.Reference) {
	for _, item := range items {
		l.RemoveInstanceFromMapping(b, item)
	}
}

func (l *Loader) reifyObject(ref model.Reference) (*model.Object, bool) {
	if ref == nil {
		return nil, false
	}
	obj, ok := l.manager.Cache().Reify(ref).(*model.Object)
	return obj, ok
}

func (l *Loader) attrRef(obj *model.Object, attr string) (model.Reference, bool) {
	v, ok := obj.Get(attr)
	if !ok {
		return nil, false
	}
	ref, ok := v.(model.Reference)
	return ref, ok && ref != nil
}
