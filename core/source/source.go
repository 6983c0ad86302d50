package source

import (
	"context"
	"fmt"

	"objectsync/core/model"
	"objectsync/core/source/bucketsource"
	"objectsync/core/source/httpsource"
	"objectsync/core/source/sqlsource"
	"objectsync/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the connections a source may need. Unused ones may be nil.
type Deps struct {
	DB      *gorm.DB
	Storage storage.Client
	Bucket  string
	Logger  *zap.Logger
}

// Register builds the configured models and adds them to reg.
func Register(ctx context.Context, cfg Config, deps Deps, reg *model.Registry) error {
	if !cfg.IsValidKind() {
		return fmt.Errorf("unsupported source kind %q", cfg.Kind)
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var models []model.Model
	switch cfg.Kind {
	case KindSQL:
		if deps.DB == nil {
			return fmt.Errorf("sql source needs a database connection")
		}
		if len(cfg.Tables) == 0 {
			return fmt.Errorf("sql source has no tables configured")
		}
		for _, table := range cfg.Tables {
			m := sqlsource.New(deps.DB, table)
			if err := m.Verify(); err != nil {
				return fmt.Errorf("model %s: %w", table.Type, err)
			}
			models = append(models, m)
		}

	case KindBucket:
		if deps.Storage == nil {
			return fmt.Errorf("bucket source needs a storage client")
		}
		src := bucketsource.New(deps.Storage, deps.Bucket, cfg.Bucket)
		if err := src.Verify(ctx); err != nil {
			return err
		}
		for _, typ := range cfg.Types {
			models = append(models, src.Model(typ))
		}

	case KindHTTP:
		for _, typ := range cfg.Types {
			models = append(models, httpsource.New(typ, cfg.HTTP))
		}
	}

	if len(models) == 0 {
		return fmt.Errorf("%s source serves no types", cfg.Kind)
	}
	for _, m := range models {
		reg.Register(m)
		logger.Info("Registered model", zap.String("model", m.Name()), zap.String("source", cfg.Kind))
	}
	return nil
}

// Check verifies that one backing store is reachable and shaped as configured.
type Check func(ctx context.Context) error

// Checks returns the verifications of the configured source, keyed by what they cover:
// the model type for sql tables, "bucket" for the bucket source. The http source has none.
func Checks(cfg Config, deps Deps) map[string]Check {
	checks := make(map[string]Check)
	switch cfg.Kind {
	case KindSQL:
		if deps.DB == nil {
			return checks
		}
		for _, table := range cfg.Tables {
			m := sqlsource.New(deps.DB, table)
			checks[table.Type] = func(context.Context) error { return m.Verify() }
		}
	case KindBucket:
		if deps.Storage == nil {
			return checks
		}
		src := bucketsource.New(deps.Storage, deps.Bucket, cfg.Bucket)
		checks[KindBucket] = src.Verify
	}
	return checks
}
