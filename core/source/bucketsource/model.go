package bucketsource

import (
	"context"
	"encoding/json"
	"fmt"
	"path"

	"objectsync/core/model"
	"objectsync/core/storage"

	"github.com/minio/minio-go/v7"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Source reads records for any number of types out of one bucket.
type Source struct {
	client storage.Client
	bucket string
	cfg    Config
	sf     singleflight.Group
}

// New creates a bucket source.
func New(client storage.Client, bucket string, cfg Config) *Source {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 8
	}
	return &Source{client: client, bucket: bucket, cfg: cfg}
}

// Verify checks that the bucket is reachable.
func (s *Source) Verify(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", s.bucket)
	}
	return nil
}

// Model returns the model.Model serving typ from this bucket.
func (s *Source) Model(typ string) model.Model {
	return &Model{source: s, typ: typ}
}

// Key returns the object key of a record.
func (s *Source) Key(typ, id string) string {
	return path.Join(s.cfg.Prefix, typ, id+".json")
}

// Model fetches records of one type.
type Model struct {
	source *Source
	typ    string
}

// Name implements model.Model.
func (m *Model) Name() string {
	return m.typ
}

// FindAll implements model.Model. Records come back in query order; missing ids are skipped.
func (m *Model) FindAll(ctx context.Context, q model.Query) ([]model.Record, error) {
	found := make([]model.Record, len(q.IDIn))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.source.cfg.Concurrency)
	for i, id := range q.IDIn {
		g.Go(func() error {
			rec, err := m.source.read(gctx, m.source.Key(m.typ, id))
			if err != nil {
				return err
			}
			found[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]model.Record, 0, len(found))
	for _, rec := range found {
		if rec != nil {
			records = append(records, rec)
		}
	}
	return records, nil
}

// read fetches and decodes one document. Concurrent reads of the same key share a request.
func (s *Source) read(ctx context.Context, key string) (model.Record, error) {
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
		if err != nil {
			if storage.IsNotFound(err) {
				return model.Record(nil), nil
			}
			return nil, fmt.Errorf("get %s: %w", key, err)
		}
		defer obj.Close()

		var rec model.Record
		if err := json.NewDecoder(obj).Decode(&rec); err != nil {
			// minio reports a missing key on first read, not on GetObject.
			if storage.IsNotFound(err) {
				return model.Record(nil), nil
			}
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
		return rec, nil
	})
	if err != nil {
		return nil, err
	}
	rec, _ := v.(model.Record)
	if rec == nil {
		return nil, nil
	}
	// Callers mutate records; shared results must not alias.
	out := make(model.Record, len(rec))
	for k, val := range rec {
		out[k] = val
	}
	return out, nil
}
