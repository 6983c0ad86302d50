package bucketsource

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"objectsync/core/model"
	"objectsync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func doc(s string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(s))
}

func TestModel_FindAll(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "records", "data/Foo/1.json", mock.Anything).
		Return(doc(`{"id": 1, "name": "one", "bar": {"type": "Bar", "id": 3}}`), nil)
	client.On("GetObject", mock.Anything, "records", "data/Foo/2.json", mock.Anything).
		Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})
	client.On("GetObject", mock.Anything, "records", "data/Foo/3.json", mock.Anything).
		Return(doc(`{"id": "3", "name": "three"}`), nil)

	src := New(client, "records", Config{Prefix: "data", Concurrency: 2})
	m := src.Model("Foo")
	assert.Equal(t, "Foo", m.Name())

	records, err := m.FindAll(context.Background(), model.Query{IDIn: []string{"1", "2", "3"}})
	require.NoError(t, err)
	require.Len(t, records, 2)

	id, _ := records[0].ID()
	assert.Equal(t, "1", id)
	assert.Equal(t, "one", records[0]["name"])
	assert.Equal(t, map[string]any{"type": "Bar", "id": float64(3)}, records[0]["bar"])

	id, _ = records[1].ID()
	assert.Equal(t, "3", id)
	client.AssertExpectations(t)
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }
func (r failingReader) Close() error             { return nil }

func TestModel_FindAllMissingOnRead(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "records", "records/Foo/9.json", mock.Anything).
		Return(failingReader{err: minio.ErrorResponse{Code: "NoSuchKey"}}, nil)

	records, err := New(client, "records", Config{Prefix: "records"}).Model("Foo").
		FindAll(context.Background(), model.Query{IDIn: []string{"9"}})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestModel_FindAllErrors(t *testing.T) {
	t.Run("Transport", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "records", mock.Anything, mock.Anything).
			Return(nil, errors.New("connection refused"))

		_, err := New(client, "records", Config{}).Model("Foo").
			FindAll(context.Background(), model.Query{IDIn: []string{"1"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("Decode", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "records", mock.Anything, mock.Anything).
			Return(doc(`{not json`), nil)

		_, err := New(client, "records", Config{}).Model("Foo").
			FindAll(context.Background(), model.Query{IDIn: []string{"1"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode")
	})
}

func TestSource_Verify(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "records").Return(true, nil).Once()
	client.On("BucketExists", mock.Anything, "records").Return(false, nil).Once()

	src := New(client, "records", Config{})
	assert.NoError(t, src.Verify(context.Background()))
	assert.ErrorContains(t, src.Verify(context.Background()), "does not exist")
}

func TestSource_Key(t *testing.T) {
	src := New(new(mocks.Client), "records", Config{Prefix: "objects/"})
	assert.Equal(t, "objects/Person/12.json", src.Key("Person", "12"))
}
