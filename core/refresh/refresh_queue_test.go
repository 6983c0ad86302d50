package refresh

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"objectsync/core/model"
	"objectsync/core/model/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// TestRefreshQueue_EndToEnd resolves a mixed batch of Foo and Bar references.
func TestRefreshQueue_EndToEnd(t *testing.T) {
	foo := mocks.NewModel("Foo")
	foo.On("FindAll", mock.Anything, model.Query{IDIn: []string{"1", "2"}}).
		Return([]model.Record{{"id": 1, "name": "foo1"}, {"id": 2, "name": "foo2"}}, nil).Once()
	bar := mocks.NewModel("Bar")
	bar.On("FindAll", mock.Anything, model.Query{IDIn: []string{"1"}}).
		Return([]model.Record{{"id": "1", "name": "bar1"}}, nil).Once()

	mgr := newTestManager(t, Config{DebounceMS: 5}, foo, bar)
	input := []model.Reference{ref("Foo", "1"), ref("Foo", "2"), ref("Bar", "1")}

	rq := mgr.NewRefreshQueue()
	_, err := rq.Enqueue(input, false)
	require.NoError(t, err)
	assert.Len(t, rq.Queues(), 2)

	items, err := waitFuture(t, rq.Trigger(mgr.Debounce()))
	require.NoError(t, err)
	require.Len(t, items, 3)

	for i, want := range input {
		assert.Equal(t, want.ModelType(), items[i].ModelType())
		assert.Equal(t, want.ModelID(), items[i].ModelID())
		assert.True(t, model.IsLoaded(items[i]))
		cached, ok := mgr.Cache().Lookup(want.ModelType(), want.ModelID())
		require.True(t, ok)
		assert.Same(t, cached, items[i])
	}

	assert.Equal(t, 3, mgr.Cache().Len())
	assert.Equal(t, RefreshCompleted, rq.State())
	foo.AssertExpectations(t)
	bar.AssertExpectations(t)
}

func TestRefreshQueue_EnqueueAfterTriggerIsNoop(t *testing.T) {
	foo := mocks.NewModel("Foo")
	foo.On("FindAll", mock.Anything, model.Query{IDIn: []string{"1"}}).
		Return([]model.Record{{"id": "1"}}, nil).Once()
	mgr := newTestManager(t, Config{}, foo)

	rq := mgr.NewRefreshQueue()
	_, err := rq.Enqueue(ref("Foo", "1"), false)
	require.NoError(t, err)
	assert.Equal(t, RefreshIdle, rq.State())

	f := rq.Trigger(0)
	got, err := rq.Enqueue(ref("Foo", "2"), false)
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.Len(t, rq.Objects(), 1)
	assert.Same(t, f, rq.Trigger(0))

	_, err = waitFuture(t, f)
	require.NoError(t, err)
	foo.AssertExpectations(t)
}

func TestRefreshQueue_DedupAcrossQueues(t *testing.T) {
	foo := mocks.NewModel("Foo")
	foo.On("FindAll", mock.Anything, model.Query{IDIn: []string{"1"}}).
		Return([]model.Record{{"id": "1"}}, nil).Once()
	mgr := newTestManager(t, Config{}, foo)

	rq1 := mgr.NewRefreshQueue()
	rq2 := mgr.NewRefreshQueue()
	_, err := rq1.Enqueue(ref("Foo", "1"), false)
	require.NoError(t, err)
	_, err = rq2.Enqueue(ref("Foo", "1"), false)
	require.NoError(t, err)

	require.Len(t, mgr.Queues("Foo"), 1)
	assert.Same(t, rq1.Queues()[0], rq2.Queues()[0])

	items1, err := waitFuture(t, rq1.Trigger(5*time.Millisecond))
	require.NoError(t, err)
	items2, err := waitFuture(t, rq2.Trigger(5*time.Millisecond))
	require.NoError(t, err)

	assert.Same(t, items1[0], items2[0])
	foo.AssertNumberOfCalls(t, "FindAll", 1)
}

func TestRefreshQueue_ForceBypassesTriggeredQueue(t *testing.T) {
	release := make(chan struct{})
	foo := mocks.NewModel("Foo")
	foo.On("FindAll", mock.Anything, model.Query{IDIn: []string{"1"}}).
		Run(func(mock.Arguments) { <-release }).
		Return([]model.Record{{"id": "1"}}, nil)
	mgr := newTestManager(t, Config{}, foo)

	rq1 := mgr.NewRefreshQueue()
	_, err := rq1.Enqueue(ref("Foo", "1"), false)
	require.NoError(t, err)
	f1 := rq1.Trigger(0)
	first := rq1.Queues()[0]
	require.Eventually(t, func() bool { return first.State() == Triggered }, time.Second, time.Millisecond)

	rq2 := mgr.NewRefreshQueue()
	_, err = rq2.Enqueue(ref("Foo", "1"), false)
	require.NoError(t, err)
	assert.Same(t, first, rq2.Queues()[0])

	rq3 := mgr.NewRefreshQueue()
	_, err = rq3.Enqueue(ref("Foo", "1"), true)
	require.NoError(t, err)
	assert.NotSame(t, first, rq3.Queues()[0])

	close(release)
	for _, f := range []*Future{f1, rq2.Trigger(0), rq3.Trigger(0)} {
		_, err := waitFuture(t, f)
		require.NoError(t, err)
	}
	foo.AssertNumberOfCalls(t, "FindAll", 2)
}

func TestRefreshQueue_ForceRefreshesLoadedObject(t *testing.T) {
	foo := mocks.NewModel("Foo")
	foo.On("FindAll", mock.Anything, model.Query{IDIn: []string{"1"}}).
		Return([]model.Record{{"id": "1", "name": "fresh"}}, nil).Once()
	mgr := newTestManager(t, Config{}, foo)

	obj, err := mgr.Cache().Store("Foo", model.Record{"id": "1", "name": "stale"})
	require.NoError(t, err)

	rq := mgr.NewRefreshQueue()
	_, err = rq.Enqueue(obj, true)
	require.NoError(t, err)
	items, err := waitFuture(t, rq.Trigger(0))
	require.NoError(t, err)

	assert.Same(t, obj, items[0])
	name, _ := obj.Get("name")
	assert.Equal(t, "fresh", name)
}

func TestRefreshQueue_FastPathForLoadedObjects(t *testing.T) {
	foo := mocks.NewModel("Foo")
	mgr := newTestManager(t, Config{}, foo)

	obj, err := mgr.Cache().Store("Foo", model.Record{"id": "1"})
	require.NoError(t, err)

	rq := mgr.NewRefreshQueue()
	_, err = rq.Enqueue([]any{obj, ref("Foo", "1")}, false)
	require.NoError(t, err)
	assert.Empty(t, mgr.Queues("Foo"))
	assert.Empty(t, rq.Queues())

	f := rq.Trigger(time.Hour)
	select {
	case <-f.Done():
	default:
		t.Fatal("future should resolve without waiting for the debounce window")
	}

	items, err := f.Wait(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Same(t, obj, items[0])
	assert.Same(t, obj, items[1])
	foo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
}

func TestRefreshQueue_OrderingIndependentOfCompletion(t *testing.T) {
	mgr := newTestManager(t, Config{},
		echoModel("Slow", 30*time.Millisecond),
		echoModel("Fast", 0),
	)

	input := []model.Reference{ref("Slow", "a"), ref("Fast", "b"), ref("Slow", "c")}
	rq := mgr.NewRefreshQueue()
	_, err := rq.Enqueue(input, false)
	require.NoError(t, err)

	items, err := waitFuture(t, rq.Trigger(0))
	require.NoError(t, err)
	require.Len(t, items, 3)
	for i, want := range input {
		assert.True(t, model.Same(want, items[i]), "item %d", i)
	}
}

func TestRefreshQueue_FailureRejects(t *testing.T) {
	boom := errors.New("boom")
	foo := mocks.NewModel("Foo")
	foo.On("FindAll", mock.Anything, mock.Anything).Return(nil, boom)
	mgr := newTestManager(t, Config{}, foo, echoModel("Bar", 0))

	rq := mgr.NewRefreshQueue()
	_, err := rq.Enqueue([]model.Reference{ref("Foo", "1"), ref("Bar", "1")}, false)
	require.NoError(t, err)

	items, err := waitFuture(t, rq.Trigger(0))
	assert.Nil(t, items)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "Foo", fetchErr.Model)
	assert.Equal(t, []string{"1"}, fetchErr.IDs)

	_, ok := mgr.Cache().Lookup("Foo", "1")
	assert.False(t, ok)
}

func TestRefreshQueue_UnknownModel(t *testing.T) {
	mgr := newTestManager(t, Config{})

	rq := mgr.NewRefreshQueue()
	_, err := rq.Enqueue(ref("Nope", "1"), false)
	assert.ErrorIs(t, err, ErrUnknownModel)
}

func TestRefreshQueue_UnknownModelRejectsWholeBatch(t *testing.T) {
	mgr := newTestManager(t, Config{}, echoModel("Foo", 0))

	rq := mgr.NewRefreshQueue()
	_, err := rq.Enqueue([]model.Reference{ref("Foo", "1"), ref("Nope", "1"), ref("Foo", "2")}, false)
	require.ErrorIs(t, err, ErrUnknownModel)
	assert.Empty(t, rq.Objects())
	assert.Empty(t, rq.Queues())
	assert.Empty(t, mgr.Queues("Foo"))

	_, err = rq.Enqueue(ref("Foo", "3"), false)
	require.NoError(t, err)
	items, err := waitFuture(t, rq.Trigger(0))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "3", items[0].ModelID())
	assert.True(t, model.IsLoaded(items[0]))
}

func TestRefreshQueue_DebounceCoalescesLateEnqueues(t *testing.T) {
	foo := mocks.NewModel("Foo")
	foo.On("FindAll", mock.Anything, model.Query{IDIn: []string{"1", "2"}}).
		Return([]model.Record{{"id": "1"}, {"id": "2"}}, nil).Once()
	mgr := newTestManager(t, Config{}, foo)

	rq1 := mgr.NewRefreshQueue()
	_, err := rq1.Enqueue(ref("Foo", "1"), false)
	require.NoError(t, err)
	f1 := rq1.Trigger(60 * time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	rq2 := mgr.NewRefreshQueue()
	_, err = rq2.Enqueue(ref("Foo", "2"), false)
	require.NoError(t, err)
	assert.Same(t, rq1.Queues()[0], rq2.Queues()[0])
	assert.Equal(t, Pending, rq2.Queues()[0].State())
	f2 := rq2.Trigger(60 * time.Millisecond)

	_, err = waitFuture(t, f1)
	require.NoError(t, err)
	_, err = waitFuture(t, f2)
	require.NoError(t, err)
	foo.AssertExpectations(t)
}

func TestRefreshQueue_FlattensNestedInput(t *testing.T) {
	mgr := newTestManager(t, Config{}, echoModel("Foo", 0))

	var nilObj *model.Object
	rq := mgr.NewRefreshQueue()
	_, err := rq.Enqueue([]any{
		ref("Foo", "1"),
		[]model.Ref{ref("Foo", "2"), ref("Foo", "3")},
		nil,
		nilObj,
		[]any{[]model.Reference{ref("Foo", "4")}},
	}, false)
	require.NoError(t, err)

	objects := rq.Objects()
	require.Len(t, objects, 4)
	for i, obj := range objects {
		assert.Equal(t, strconv.Itoa(i+1), obj.ModelID())
	}

	_, err = rq.Enqueue(nil, false)
	require.NoError(t, err)
	assert.Len(t, rq.Objects(), 4)
}

func TestRefreshQueue_ConcurrencyCap(t *testing.T) {
	var started, running, maxRunning atomic.Int32
	release := make(chan struct{})

	blocking := func(typ string) model.Model {
		return model.Func(typ, func(ctx context.Context, q model.Query) ([]model.Record, error) {
			started.Add(1)
			n := running.Add(1)
			for {
				cur := maxRunning.Load()
				if n <= cur || maxRunning.CompareAndSwap(cur, n) {
					break
				}
			}
			<-release
			running.Add(-1)
			return []model.Record{{"id": q.IDIn[0]}}, nil
		})
	}

	var models []model.Model
	for i := 0; i < 7; i++ {
		models = append(models, blocking("T"+strconv.Itoa(i)))
	}
	mgr := newTestManager(t, Config{MaxInFlight: 6}, models...)

	var futures []*Future
	for i := 0; i < 7; i++ {
		rq := mgr.NewRefreshQueue()
		_, err := rq.Enqueue(ref("T"+strconv.Itoa(i), "1"), false)
		require.NoError(t, err)
		futures = append(futures, rq.Trigger(time.Millisecond))
	}

	require.Eventually(t, func() bool { return started.Load() == 6 }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(6), started.Load())
	assert.Equal(t, 6, mgr.InFlight())

	release <- struct{}{}
	require.Eventually(t, func() bool { return started.Load() == 7 }, 2*time.Second, 5*time.Millisecond)

	close(release)
	for _, f := range futures {
		_, err := waitFuture(t, f)
		require.NoError(t, err)
	}
	assert.LessOrEqual(t, maxRunning.Load(), int32(6))
	assert.Equal(t, 0, mgr.InFlight())
}
