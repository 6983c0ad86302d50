package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChannel_SubscribeAndPublish(t *testing.T) {
	ch := NewChannel[string]()

	var got []string
	cancel := ch.Subscribe(Created, func(items []string) {
		got = append(got, items...)
	})

	ch.Publish(Created, "a", "b")
	ch.Publish(Destroyed, "c")
	assert.Equal(t, []string{"a", "b"}, got)

	cancel()
	cancel()
	ch.Publish(Created, "d")
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 0, ch.Len(Created))
}

func TestChannel_HandlersRunInSubscriptionOrder(t *testing.T) {
	ch := NewChannel[int]()

	var order []string
	ch.Subscribe(Orphaned, func([]int) { order = append(order, "first") })
	ch.Subscribe(Orphaned, func([]int) { order = append(order, "second") })

	ch.Publish(Orphaned, 1)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestChannel_EmptyPublishIsIgnored(t *testing.T) {
	ch := NewChannel[int]()
	called := false
	ch.Subscribe(Created, func([]int) { called = true })

	ch.Publish(Created)
	assert.False(t, called)
}

func TestEvent_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  bool
	}{
		{"Created", Created, true},
		{"Destroyed", Destroyed, true},
		{"Orphaned", Orphaned, true},
		{"Unknown", Event("updated"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.event.IsValid())
		})
	}
}
