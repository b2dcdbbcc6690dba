package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversInOrder(t *testing.T) {
	d := NewInMemoryDispatcher(nil)

	var calls []string
	d.Subscribe(EventStoreCreated, func(_ context.Context, e Event) error {
		calls = append(calls, "first:"+string(e.Type))
		return errors.New("boom")
	})
	d.Subscribe(EventStoreCreated, func(_ context.Context, e Event) error {
		calls = append(calls, "second:"+e.Payload.(StorePayload).StoreID)
		return nil
	})
	d.Subscribe(EventProductDeleted, func(context.Context, Event) error {
		calls = append(calls, "unrelated")
		return nil
	})

	err := d.Publish(context.Background(), New(EventStoreCreated, "olivia", StorePayload{StoreID: "s1"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"first:store.created", "second:s1"}, calls)
}

func TestPublishWithoutSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	require.NoError(t, d.Publish(context.Background(), New(EventProductUpdated, "", ProductPayload{ProductID: "p"})))
}

func TestNewStampsEvent(t *testing.T) {
	a := New(EventProductCreated, "mark", ProductPayload{ProductID: "p1", StoreID: "s1"})
	b := New(EventProductCreated, "mark", ProductPayload{ProductID: "p1", StoreID: "s1"})

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.Timestamp.IsZero())
	assert.Equal(t, "mark", a.Actor)
}
