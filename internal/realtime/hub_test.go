package realtime_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgo/internal/core/application/events"
	"foodgo/internal/realtime"
)

func statusUpdate(orderID string) events.StatusUpdate {
	return events.StatusUpdate{
		OrderID:   orderID,
		Status:    "preparing",
		Timestamp: time.Now(),
	}
}

func TestHub_RoutesByChannel(t *testing.T) {
	hub := realtime.NewHub(0, nil)

	watcher := hub.Subscribe(events.OrderChannel("FGO1"))
	defer watcher.Close()
	other := hub.Subscribe(events.OrderChannel("FGO2"))
	defer other.Close()

	require.NoError(t, hub.Publish(t.Context(), statusUpdate("FGO1")))

	select {
	case frame := <-watcher.C():
		assert.Equal(t, "statusUpdate", frame.Event)

		var payload events.StatusUpdate
		require.NoError(t, json.Unmarshal(frame.Data, &payload))
		assert.Equal(t, "FGO1", payload.OrderID)
		assert.Equal(t, "preparing", payload.Status)
	default:
		t.Fatal("expected a frame for the order's watcher")
	}

	select {
	case <-other.C():
		t.Fatal("unrelated channel must not receive the frame")
	default:
	}
}

func TestHub_BroadcastReachesAllBroadcastSubscribers(t *testing.T) {
	hub := realtime.NewHub(0, nil)

	first := hub.Subscribe(events.ChannelBroadcast)
	defer first.Close()
	second := hub.Subscribe(events.ChannelBroadcast)
	defer second.Close()

	evt := events.NewOrder{OrderID: "FGO1", RestaurantName: "Biryani House", Total: 329}
	require.NoError(t, hub.Publish(t.Context(), evt))

	assert.Len(t, first.C(), 1)
	assert.Len(t, second.C(), 1)
}

func TestHub_MultiChannelEventDeliveredOnceToOverlappingSubscriber(t *testing.T) {
	hub := realtime.NewHub(0, nil)

	// Subscribed to both channels the event routes to.
	sub := hub.Subscribe(events.OrderChannel("FGO1"), events.PartnerChannel("p1"))
	defer sub.Close()

	evt := events.OrderAccepted{OrderID: "FGO1", PartnerID: "p1", PartnerName: "Ravi Kumar"}
	require.NoError(t, hub.Publish(t.Context(), evt))

	assert.Len(t, sub.C(), 1, "overlapping subscriber receives a single frame")
}

func TestHub_SlowSubscriberLosesFramesNotEveryoneElse(t *testing.T) {
	hub := realtime.NewHub(2, nil)

	slow := hub.Subscribe(events.OrderChannel("FGO1"))
	defer slow.Close()
	healthy := hub.Subscribe(events.OrderChannel("FGO1"))
	defer healthy.Close()

	// Drain the healthy one as we go; let the slow one fill up.
	for range 5 {
		require.NoError(t, hub.Publish(t.Context(), statusUpdate("FGO1")))
		select {
		case <-healthy.C():
		default:
			t.Fatal("healthy subscriber should keep receiving")
		}
	}

	assert.Len(t, slow.C(), 2, "frames beyond the buffer are dropped")
}

func TestHub_LateSubscriberMissesEarlierEvents(t *testing.T) {
	hub := realtime.NewHub(0, nil)

	require.NoError(t, hub.Publish(t.Context(), statusUpdate("FGO1")))

	late := hub.Subscribe(events.OrderChannel("FGO1"))
	defer late.Close()

	assert.Empty(t, late.C(), "no replay for late subscribers")
}

func TestHub_CloseDetachesSubscription(t *testing.T) {
	hub := realtime.NewHub(0, nil)

	sub := hub.Subscribe(events.OrderChannel("FGO1"))
	assert.Equal(t, 1, hub.SubscriberCount(events.OrderChannel("FGO1")))

	sub.Close()
	assert.Equal(t, 0, hub.SubscriberCount(events.OrderChannel("FGO1")))

	_, open := <-sub.C()
	assert.False(t, open, "frame stream is closed")

	sub.Close() // second close is a no-op
}
