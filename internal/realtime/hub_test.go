package realtime

import (
	"testing"

	"github.com/google/uuid"

	"github.com/vestiba/vestiba-backend/internal/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func TestBroadcastReachesSubscribedClients(t *testing.T) {
	hub := NewHub(testLogger(t))
	userID := uuid.New()

	subscribed := hub.NewClient(userID)
	hub.AddChannel(subscribed, ProgressChannel(userID))
	other := hub.NewClient(uuid.New())
	hub.AddChannel(other, ProgressChannel(other.UserID))

	msg := Message{Channel: ProgressChannel(userID), Event: EventProgressChanged, UserID: userID}
	hub.Broadcast(msg)

	select {
	case got := <-subscribed.Outbound:
		if got.UserID != userID {
			t.Fatalf("wrong message: %+v", got)
		}
	default:
		t.Fatalf("subscribed client missed the broadcast")
	}
	select {
	case got := <-other.Outbound:
		t.Fatalf("unsubscribed channel received message: %+v", got)
	default:
	}
}

func TestBroadcastDropsWhenClientIsFull(t *testing.T) {
	hub := NewHub(testLogger(t))
	userID := uuid.New()
	client := hub.NewClient(userID)
	hub.AddChannel(client, ProgressChannel(userID))

	msg := Message{Channel: ProgressChannel(userID), Event: EventProgressChanged, UserID: userID}
	// Nobody is draining; fill the buffer and then some.
	for i := 0; i < clientBuffer+5; i++ {
		hub.Broadcast(msg)
	}

	if got := len(client.Outbound); got != clientBuffer {
		t.Fatalf("buffered: want=%d got=%d", clientBuffer, got)
	}
}

func TestRemoveChannelStopsDelivery(t *testing.T) {
	hub := NewHub(testLogger(t))
	userID := uuid.New()
	client := hub.NewClient(userID)
	channel := ProgressChannel(userID)
	hub.AddChannel(client, channel)
	hub.RemoveChannel(client, channel)

	hub.Broadcast(Message{Channel: channel, Event: EventProgressChanged, UserID: userID})

	if len(client.Outbound) != 0 {
		t.Fatalf("removed channel still delivered")
	}
}

func TestCloseClientIsIdempotent(t *testing.T) {
	hub := NewHub(testLogger(t))
	client := hub.NewClient(uuid.New())
	hub.AddChannel(client, "a")
	hub.AddChannel(client, "b")

	hub.CloseClient(client)
	hub.CloseClient(client)

	if _, open := <-client.Outbound; open {
		t.Fatalf("outbound should be closed")
	}
	hub.Broadcast(Message{Channel: "a"})
}
