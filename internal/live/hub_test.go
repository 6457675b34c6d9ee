package live

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/myatmin/twodlive/internal/model"
	"github.com/myatmin/twodlive/internal/testutil"
)

func newTestHub() *Hub {
	hub := NewHub(testutil.NopLogger())
	go hub.Run()
	return hub
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := newTestHub()
	defer hub.Close()

	client := NewClient(hub, "viewer-1")
	hub.Register(client)

	// Give the hub time to process registration
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 1 {
		t.Errorf("ClientCount() = %d, want 1", hub.ClientCount())
	}

	emitted := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	hub.BroadcastResult(model.ResultEvent{Value: "47", EmittedAt: emitted})

	select {
	case msg := <-client.send:
		var ev Event
		if err := json.Unmarshal(msg, &ev); err != nil {
			t.Fatalf("broadcast message is not valid JSON: %v", err)
		}
		if ev.Type != EventResult {
			t.Errorf("event type = %q, want %q", ev.Type, EventResult)
		}
		if ev.Result != "47" {
			t.Errorf("event result = %q, want %q", ev.Result, "47")
		}
		if ev.EmittedAt == nil || !ev.EmittedAt.Equal(emitted) {
			t.Errorf("event emitted_at = %v, want %v", ev.EmittedAt, emitted)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("client did not receive message")
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := newTestHub()
	defer hub.Close()

	client := NewClient(hub, "viewer-1")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	hub.Unregister(client)
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d after unregister, want 0", hub.ClientCount())
	}
}

func TestHub_UnregisterIsIdempotent(t *testing.T) {
	hub := newTestHub()
	defer hub.Close()

	client := NewClient(hub, "viewer-1")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	hub.Unregister(client)
	hub.Unregister(client)
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d, want 0", hub.ClientCount())
	}
}

func TestHub_RegisterAfterCloseDoesNotBlock(t *testing.T) {
	hub := newTestHub()
	hub.Close()

	done := make(chan bool, 1)
	go func() {
		done <- hub.Register(NewClient(hub, "viewer-late"))
	}()

	select {
	case registered := <-done:
		if registered {
			t.Error("Register() on a closed hub reported success")
		}
	case <-time.After(time.Second):
		t.Fatal("Register() blocked on a closed hub")
	}
}

func TestHub_BroadcastToMultipleClients(t *testing.T) {
	hub := newTestHub()
	defer hub.Close()

	client1 := NewClient(hub, "viewer-1")
	client2 := NewClient(hub, "viewer-2")
	client3 := NewClient(hub, "viewer-3")

	hub.Register(client1)
	hub.Register(client2)
	hub.Register(client3)
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 3 {
		t.Errorf("ClientCount() = %d, want 3", hub.ClientCount())
	}

	hub.BroadcastResult(model.ResultEvent{Value: "03", EmittedAt: time.Now()})

	for i, client := range []*Client{client1, client2, client3} {
		select {
		case msg := <-client.send:
			var ev Event
			if err := json.Unmarshal(msg, &ev); err != nil {
				t.Fatalf("client %d: invalid JSON: %v", i+1, err)
			}
			if ev.Result != "03" {
				t.Errorf("client %d received result %q, want %q", i+1, ev.Result, "03")
			}
		case <-time.After(100 * time.Millisecond):
			t.Errorf("client %d did not receive message", i+1)
		}
	}
}

func TestHub_ClosedClientDoesNotReceive(t *testing.T) {
	hub := newTestHub()
	defer hub.Close()

	stays := NewClient(hub, "viewer-1")
	leaves := NewClient(hub, "viewer-2")
	hub.Register(stays)
	hub.Register(leaves)
	time.Sleep(10 * time.Millisecond)

	hub.Unregister(leaves)
	time.Sleep(10 * time.Millisecond)

	hub.BroadcastResult(model.ResultEvent{Value: "88", EmittedAt: time.Now()})

	select {
	case <-stays.send:
	case <-time.After(100 * time.Millisecond):
		t.Error("remaining client did not receive message")
	}

	// The departed client's channel was closed on unregister; a receive
	// yields only the closed-channel zero value, never the broadcast
	select {
	case msg, ok := <-leaves.send:
		if ok {
			t.Errorf("departed client received %q", string(msg))
		}
	default:
	}
}

func TestHub_SlowClientDoesNotBlockOthers(t *testing.T) {
	hub := newTestHub()
	defer hub.Close()

	// A client whose send buffer is already full simulates a stalled
	// connection mid-broadcast
	stalled := NewClient(hub, "viewer-1")
	stalled.send = make(chan []byte) // unbuffered and never drained
	healthy := NewClient(hub, "viewer-2")

	hub.Register(stalled)
	hub.Register(healthy)
	time.Sleep(10 * time.Millisecond)

	hub.BroadcastResult(model.ResultEvent{Value: "21", EmittedAt: time.Now()})

	select {
	case msg := <-healthy.send:
		var ev Event
		if err := json.Unmarshal(msg, &ev); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if ev.Result != "21" {
			t.Errorf("healthy client received result %q, want %q", ev.Result, "21")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("healthy client was blocked by a stalled client")
	}
}

func TestInfoEvent(t *testing.T) {
	ev := InfoEvent(nil)
	if ev.Type != EventInfo {
		t.Errorf("type = %q, want %q", ev.Type, EventInfo)
	}
	if ev.Result != "" || ev.EmittedAt != nil {
		t.Error("info event without latest result should carry no result fields")
	}

	emitted := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	ev = InfoEvent(&model.ResultEvent{Value: "47", EmittedAt: emitted})
	if ev.Result != "47" {
		t.Errorf("result = %q, want %q", ev.Result, "47")
	}
	if ev.EmittedAt == nil || !ev.EmittedAt.Equal(emitted) {
		t.Errorf("emitted_at = %v, want %v", ev.EmittedAt, emitted)
	}
}
