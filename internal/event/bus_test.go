package event

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestNewBus(t *testing.T) {
	bus := NewBus()
	if bus == nil {
		t.Fatal("NewBus() returned nil")
	}
	if bus.handlers == nil {
		t.Fatal("NewBus() left handlers nil")
	}
}

func TestSubscribeAndPublish(t *testing.T) {
	bus := NewBus()
	var received any
	bus.Subscribe("test", func(event any) {
		received = event
	})

	if n := bus.Publish("test", "hello"); n != 1 {
		t.Fatalf("Publish() reached %d handlers, want 1", n)
	}
	if received != "hello" {
		t.Errorf("handler received %v, want %v", received, "hello")
	}
}

func TestPublishNoSubscribers(t *testing.T) {
	bus := NewBus()
	if n := bus.Publish("nonexistent", "data"); n != 0 {
		t.Fatalf("Publish() reached %d handlers", n)
	}
}

func TestPublishKeepsOrder(t *testing.T) {
	bus := NewBus()
	var got []int
	bus.Subscribe("chat", func(event any) {
		got = append(got, event.(int))
	})
	for i := range 5 {
		bus.Publish("chat", i)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("delivery order = %v", got)
		}
	}
}

func TestUnsubscribe(t *testing.T) {
	bus := NewBus()
	var a, b int
	stopA := bus.Subscribe("topic", func(any) { a++ })
	bus.Subscribe("topic", func(any) { b++ })

	bus.Publish("topic", nil)
	stopA()
	stopA()
	bus.Publish("topic", nil)

	if a != 1 || b != 2 {
		t.Fatalf("a = %d, b = %d", a, b)
	}
	if !bus.HasSubscribers("topic") {
		t.Fatal("remaining subscriber lost")
	}
}

func TestUnsubscribeLastRemovesTopic(t *testing.T) {
	bus := NewBus()
	stop := bus.Subscribe(PlayerTopic("alice"), func(any) {})
	stop()
	if bus.HasSubscribers(PlayerTopic("alice")) {
		t.Fatal("topic still has subscribers")
	}
}

func TestMultipleEvents(t *testing.T) {
	bus := NewBus()
	var chatReceived, loginReceived bool

	bus.Subscribe("chat", func(event any) {
		chatReceived = true
	})
	bus.Subscribe("login", func(event any) {
		loginReceived = true
	})

	bus.Publish("chat", "msg")

	if !chatReceived {
		t.Error("chat handler not called")
	}
	if loginReceived {
		t.Error("login handler called")
	}
}

func TestPanickingHandlerIsSkipped(t *testing.T) {
	bus := NewBus()
	var after bool
	bus.Subscribe("test", func(any) { panic("boom") })
	bus.Subscribe("test", func(any) { after = true })

	bus.Publish("test", nil)
	if !after {
		t.Fatal("handler after the panicking one was not called")
	}
}

func TestConcurrentSubscribeAndPublish(t *testing.T) {
	bus := NewBus()
	var count atomic.Int64

	bus.Subscribe("test", func(event any) {
		count.Add(1)
	})

	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Publish("test", "data")
		}()
	}
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stop := bus.Subscribe("test", func(event any) {
				count.Add(1)
			})
			stop()
		}()
	}
	wg.Wait()

	if count.Load() < 100 {
		t.Errorf("received %d events, want at least 100", count.Load())
	}
}

func TestSourceTypeString(t *testing.T) {
	tests := []struct {
		source   SourceType
		expected string
	}{
		{SourceSystem, "System"},
		{SourcePlayer, "Player"},
		{SourceCommand, "Command"},
		{SourceType(99), "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.source.String(); got != tt.expected {
				t.Errorf("SourceType(%d).String() = %q, want %q", tt.source, got, tt.expected)
			}
		})
	}
}

func TestNewChatEvent(t *testing.T) {
	evt := NewChatEvent("alice", 7, 0, "hello", SourcePlayer)
	if evt.From != "alice" || evt.FromUID != 7 || evt.Message != "hello" || evt.Source != SourcePlayer {
		t.Fatalf("NewChatEvent() = %+v", evt)
	}
}
