package stream

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestHubBroadcast(t *testing.T) {
	hub := NewHub(nil, nil)
	client := hub.Register("run-1")
	defer hub.Unregister(client)

	hub.Broadcast("run-1", []byte(`{"type":"stats"}`))

	select {
	case msg := <-client.Send:
		if string(msg) != `{"type":"stats"}` {
			t.Fatalf("unexpected message: %s", msg)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatalf("timeout waiting for message")
	}
}

func TestHubBroadcastOtherSession(t *testing.T) {
	hub := NewHub(nil, nil)
	client := hub.Register("run-1")
	defer hub.Unregister(client)

	hub.Broadcast("run-2", []byte("x"))

	select {
	case <-client.Send:
		t.Fatalf("client received payload for another session")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubChannelHelpers(t *testing.T) {
	ch := redisChannel("abc")
	if sessionIDFromChannel(ch) != "abc" {
		t.Fatalf("round trip failed: %s", ch)
	}
	if sessionIDFromChannel("bad") != "" {
		t.Fatalf("expected empty session id")
	}
}

func TestUnregisterCloses(t *testing.T) {
	hub := NewHub(nil, nil)
	client := hub.Register("run-2")
	hub.Unregister(client)
	_, ok := <-client.Send
	if ok {
		t.Fatalf("expected channel closed")
	}
}

func TestHubRedisBroadcastAndSubscribe(t *testing.T) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	hub := NewHub(client, nil)
	ws := hub.Register("run-redis")
	defer hub.Unregister(ws)

	hub.Broadcast("run-redis", []byte("ping"))

	select {
	case msg := <-ws.Send:
		if string(msg) != "ping" {
			t.Fatalf("unexpected message")
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("timeout waiting for broadcast")
	}

	// subscribeRedis subscribes the literal channel string, so publish to it
	starClient := hub.Register("*")
	defer hub.Unregister(starClient)

	time.Sleep(20 * time.Millisecond)
	if err := client.Publish(context.Background(), "run:*:live", "pong").Err(); err != nil {
		t.Fatalf("publish error: %v", err)
	}

	select {
	case msg := <-starClient.Send:
		if string(msg) != "pong" {
			t.Fatalf("unexpected forwarded message")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("timeout waiting for redis forward")
	}
}
