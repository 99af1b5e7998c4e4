package ws

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

// 注册一个不读取的客户端，广播时应被剔除；
// 剔除过程中并发读取 ClientCount 不应冲突。
func TestHubEvictsSlowConsumer(t *testing.T) {
	hub := NewHub(zap.NewNop())
	go hub.Run()

	fast := &Client{hub: hub, send: make(chan []byte, 256)}
	slow := &Client{hub: hub, send: make(chan []byte, 1)}

	done := make(chan struct{})
	go func() {
		// 快消费者持续排空
		for range fast.send {
		}
		close(done)
	}()

	fast.Register()
	slow.Register()
	waitForCount(t, hub, 2)

	stop := make(chan struct{})
	go func() {
		for {
			select {
			case <-stop:
				return
			default:
				hub.ClientCount()
			}
		}
	}()

	// 填满 slow 的缓冲后再广播一次触发剔除
	hub.Broadcast([]byte(`{"type":"battery_update"}`))
	hub.Broadcast([]byte(`{"type":"battery_update"}`))
	hub.Broadcast([]byte(`{"type":"battery_update"}`))
	waitForCount(t, hub, 1)
	close(stop)

	// 被剔除的客户端 send 通道应已关闭
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-slow.send:
			if !ok {
				fast.Unregister()
				<-done
				return
			}
		case <-deadline:
			t.Fatal("slow client send channel not closed")
		}
	}
}

func waitForCount(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("ClientCount() = %d, want %d", hub.ClientCount(), want)
}
