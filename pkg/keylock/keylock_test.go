package keylock

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestLock_SerializesSameKey(t *testing.T) {
	l := New()
	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock("loan:0")
			defer unlock()
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}
	wg.Wait()
	if maxInside != 1 {
		t.Fatalf("max concurrent holders = %d, want 1", maxInside)
	}
	if l.Len() != 0 {
		t.Fatalf("keys not released: %d", l.Len())
	}
}

func TestLock_DifferentKeysDoNotBlock(t *testing.T) {
	l := New()
	unlockA := l.Lock("loan:1")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := l.Lock("loan:2")
		unlock()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different key blocked")
	}
}

func TestUnlock_Idempotent(t *testing.T) {
	l := New()
	unlock := l.Lock("k")
	unlock()
	unlock()
	if l.Len() != 0 {
		t.Fatalf("keys = %d, want 0", l.Len())
	}
	// key is reusable
	l.Lock("k")()
}
