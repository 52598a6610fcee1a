package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThreadLocksSerializesSameKey(t *testing.T) {
	locks := newThreadLocks()

	var counter int
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock("u1/t1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestThreadLocksDifferentKeysIndependent(t *testing.T) {
	locks := newThreadLocks()

	unlockA := locks.lock("u1/t1")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := locks.lock("u1/t2")
		unlockB()
		close(done)
	}()

	// A held lock on one thread must not block another thread's writer.
	<-done
}

func TestThreadLocksReusable(t *testing.T) {
	locks := newThreadLocks()

	unlock := locks.lock("k")
	unlock()
	unlock = locks.lock("k")
	unlock()
}
