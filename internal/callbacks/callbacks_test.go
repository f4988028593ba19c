package callbacks

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish(t *testing.T) {
	cb := New[bool]()

	wg := new(sync.WaitGroup)
	wg.Add(2)

	var mx sync.Mutex
	got := make([]bool, 0)

	for _, name := range []string{"a", "b"} {
		cb.Subscribe(name, func(msg bool) bool {
			mx.Lock()
			got = append(got, msg)
			mx.Unlock()
			wg.Done()

			return true
		})
	}

	cb.Publish(true)
	wg.Wait()

	assert.Equal(t, []bool{true, true}, got)
	assert.Equal(t, 2, cb.Count())
}

func TestRemove(t *testing.T) {
	cb := New[string]()

	done := make(chan struct{})
	cb.Subscribe("once", func(msg string) bool {
		close(done)
		return false
	})

	cb.Publish("aaa")
	<-done

	require.Eventually(t, func() bool { return cb.Count() == 0 }, time.Second, time.Millisecond*10)

	cb.Subscribe("x", func(string) bool { return true })
	assert.True(t, cb.Unsubscribe("x"))
	assert.False(t, cb.Unsubscribe("x"))
}

func TestOrder(t *testing.T) {
	cb := New[int]()

	got := make(chan int, 10)
	cb.Subscribe("ordered", func(msg int) bool {
		got <- msg
		return true
	})

	for i := 0; i < 10; i++ {
		cb.Publish(i)
	}

	for i := 0; i < 10; i++ {
		assert.Equal(t, i, <-got)
	}
}

func TestReplace(t *testing.T) {
	cb := New[string]()

	first := make(chan string, 1)
	second := make(chan string, 1)

	cb.Subscribe("x", func(msg string) bool {
		first <- msg
		return true
	})
	cb.Subscribe("x", func(msg string) bool {
		second <- msg
		return true
	})

	cb.Publish("hello")

	assert.Equal(t, "hello", <-second)
	assert.Empty(t, first)
	assert.Equal(t, 1, cb.Count())
}
