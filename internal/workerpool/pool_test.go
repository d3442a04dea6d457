package workerpool

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBroadcast_RunsEveryItem(t *testing.T) {
	p := New(2)
	items := []int{1, 2, 3, 4, 5}

	var sum int64
	Broadcast(p, items, func(i int) {
		atomic.AddInt64(&sum, int64(i))
	})

	assert.EqualValues(t, 15, sum)
}

func TestBroadcast_EmptyItems(t *testing.T) {
	p := New(4)
	called := false
	Broadcast(p, []int{}, func(int) { called = true })
	assert.False(t, called)
}

func TestNew_ClampsBelowOne(t *testing.T) {
	p := New(0)
	assert.Equal(t, 1, p.n)
}
