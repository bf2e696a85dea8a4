package middleware

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStore_Sweep(t *testing.T) {
	store := &memoryStore{}
	start := time.Now()

	for i := 0; i < 10000; i++ {
		store.hit(fmt.Sprintf("rl:ip:10.0.%d.%d", i/256, i%256), time.Second, start)
	}
	assert.Equal(t, 10000, store.size())

	later := start.Add(time.Hour)
	store.hit("rl:ip:192.168.0.1", time.Second, later)

	assert.Equal(t, 10000, store.sweep(later))
	assert.Equal(t, 1, store.size())
}

func TestMemoryStore_SweepKeepsLiveWindows(t *testing.T) {
	store := &memoryStore{}
	now := time.Now()

	store.hit("rl:ip:a", time.Minute, now)
	store.hit("rl:ip:a", time.Minute, now)

	assert.Zero(t, store.sweep(now.Add(30*time.Second)))

	count, _ := store.hit("rl:ip:a", time.Minute, now.Add(31*time.Second))
	assert.Equal(t, 3, count)
}
