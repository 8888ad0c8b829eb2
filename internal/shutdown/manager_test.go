package shutdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_ShutdownReverseOrderOnce(t *testing.T) {
	m := NewManager(nil)

	var order []string
	m.Register("viewer", Func(func() { order = append(order, "viewer") }))
	m.Register("controller", Func(func() { order = append(order, "controller") }))

	m.Shutdown()
	m.Shutdown()

	assert.Equal(t, []string{"controller", "viewer"}, order)
	require.Error(t, m.Context().Err())

	select {
	case <-m.Done():
	default:
		t.Fatal("done channel not closed")
	}
}

func TestManager_SlowComponentTimesOut(t *testing.T) {
	m := NewManager(nil)
	m.SetTimeout(20 * time.Millisecond)

	release := make(chan struct{})
	defer close(release)

	var fastRan bool
	m.Register("fast", Func(func() { fastRan = true }))
	m.Register("slow", Func(func() { <-release }))

	start := time.Now()
	m.Shutdown()

	assert.True(t, fastRan)
	assert.Less(t, time.Since(start), 5*time.Second)
}
