package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fakeClock(step time.Duration) func() time.Time {
	current := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		current = current.Add(step)
		return current
	}
}

func TestTracker_RecordsAndAverages(t *testing.T) {
	tt := NewTracker()
	tt.now = fakeClock(10 * time.Millisecond)

	assert.Equal(t, 10*time.Millisecond, tt.Start("decode")())
	assert.Equal(t, 10*time.Millisecond, tt.Start("decode")())
	tt.Start("extract")()

	assert.Len(t, tt.GetTimings("decode"), 2)
	assert.Equal(t, 10*time.Millisecond, tt.GetAverageTime("decode"))
	assert.Equal(t, []string{"decode", "extract"}, tt.Operations())
	assert.Equal(t, map[string]interface{}{"decode": "10ms", "extract": "10ms"}, tt.Summary())
	assert.Zero(t, tt.GetAverageTime("missing"))
}

func TestTracker_Disabled(t *testing.T) {
	tt := NewTracker()

	tt.SetEnabled(false)
	tt.Start("read")()
	assert.Nil(t, tt.GetTimings("read"))

	tt.SetEnabled(true)
	tt.Start("read")()
	tt.Start("fit")()
	assert.Equal(t, []string{"fit", "read"}, tt.Operations())
}
