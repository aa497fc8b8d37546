package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScheduler_RegistersCronEntries(t *testing.T) {
	t.Parallel()

	eng, _ := newTestEngine(t)

	sched, err := NewScheduler(eng, 5*time.Minute, 1*time.Hour, eng.log)
	require.NoError(t, err)

	assert.Len(t, sched.Entries(), 2)
}

func TestScheduler_StartStop(t *testing.T) {
	t.Parallel()

	eng, _ := newTestEngine(t)

	sched, err := NewScheduler(eng, 1*time.Hour, 24*time.Hour, eng.log)
	require.NoError(t, err)

	sched.Start()

	done := sched.Stop().Done()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop in time")
	}
}
