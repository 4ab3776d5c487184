package profiler

import (
	"bytes"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickWaitsForInterval(t *testing.T) {
	var buf bytes.Buffer
	p := NewProfiler(WithUpdateInterval(time.Hour), WithLogger(log.New(&buf, "", 0)))

	assert.False(t, p.Tick())
	assert.False(t, p.Tick())
	assert.Empty(t, buf.String())
}

func TestTickLogsViewChanges(t *testing.T) {
	var buf bytes.Buffer
	p := NewProfiler(WithUpdateInterval(0), WithLogger(log.New(&buf, "", 0)))

	p.RecordViewChange()
	p.RecordViewChange()
	assert.True(t, p.Tick())
	assert.Contains(t, buf.String(), "[Profiler] FPS:")
	assert.Contains(t, buf.String(), "View changes:")
	assert.Equal(t, int64(0), p.viewChanges.Load())
}
