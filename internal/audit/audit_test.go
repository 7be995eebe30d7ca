package audit

import (
	"bytes"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCapturesInOrder(t *testing.T) {
	rec := &Recorder{}

	Infof(rec, "Added item %d", 1)
	Warnf(rec, "missing %s", "file")

	events := rec.Events()
	require.Len(t, events, 2)
	assert.Equal(t, LevelInfo, events[0].Level)
	assert.Equal(t, "Added item 1", events[0].Message)
	assert.Equal(t, LevelWarning, events[1].Level)
	assert.False(t, events[0].Time.IsZero())

	rec.Reset()
	assert.Empty(t, rec.Events())
}

func TestBoundedRecorderDropsOldest(t *testing.T) {
	rec := NewRecorder(3)
	for i := 1; i <= 7; i++ {
		Infof(rec, "event %d", i)
	}
	assert.Equal(t, []string{"event 5", "event 6", "event 7"}, rec.Messages())

	Warnf(rec, "event 8")
	events := rec.Events()
	require.Len(t, events, 3)
	assert.Equal(t, "event 6", events[0].Message)
	assert.Equal(t, LevelWarning, events[2].Level)

	rec.Reset()
	Infof(rec, "fresh")
	assert.Equal(t, []string{"fresh"}, rec.Messages())
}

func TestNilSinkIsIgnored(t *testing.T) {
	assert.NotPanics(t, func() { Infof(nil, "nothing") })
}

func TestMultiFansOut(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	Infof(Multi{a, nil, b}, "hello")

	assert.Equal(t, []string{"hello"}, a.Messages())
	assert.Equal(t, []string{"hello"}, b.Messages())
}

func TestLogrusSinkFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(LineFormatter{})

	sink := NewLogrusSink(logger)
	at := time.Date(2024, 5, 1, 9, 30, 15, 250*int(time.Millisecond), time.Local)
	sink.Emit(Event{Time: at, Level: LevelInfo, Message: "Recorded sale"})
	sink.Emit(Event{Time: at, Level: LevelWarning, Message: "Attempted to load non-existing inventory file."})

	assert.Equal(t,
		"2024-05-01 09:30:15,250 - INFO - Recorded sale\n"+
			"2024-05-01 09:30:15,250 - WARNING - Attempted to load non-existing inventory file.\n",
		buf.String())
}
