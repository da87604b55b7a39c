package jobs

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExpirer struct {
	n     int64
	err   error
	calls int
}

func (f *fakeExpirer) ExpireDue() (int64, error) {
	f.calls++
	return f.n, f.err
}

type fakeCleaner struct{ idle chan time.Duration }

func (f *fakeCleaner) Cleanup(idle time.Duration) {
	select {
	case f.idle <- idle:
	default:
	}
}

func TestRunExpiry(t *testing.T) {
	log, hook := test.NewNullLogger()

	assert.Equal(t, int64(2), RunExpiry(&fakeExpirer{n: 2}, log))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	assert.Equal(t, int64(2), hook.LastEntry().Data["count"])

	hook.Reset()
	assert.Zero(t, RunExpiry(&fakeExpirer{}, log))
	assert.Nil(t, hook.LastEntry(), "nothing expired, nothing logged")

	assert.Zero(t, RunExpiry(&fakeExpirer{err: errors.New("db down")}, log))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestSchedulerRejectsBadSchedule(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	s := NewScheduler(log)
	assert.Error(t, s.AddExpiry("every now and then", &fakeExpirer{}))
	assert.NoError(t, s.AddExpiry("@hourly", &fakeExpirer{}))
}

func TestSchedulerRunsCleanup(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	s := NewScheduler(log)

	c := &fakeCleaner{idle: make(chan time.Duration, 1)}
	require.NoError(t, s.AddCleanup("@every 1s", 30*time.Minute, c))
	s.Start()
	defer s.Stop()

	select {
	case idle := <-c.idle:
		assert.Equal(t, 30*time.Minute, idle)
	case <-time.After(3 * time.Second):
		t.Fatal("cleanup job did not run")
	}
}
