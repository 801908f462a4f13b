package logging_test

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saibautils/logging"
)

type reportingService struct {
	lg *logging.Logger
}

func (s *reportingService) submit() error {
	return s.lg.Info("report submitted")
}

func runReport(s *reportingService) error {
	return s.submit()
}

func TestInfoAnnotatesCallPath(t *testing.T) {
	var buf bytes.Buffer
	lg, err := logging.New(logging.Config{Mode: logging.ModeConsole, ConsoleOut: &buf})
	require.NoError(t, err)

	svc := &reportingService{lg: lg}
	require.NoError(t, runReport(svc))

	assert.Equal(t,
		"INFO: report submitted, TestInfoAnnotatesCallPath -> runReport -> reportingService.submit\n",
		buf.String())
}

type captureSink struct {
	mu      sync.Mutex
	records []*logging.Record
}

func (s *captureSink) Write(rec *logging.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

type failingSink struct{}

func (s *failingSink) Write(*logging.Record) error {
	return fmt.Errorf("%w: connection reset", logging.ErrSinkWrite)
}

func TestEmitAttemptsEverySink(t *testing.T) {
	var buf bytes.Buffer
	capture := &captureSink{}
	lg, err := logging.New(logging.Config{
		Mode:       logging.ModeConsole,
		ConsoleOut: &buf,
		ExtraSinks: []logging.Sink{&failingSink{}, capture},
	})
	require.NoError(t, err)

	err = lg.Error("backend down")
	require.Error(t, err)
	assert.ErrorIs(t, err, logging.ErrSinkWrite)

	// A failing sink does not stop the ones after it, and the console line
	// was written before the failure.
	require.Len(t, capture.records, 1)
	assert.Equal(t, logging.LevelError, capture.records[0].Level)
	assert.Equal(t, "backend down", capture.records[0].Message)
	assert.True(t, strings.HasPrefix(buf.String(), "ERROR: backend down,"))
}

func TestRecordTimestampUsesConfiguredZone(t *testing.T) {
	capture := &captureSink{}
	lg, err := logging.New(logging.Config{
		Mode:       logging.ModeConsole,
		ConsoleOut: &bytes.Buffer{},
		ExtraSinks: []logging.Sink{capture},
	})
	require.NoError(t, err)

	require.NoError(t, lg.Debug("tick"))

	require.Len(t, capture.records, 1)
	rec := capture.records[0]
	assert.False(t, rec.Timestamp.IsZero())
	assert.Equal(t, logging.DefaultTimezone, rec.Timestamp.Location().String())
}

func TestSkipFunctionsEscapeHatch(t *testing.T) {
	var buf bytes.Buffer
	lg, err := logging.New(logging.Config{
		Mode:          logging.ModeConsole,
		ConsoleOut:    &buf,
		SkipFunctions: []string{"runReport"},
	})
	require.NoError(t, err)

	svc := &reportingService{lg: lg}
	require.NoError(t, runReport(svc))

	assert.Equal(t,
		"INFO: report submitted, TestSkipFunctionsEscapeHatch -> reportingService.submit\n",
		buf.String())
}
