package audit

import (
	"context"
	"errors"
	"testing"
	"time"
)

type recordingAppender struct {
	entries []string
	err     error
}

func (r *recordingAppender) AppendLog(_ context.Context, _ time.Time, msg string) error {
	r.entries = append(r.entries, msg)
	return r.err
}

func TestSheetSink_WritesEntry(t *testing.T) {
	app := &recordingAppender{}
	NewSheetSink(app).Write(context.Background(), "qa relay failed")

	if len(app.entries) != 1 || app.entries[0] != "qa relay failed" {
		t.Fatalf("entries = %v", app.entries)
	}
}

func TestSheetSink_SwallowsAppendFailure(t *testing.T) {
	app := &recordingAppender{err: errors.New("quota exceeded")}
	// Must not panic or propagate; the caller's own error handling is
	// already in flight when the sink runs.
	NewSheetSink(app).Write(context.Background(), "entry")
}

func TestSheetSink_NilReceiverAndAppenderAreSafe(t *testing.T) {
	var s *SheetSink
	s.Write(context.Background(), "ignored")
	NewSheetSink(nil).Write(context.Background(), "ignored")
}
