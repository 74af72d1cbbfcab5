// Package audit writes diagnostic entries to the remote log worksheet.
//
// The sink is intentionally isolated from the paths that use it: a
// failure to write an audit entry is only logged locally and never
// surfaces to the caller, so a broken log sheet cannot mask or
// duplicate the original error it was asked to record.
package audit

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Sink receives diagnostic messages from error paths. Implementations
// must never fail the caller.
type Sink interface {
	Write(ctx context.Context, msg string)
}

// LogAppender is the subset of the ledger client the sheet sink needs.
type LogAppender interface {
	AppendLog(ctx context.Context, at time.Time, msg string) error
}

// SheetSink appends entries to the remote log worksheet, best effort.
type SheetSink struct {
	Appender LogAppender
}

// NewSheetSink returns a Sink backed by the given log appender.
func NewSheetSink(a LogAppender) *SheetSink { return &SheetSink{Appender: a} }

// Write appends (timestamp, msg) to the log worksheet. Append failures
// are logged locally and swallowed.
func (s *SheetSink) Write(ctx context.Context, msg string) {
	if s == nil || s.Appender == nil {
		return
	}
	if err := s.Appender.AppendLog(ctx, time.Now(), msg); err != nil {
		log.Warn().Err(err).Str("entry", msg).Msg("remote audit log write failed")
	}
}

// NopSink discards every entry. Used in tests and when audit is disabled.
type NopSink struct{}

// Write discards msg.
func (NopSink) Write(context.Context, string) {}
