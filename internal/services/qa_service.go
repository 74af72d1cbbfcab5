// Package services – QAService
//
// This file implements the question-answer relay. A user question is
// forwarded to one of the two configured chatbot endpoints as a single
// synchronous HTTP POST; the reply is pulled from the response body by
// checking a fixed list of fields in priority order. There is exactly
// one attempt per question: transport failures map to a fixed apology
// and a diagnostic entry in the remote log sheet, never a retry.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rdwinata/lapakbot/internal/audit"
)

// DefaultQATimeout bounds a single chatbot request end to end.
const DefaultQATimeout = 30 * time.Second

// qaRequest is the JSON payload sent to a chatbot endpoint.
type qaRequest struct {
	Question string `json:"question"`
	UserID   string `json:"user_id"`
}

// replyFields are the response fields recognized as a chatbot reply,
// checked in priority order; the first non-empty one wins.
var replyFields = []string{"result", "message", "answer"}

// QAService relays questions to external chatbot endpoints.
type QAService struct {
	// Client issues the outbound requests; its Timeout is the only
	// deadline applied beyond the caller's context.
	Client *http.Client
	// Audit receives a diagnostic entry for every transport failure.
	Audit audit.Sink
}

// NewQAService constructs a QAService with the given request timeout
// and audit sink. A timeout <= 0 falls back to DefaultQATimeout.
func NewQAService(timeout time.Duration, sink audit.Sink) *QAService {
	if timeout <= 0 {
		timeout = DefaultQATimeout
	}
	if sink == nil {
		sink = audit.NopSink{}
	}
	return &QAService{
		Client: &http.Client{Timeout: timeout},
		Audit:  sink,
	}
}

// Ask forwards question to endpoint on behalf of userID and returns the
// text to send back to the user. It never returns an error: transport
// failures are contained here, logged, audited, and rendered as
// ReplyQAError; a 200 with no recognized reply field renders as
// ReplyQAFallback.
func (s *QAService) Ask(ctx context.Context, endpoint, userID, question string) string {
	reply, err := s.ask(ctx, endpoint, userID, question)
	if err == ErrNoReply {
		return ReplyQAFallback
	}
	if err != nil {
		log.Error().Err(err).Str("endpoint", endpoint).Str("user_id", userID).
			Msg("chatbot request failed")
		s.Audit.Write(ctx, fmt.Sprintf("chatbot request to %s failed: %v", endpoint, err))
		return ReplyQAError
	}
	return reply
}

// ask performs the single HTTP round trip and reply-field extraction.
func (s *QAService) ask(ctx context.Context, endpoint, userID, question string) (string, error) {
	body, err := json.Marshal(qaRequest{Question: question, UserID: userID})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("chatbot returned status %d", resp.StatusCode)
	}

	var fields map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&fields); err != nil {
		return "", fmt.Errorf("decode chatbot response: %w", err)
	}

	for _, f := range replyFields {
		if v, ok := fields[f].(string); ok && v != "" {
			return v, nil
		}
	}
	return "", ErrNoReply
}
