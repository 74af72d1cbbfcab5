// Package services implements the bot's business logic: the per-user
// mode dispatcher, the question-answer relay, and the order workflow.
// This file centralizes common service-level error values so they can
// be consistently returned by service methods and checked by callers.
//
// User-facing failure text lives in replies.go; these errors are for
// internal control flow only and are never shown to end users.
package services

import "errors"

var (
	// ErrIncompleteOrder is returned by ParseOrder when one or more of
	// the four required fields is missing or empty after parsing.
	ErrIncompleteOrder = errors.New("order message is missing required fields")

	// ErrOrderNotFound indicates that no ledger row matched the queried
	// tracking number.
	ErrOrderNotFound = errors.New("order not found")

	// ErrNoReply is returned by the QA relay when the endpoint answered
	// 200 but none of the recognized reply fields was present.
	ErrNoReply = errors.New("chatbot response contains no reply field")
)
