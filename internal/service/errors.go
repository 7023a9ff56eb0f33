package service

import (
	"errors"
	"fmt"
)

// InvalidTaskError reports a precondition violation caught before any store call.
type InvalidTaskError struct {
	Field  string
	Reason string
}

func (e *InvalidTaskError) Error() string {
	return fmt.Sprintf("invalid task: %s %s", e.Field, e.Reason)
}

// StoreQueryError reports a non-success response from the store's read endpoint.
type StoreQueryError struct {
	StatusCode int
	Body       string
}

func (e *StoreQueryError) Error() string {
	return fmt.Sprintf("store query failed (HTTP %d): %s", e.StatusCode, e.Body)
}

// StoreWriteError reports a non-success response from a store write endpoint.
type StoreWriteError struct {
	Op         string // "create" or "update"
	StatusCode int
	Body       string
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("store %s failed (HTTP %d): %s", e.Op, e.StatusCode, e.Body)
}

// SchemaMismatchError reports a record that lacks the title structure.
// It means the database schema does not match what the backend expects.
type SchemaMismatchError struct {
	RecordID string
	Reason   string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch in record %s: %s", e.RecordID, e.Reason)
}

// StatusCode returns the HTTP status carried by a store error, or 0.
func StatusCode(err error) int {
	var qe *StoreQueryError
	if errors.As(err, &qe) {
		return qe.StatusCode
	}
	var we *StoreWriteError
	if errors.As(err, &we) {
		return we.StatusCode
	}
	return 0
}
