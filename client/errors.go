// Copyright 2026 The Disentangle Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ProtocolError is a remote-reported failure that is neither a missing
// entity nor a policy refusal: a 400, an unexpected status code, or a
// response body that could not be decoded.
type ProtocolError struct {
	// Message is the human-readable description, taken from the node's
	// "error" field when available.
	Message string
}

func (e *ProtocolError) Error() string {
	return "disentangle: " + e.Message
}

// NotFoundError reports that the requested entity (DID, capability,
// petname, pool, distribution) does not exist on the node.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return "disentangle: not found: " + e.Message
}

// DeniedError reports a policy refusal from the node (HTTP 403).
// Capability denial is commonly caused by a coherence threshold
// failure, so the node often includes the agent's score — callers can
// use it to explain the denial or decide whether building more
// coherence is worthwhile.
type DeniedError struct {
	Message string

	// CoherenceScore is the agent's coherence score at the time of the
	// refusal. Nil when the node did not supply one — never fabricated.
	CoherenceScore *float64
}

func (e *DeniedError) Error() string {
	if e.CoherenceScore != nil {
		return fmt.Sprintf("disentangle: denied: %s (coherence score %g)", e.Message, *e.CoherenceScore)
	}
	return "disentangle: denied: " + e.Message
}

// ConnectionError reports that the transport could not complete the
// exchange: connect failure, timeout, or a mid-stream fault.
type ConnectionError struct {
	Message string
	Err     error
}

func (e *ConnectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("disentangle: %s: %v", e.Message, e.Err)
	}
	return "disentangle: " + e.Message
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// NotRegisteredError reports that an identity-scoped operation was
// called before a successful Register.
type NotRegisteredError struct{}

func (e *NotRegisteredError) Error() string {
	return "disentangle: agent is not registered: call Register first"
}

// IsProtocol reports whether err is a *ProtocolError.
func IsProtocol(err error) bool {
	var protocolErr *ProtocolError
	return errors.As(err, &protocolErr)
}

// IsNotFound reports whether err is a *NotFoundError.
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsDenied reports whether err is a *DeniedError.
func IsDenied(err error) bool {
	var deniedErr *DeniedError
	return errors.As(err, &deniedErr)
}

// IsConnectionFailure reports whether err is a *ConnectionError.
func IsConnectionFailure(err error) bool {
	var connectionErr *ConnectionError
	return errors.As(err, &connectionErr)
}

// IsNotRegistered reports whether err is a *NotRegisteredError.
func IsNotRegistered(err error) bool {
	var notRegisteredErr *NotRegisteredError
	return errors.As(err, &notRegisteredErr)
}

// errorEnvelope is the node's error response shape. Every error body
// carries a human-readable "error" field; 403 responses may add the
// agent's coherence score.
type errorEnvelope struct {
	Error          string   `json:"error"`
	CoherenceScore *float64 `json:"coherence_score"`
}

// classify maps a completed non-2xx exchange to exactly one error
// variant. It is a pure function of (status, body): no call history, no
// partial state. An unparsable body falls back to the per-status
// default message, so classification is total.
func classify(statusCode int, body []byte) error {
	var envelope errorEnvelope
	// Decode failures leave the envelope zeroed; the defaults below apply.
	_ = json.Unmarshal(body, &envelope)

	switch statusCode {
	case http.StatusNotFound:
		return &NotFoundError{Message: messageOr(envelope.Error, "not found")}
	case http.StatusForbidden:
		return &DeniedError{
			Message:        messageOr(envelope.Error, "forbidden"),
			CoherenceScore: envelope.CoherenceScore,
		}
	case http.StatusBadRequest:
		return &ProtocolError{Message: messageOr(envelope.Error, "bad request")}
	default:
		return &ProtocolError{Message: messageOr(envelope.Error, fmt.Sprintf("HTTP %d", statusCode))}
	}
}

func messageOr(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}
