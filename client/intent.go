// Copyright 2026 The Disentangle Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// IntentOptions holds parameters for creating a shared intent.
type IntentOptions struct {
	// Description summarizes the shared goal.
	Description string

	// ParticipantDIDs names agents invited into the intent. Defaults
	// to an empty list.
	ParticipantDIDs []string

	// CapabilityIDs names capabilities the intent binds. Defaults to
	// an empty list.
	CapabilityIDs []string
}

// CreateIntent creates a shared intent with the session identity as
// initiator. Returns the intent object issued by the node.
func (c *Client) CreateIntent(ctx context.Context, options IntentOptions) (json.RawMessage, error) {
	did, signingKey, err := c.requireRegistered()
	if err != nil {
		return nil, err
	}

	participants := options.ParticipantDIDs
	if participants == nil {
		participants = []string{}
	}
	capabilities := options.CapabilityIDs
	if capabilities == nil {
		capabilities = []string{}
	}

	payload := map[string]any{
		"initiator_did":    did,
		"signing_key_hex":  signingKey,
		"description":      options.Description,
		"participant_dids": participants,
		"capability_ids":   capabilities,
	}

	var response struct {
		IntentID string          `json:"intent_id"`
		Intent   json.RawMessage `json:"intent"`
	}
	if err := c.post(ctx, "/intent/create", payload, &response); err != nil {
		return nil, err
	}
	if response.IntentID == "" {
		return nil, &ProtocolError{Message: "create intent response missing intent_id"}
	}
	return response.Intent, nil
}

// JoinIntent joins the session identity to an existing intent.
func (c *Client) JoinIntent(ctx context.Context, intentID string) (json.RawMessage, error) {
	did, signingKey, err := c.requireRegistered()
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"intent_id":       intentID,
		"participant_did": did,
		"signing_key_hex": signingKey,
	}
	return c.do(ctx, http.MethodPost, "/intent/join", payload, nil)
}

// ArchiveIntent archives a completed intent, crystallizing its
// contribution to the participants' coherence. The result carries the
// mass and curvature deltas applied by the node.
func (c *Client) ArchiveIntent(ctx context.Context, intentID string) (json.RawMessage, error) {
	did, signingKey, err := c.requireRegistered()
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"intent_id":       intentID,
		"archiver_did":    did,
		"signing_key_hex": signingKey,
	}
	return c.do(ctx, http.MethodPost, "/intent/archive", payload, nil)
}

// IntentCoherence reports the live coherence of an intent's participant
// group. Requires no registration.
func (c *Client) IntentCoherence(ctx context.Context, intentID string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/intent/"+intentID+"/coherence", nil, nil)
}

// Intents lists intents known to the node, optionally filtered by
// status (e.g., "active", "archived"). Pass "" for all. Requires no
// registration.
func (c *Client) Intents(ctx context.Context, status string) ([]json.RawMessage, error) {
	var query url.Values
	if status != "" {
		query = url.Values{"status": {status}}
	}

	var response struct {
		Intents []json.RawMessage `json:"intents"`
	}
	if err := c.get(ctx, "/intent/list", query, &response); err != nil {
		return nil, err
	}
	return response.Intents, nil
}
