// Copyright 2026 The Disentangle Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"encoding/json"
	"net/url"
)

// AgreementOptions holds parameters for proposing a service agreement.
// The session identity is the provider.
type AgreementOptions struct {
	// ConsumerDID is the counterparty expected to accept the agreement.
	ConsumerDID string

	// Description is a human-readable summary of the service.
	Description string

	// SuccessCriteria describes how completion is judged.
	SuccessCriteria string

	// DeadlineDepth is the network depth by which the agreement must
	// complete.
	DeadlineDepth int
}

// ProposeAgreement proposes a service agreement with the session
// identity as provider. Returns the agreement object issued by the
// node; its id is available separately via the agreement_id field.
func (c *Client) ProposeAgreement(ctx context.Context, options AgreementOptions) (json.RawMessage, error) {
	did, signingKey, err := c.requireRegistered()
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"provider_did":     did,
		"signing_key_hex":  signingKey,
		"consumer_did":     options.ConsumerDID,
		"description":      options.Description,
		"success_criteria": options.SuccessCriteria,
		"deadline_depth":   options.DeadlineDepth,
	}

	var response struct {
		AgreementID string          `json:"agreement_id"`
		Agreement   json.RawMessage `json:"agreement"`
	}
	if err := c.post(ctx, "/agreement/propose", payload, &response); err != nil {
		return nil, err
	}
	if response.AgreementID == "" {
		return nil, &ProtocolError{Message: "propose agreement response missing agreement_id"}
	}
	return response.Agreement, nil
}

// AcceptAgreement accepts a proposed agreement as the session identity.
func (c *Client) AcceptAgreement(ctx context.Context, agreementID string) (bool, error) {
	did, signingKey, err := c.requireRegistered()
	if err != nil {
		return false, err
	}

	payload := map[string]any{
		"agreement_id":    agreementID,
		"acceptor_did":    did,
		"signing_key_hex": signingKey,
	}

	var response struct {
		Success bool `json:"success"`
	}
	if err := c.post(ctx, "/agreement/accept", payload, &response); err != nil {
		return false, err
	}
	return response.Success, nil
}

// CompleteAgreement marks an agreement as completed. outcomeHash is an
// optional digest of the delivered outcome; pass "" to omit it.
func (c *Client) CompleteAgreement(ctx context.Context, agreementID string, success bool, outcomeHash string) (bool, error) {
	did, signingKey, err := c.requireRegistered()
	if err != nil {
		return false, err
	}

	payload := map[string]any{
		"agreement_id":    agreementID,
		"completer_did":   did,
		"signing_key_hex": signingKey,
		"success":         success,
	}
	if outcomeHash != "" {
		payload["outcome_hash"] = outcomeHash
	}

	var response struct {
		Success bool `json:"success"`
	}
	if err := c.post(ctx, "/agreement/complete", payload, &response); err != nil {
		return false, err
	}
	return response.Success, nil
}

// Agreements lists agreements the session identity participates in.
func (c *Client) Agreements(ctx context.Context) ([]json.RawMessage, error) {
	did, _, err := c.requireRegistered()
	if err != nil {
		return nil, err
	}

	query := url.Values{"did": {did}}
	var response struct {
		Agreements []json.RawMessage `json:"agreements"`
	}
	if err := c.get(ctx, "/agreement/list", query, &response); err != nil {
		return nil, err
	}
	return response.Agreements, nil
}
