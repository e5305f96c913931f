// Copyright 2026 The Disentangle Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// ProposalOptions holds parameters for creating a mass-gated proposal.
type ProposalOptions struct {
	// Description summarizes what the proposal enacts once activated.
	Description string

	// ActivationMass is the total committed topological mass required
	// for activation.
	ActivationMass float64

	// MinParticipants is the minimum number of distinct joiners
	// required for activation.
	MinParticipants int

	// ExpiryDepth is the network depth at which an unactivated
	// proposal expires.
	ExpiryDepth int
}

// CreateProposal creates a proposal with the session identity as
// initiator. Returns the proposal object issued by the node.
func (c *Client) CreateProposal(ctx context.Context, options ProposalOptions) (json.RawMessage, error) {
	did, signingKey, err := c.requireRegistered()
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"initiator_did":    did,
		"signing_key_hex":  signingKey,
		"description":      options.Description,
		"activation_mass":  options.ActivationMass,
		"min_participants": options.MinParticipants,
		"expiry_depth":     options.ExpiryDepth,
	}

	var response struct {
		ProposalID string          `json:"proposal_id"`
		Proposal   json.RawMessage `json:"proposal"`
	}
	if err := c.post(ctx, "/proposal/create", payload, &response); err != nil {
		return nil, err
	}
	if response.ProposalID == "" {
		return nil, &ProtocolError{Message: "create proposal response missing proposal_id"}
	}
	return response.Proposal, nil
}

// JoinProposal commits the session identity's mass to a proposal.
// Returns the join result, including committed and total mass and
// whether the join tipped the proposal into activation.
func (c *Client) JoinProposal(ctx context.Context, proposalID string) (json.RawMessage, error) {
	did, signingKey, err := c.requireRegistered()
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"proposal_id":     proposalID,
		"participant_did": did,
		"signing_key_hex": signingKey,
	}

	return c.do(ctx, http.MethodPost, "/proposal/join", payload, nil)
}

// Proposals lists proposals known to the node, optionally filtered by
// status (e.g., "attracting", "activated"). Pass "" for all. Requires
// no registration.
func (c *Client) Proposals(ctx context.Context, status string) ([]json.RawMessage, error) {
	var query url.Values
	if status != "" {
		query = url.Values{"status": {status}}
	}

	var response struct {
		Proposals []json.RawMessage `json:"proposals"`
	}
	if err := c.get(ctx, "/proposal/list", query, &response); err != nil {
		return nil, err
	}
	return response.Proposals, nil
}
