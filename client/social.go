// Copyright 2026 The Disentangle Authors
// SPDX-License-Identifier: Apache-2.0

package client

import "context"

// Introduce creates a social graph edge from the session identity to
// another agent. An empty edgeName defaults to "collaborator". The
// returned bool is the node's verdict: each direction of a mutual
// introduction is an independent call.
func (c *Client) Introduce(ctx context.Context, otherDID, edgeName string) (bool, error) {
	did, signingKey, err := c.requireRegistered()
	if err != nil {
		return false, err
	}
	if edgeName == "" {
		edgeName = "collaborator"
	}

	payload := map[string]any{
		"introducer_did":    did,
		"introducer_sk_hex": signingKey,
		"introduced_did":    otherDID,
		"edge_name":         edgeName,
	}

	var response struct {
		Success bool `json:"success"`
	}
	if err := c.post(ctx, "/introduction", payload, &response); err != nil {
		return false, err
	}
	return response.Success, nil
}

// IntroductionChain returns the chain of DIDs linking the session
// identity to the target agent through the social graph.
func (c *Client) IntroductionChain(ctx context.Context, toDID string) ([]string, error) {
	did, _, err := c.requireRegistered()
	if err != nil {
		return nil, err
	}

	var response struct {
		Chain []string `json:"chain"`
	}
	if err := c.get(ctx, "/introduction/chain/"+did+"/"+toDID, nil, &response); err != nil {
		return nil, err
	}
	return response.Chain, nil
}
