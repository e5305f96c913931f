// Copyright 2026 The Disentangle Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"encoding/json"
	"net/http"
)

// CreatePool creates a resource pool with the session identity as
// creator. Returns the pool object issued by the node.
func (c *Client) CreatePool(ctx context.Context, name, description string) (json.RawMessage, error) {
	did, signingKey, err := c.requireRegistered()
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"name":            name,
		"description":     description,
		"creator_did":     did,
		"signing_key_hex": signingKey,
	}
	return c.do(ctx, http.MethodPost, "/pool/create", payload, nil)
}

// PoolDeposit deposits resources into a pool. source labels where the
// deposit comes from (e.g., "funding"). Returns the deposit result,
// including the pool's new balance.
func (c *Client) PoolDeposit(ctx context.Context, poolID string, amount float64, source string) (json.RawMessage, error) {
	did, signingKey, err := c.requireRegistered()
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"pool_id":         poolID,
		"amount":          amount,
		"source":          source,
		"depositor_did":   did,
		"signing_key_hex": signingKey,
	}
	return c.do(ctx, http.MethodPost, "/pool/deposit", payload, nil)
}

// PoolDistribute allocates pool resources according to an oracle
// distribution. Returns the per-DID allocations and the pool's
// remaining balance.
func (c *Client) PoolDistribute(ctx context.Context, poolID, distributionID string) (json.RawMessage, error) {
	did, signingKey, err := c.requireRegistered()
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"pool_id":         poolID,
		"distribution_id": distributionID,
		"initiator_did":   did,
		"signing_key_hex": signingKey,
	}
	return c.do(ctx, http.MethodPost, "/pool/distribute", payload, nil)
}

// PoolClaim claims the session identity's allocation from a pool
// distribution.
func (c *Client) PoolClaim(ctx context.Context, poolID, distributionID string) (json.RawMessage, error) {
	did, signingKey, err := c.requireRegistered()
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"pool_id":         poolID,
		"distribution_id": distributionID,
		"claimant_did":    did,
		"signing_key_hex": signingKey,
	}
	return c.do(ctx, http.MethodPost, "/pool/claim", payload, nil)
}

// PoolStatus fetches a pool's current state. Requires no registration.
func (c *Client) PoolStatus(ctx context.Context, poolID string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/pool/"+poolID, nil, nil)
}

// PoolClaims lists claims made against a pool. Requires no
// registration.
func (c *Client) PoolClaims(ctx context.Context, poolID string) ([]json.RawMessage, error) {
	var response struct {
		Claims []json.RawMessage `json:"claims"`
	}
	if err := c.get(ctx, "/pool/"+poolID+"/claims", nil, &response); err != nil {
		return nil, err
	}
	return response.Claims, nil
}
