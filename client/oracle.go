// Copyright 2026 The Disentangle Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"encoding/json"
	"net/http"
)

// OracleQuery describes a distribution query against the coherence
// oracle.
type OracleQuery struct {
	// Region selects the slice of the network to weigh, as a JSON-
	// serializable object (e.g., {"global": true}).
	Region map[string]any

	// DepthStart and DepthEnd bound the depth range the oracle
	// evaluates over.
	DepthStart int
	DepthEnd   int
}

// QueryOracle runs a coherence distribution query. The result carries
// the query id, per-DID weights, and the merkle root committing to
// them. Requires registration even though the payload carries no
// identity.
func (c *Client) QueryOracle(ctx context.Context, query OracleQuery) (json.RawMessage, error) {
	if _, _, err := c.requireRegistered(); err != nil {
		return nil, err
	}

	payload := map[string]any{
		"region":      query.Region,
		"depth_start": query.DepthStart,
		"depth_end":   query.DepthEnd,
	}
	return c.do(ctx, http.MethodPost, "/oracle/query", payload, nil)
}

// Distribution fetches a previously computed distribution by query id.
// Requires no registration. An unknown id surfaces as *NotFoundError.
func (c *Client) Distribution(ctx context.Context, queryID string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/oracle/distribution/"+queryID, nil, nil)
}

// Distributions lists distributions the node has computed. Requires no
// registration.
func (c *Client) Distributions(ctx context.Context) ([]json.RawMessage, error) {
	var response struct {
		Distributions []json.RawMessage `json:"distributions"`
	}
	if err := c.get(ctx, "/oracle/distributions", nil, &response); err != nil {
		return nil, err
	}
	return response.Distributions, nil
}
