// Copyright 2026 The Disentangle Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

// defaultGradientWindow is the node's default depth window for
// derivative and excitability queries.
const defaultGradientWindow = 100

// defaultGradientMapTopN is the node's default edge count for gradient
// map queries.
const defaultGradientMapTopN = 20

// Coherence returns the session identity's coherence profile.
func (c *Client) Coherence(ctx context.Context) (*CoherenceReport, error) {
	did, _, err := c.requireRegistered()
	if err != nil {
		return nil, err
	}
	return c.coherenceProfile(ctx, did)
}

// PeerCoherence returns another agent's coherence profile. Does not
// require a local session.
func (c *Client) PeerCoherence(ctx context.Context, did string) (*CoherenceReport, error) {
	return c.coherenceProfile(ctx, did)
}

// coherenceProfile fetches and decodes a coherence profile. The node
// wraps the profile in a {"profile": ...} envelope; older nodes return
// the profile at the top level, and both shapes are accepted.
func (c *Client) coherenceProfile(ctx context.Context, did string) (*CoherenceReport, error) {
	body, err := c.do(ctx, http.MethodGet, "/coherence/"+did, nil, nil)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Profile json.RawMessage `json:"profile"`
	}
	profile := body
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Profile != nil {
		profile = envelope.Profile
	}

	var report CoherenceReport
	if err := decodeInto(profile, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// CurvatureWith returns the curvature between the session identity and
// another agent.
func (c *Client) CurvatureWith(ctx context.Context, otherDID string) (float64, error) {
	did, _, err := c.requireRegistered()
	if err != nil {
		return 0, err
	}

	var response struct {
		Curvature float64 `json:"curvature"`
	}
	if err := c.get(ctx, "/coherence/curvature/"+did+"/"+otherDID, nil, &response); err != nil {
		return 0, err
	}
	return response.Curvature, nil
}

// Neighbors returns the session identity's neighbors in the social
// graph, exactly as the node reports them — no local inference.
func (c *Client) Neighbors(ctx context.Context) ([]string, error) {
	did, _, err := c.requireRegistered()
	if err != nil {
		return nil, err
	}

	var response struct {
		Neighbors []string `json:"neighbors"`
	}
	if err := c.get(ctx, "/coherence/neighbors/"+did, nil, &response); err != nil {
		return nil, err
	}
	return response.Neighbors, nil
}

// CurvatureDerivative returns the rate of change of curvature between
// two agents over a depth window. A window of 0 defaults to 100. Does
// not require a local session.
func (c *Client) CurvatureDerivative(ctx context.Context, didA, didB string, window int) (json.RawMessage, error) {
	if window <= 0 {
		window = defaultGradientWindow
	}
	query := url.Values{"window": {strconv.Itoa(window)}}
	return c.do(ctx, http.MethodGet, "/coherence/gradient/"+didA+"/"+didB, nil, query)
}

// Excitability returns an agent's excitability data over a depth
// window. A window of 0 defaults to 100. Does not require a local
// session.
func (c *Client) Excitability(ctx context.Context, did string, window int) (json.RawMessage, error) {
	if window <= 0 {
		window = defaultGradientWindow
	}
	query := url.Values{"window": {strconv.Itoa(window)}}
	return c.do(ctx, http.MethodGet, "/coherence/excitability/"+did, nil, query)
}

// GradientMap returns the network's top curvature-gradient edges.
// Zero values default to top_n=20, window=100. Does not require a
// local session.
func (c *Client) GradientMap(ctx context.Context, topN, window int) (json.RawMessage, error) {
	if topN <= 0 {
		topN = defaultGradientMapTopN
	}
	if window <= 0 {
		window = defaultGradientWindow
	}
	query := url.Values{
		"top_n":  {strconv.Itoa(topN)},
		"window": {strconv.Itoa(window)},
	}
	return c.do(ctx, http.MethodGet, "/coherence/gradient/map", nil, query)
}

// Neighborhoods returns the node's view of topological clusters. Does
// not require a local session.
func (c *Client) Neighborhoods(ctx context.Context) ([]json.RawMessage, error) {
	var response struct {
		Neighborhoods []json.RawMessage `json:"neighborhoods"`
	}
	if err := c.get(ctx, "/coherence/neighborhoods", nil, &response); err != nil {
		return nil, err
	}
	return response.Neighborhoods, nil
}
