// Copyright 2026 The Disentangle Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"encoding/json"
	"net/http"
)

// NodeStatus fetches the node's status summary (identity counts,
// network depth, uptime). Requires no registration.
func (c *Client) NodeStatus(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/status", nil, nil)
}

// NetworkHealth fetches the node's view of network-wide health
// (connected peers, gossip lag, aggregate coherence). Requires no
// registration.
func (c *Client) NetworkHealth(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/network/health", nil, nil)
}
