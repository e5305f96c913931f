// Copyright 2026 The Disentangle Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"encoding/json"
)

// Identity looks up an agent's identity document by DID. Does not
// require a local session.
func (c *Client) Identity(ctx context.Context, did string) (json.RawMessage, error) {
	var response struct {
		Document json.RawMessage `json:"document"`
	}
	if err := c.get(ctx, "/identity/"+did, nil, &response); err != nil {
		return nil, err
	}
	if response.Document == nil {
		return nil, &ProtocolError{Message: "identity response missing document"}
	}
	return response.Document, nil
}
