// Copyright 2026 The Disentangle Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"errors"
)

// Name assigns a human-friendly petname to a DID in the session
// identity's namespace.
func (c *Client) Name(ctx context.Context, did, petname string) error {
	if _, _, err := c.requireRegistered(); err != nil {
		return err
	}

	payload := map[string]any{
		"name": petname,
		"did":  did,
	}
	return c.post(ctx, "/petname", payload, nil)
}

// ResolveName resolves a petname to a DID. An unknown name returns
// ("", nil) rather than an error: name resolution has a natural
// empty-result semantics, and this is the only place a NotFound is
// absorbed.
func (c *Client) ResolveName(ctx context.Context, petname string) (string, error) {
	if _, _, err := c.requireRegistered(); err != nil {
		return "", err
	}

	var response struct {
		DID string `json:"did"`
	}
	err := c.get(ctx, "/petname/"+petname, nil, &response)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", err
	}
	return response.DID, nil
}
