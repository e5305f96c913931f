// Copyright 2026 The Disentangle Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"encoding/json"
)

// CapabilityOptions holds parameters for creating a capability.
type CapabilityOptions struct {
	// Subject describes what the capability grants, as a JSON-
	// serializable object (e.g., {"type": "file", "scope": "read"}).
	Subject map[string]any

	// Constraints restrict the capability. Defaults to an empty list —
	// the node requires the field to be present.
	Constraints []map[string]any

	// Delegatable controls whether the capability can be delegated.
	// Nil defaults to true.
	Delegatable *bool
}

// CreateCapability issues a new capability with the session identity as
// issuer.
func (c *Client) CreateCapability(ctx context.Context, options CapabilityOptions) (*CapabilityHandle, error) {
	did, signingKey, err := c.requireRegistered()
	if err != nil {
		return nil, err
	}

	constraints := options.Constraints
	if constraints == nil {
		constraints = []map[string]any{}
	}
	delegatable := true
	if options.Delegatable != nil {
		delegatable = *options.Delegatable
	}

	payload := map[string]any{
		"issuer_did":      did,
		"signing_key_hex": signingKey,
		"subject":         options.Subject,
		"constraints":     constraints,
		"delegatable":     delegatable,
	}

	var handle CapabilityHandle
	if err := c.post(ctx, "/capability/create", payload, &handle); err != nil {
		return nil, err
	}
	if handle.CapabilityIDHex == "" {
		return nil, &ProtocolError{Message: "create capability response missing capability_id_hex"}
	}
	return &handle, nil
}

// Delegate delegates a capability held by the session identity to
// another agent. Returns the delegation object issued by the node.
func (c *Client) Delegate(ctx context.Context, capabilityIDHex, toDID string) (json.RawMessage, error) {
	did, signingKey, err := c.requireRegistered()
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"capability_id_hex": capabilityIDHex,
		"delegator_did":     did,
		"delegator_sk_hex":  signingKey,
		"delegatee_did":     toDID,
	}

	var response struct {
		Delegation json.RawMessage `json:"delegation"`
	}
	if err := c.post(ctx, "/capability/delegate", payload, &response); err != nil {
		return nil, err
	}
	if response.Delegation == nil {
		return nil, &ProtocolError{Message: "delegate response missing delegation"}
	}
	return response.Delegation, nil
}

// Invoke invokes a capability as the session identity. A refusal (e.g.,
// coherence below the capability's threshold) surfaces as *DeniedError,
// carrying the score when the node reports one.
func (c *Client) Invoke(ctx context.Context, capabilityIDHex string) (bool, error) {
	did, _, err := c.requireRegistered()
	if err != nil {
		return false, err
	}

	payload := map[string]any{
		"capability_id_hex": capabilityIDHex,
		"invoker_did":       did,
	}

	var response struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := c.post(ctx, "/capability/invoke", payload, &response); err != nil {
		return false, err
	}
	return response.Success, nil
}

// RevokeScope selects how far a revocation propagates through the
// delegation tree.
type RevokeScope string

const (
	// RevokeSingle revokes only the named capability.
	RevokeSingle RevokeScope = "single"
	// RevokeSubtree revokes the capability and everything delegated
	// from it.
	RevokeSubtree RevokeScope = "subtree"
	// RevokeAll revokes the entire delegation tree the capability
	// belongs to.
	RevokeAll RevokeScope = "all"
)

// Revoke revokes a capability with the given scope. An empty scope
// defaults to RevokeSingle.
func (c *Client) Revoke(ctx context.Context, capabilityIDHex string, scope RevokeScope) (bool, error) {
	did, _, err := c.requireRegistered()
	if err != nil {
		return false, err
	}
	if scope == "" {
		scope = RevokeSingle
	}

	payload := map[string]any{
		"capability_id_hex": capabilityIDHex,
		"revoker_did":       did,
		"scope":             string(scope),
	}

	var response struct {
		Success bool `json:"success"`
	}
	if err := c.post(ctx, "/capability/revoke", payload, &response); err != nil {
		return false, err
	}
	return response.Success, nil
}

// Capability fetches a capability by its hex-encoded ID. Does not
// require a local session.
func (c *Client) Capability(ctx context.Context, capabilityIDHex string) (json.RawMessage, error) {
	var response struct {
		Capability json.RawMessage `json:"capability"`
	}
	if err := c.get(ctx, "/capability/"+capabilityIDHex, nil, &response); err != nil {
		return nil, err
	}
	if response.Capability == nil {
		return nil, &ProtocolError{Message: "capability response missing capability"}
	}
	return response.Capability, nil
}

// Capabilities lists all capabilities held by the session identity.
func (c *Client) Capabilities(ctx context.Context) ([]json.RawMessage, error) {
	did, _, err := c.requireRegistered()
	if err != nil {
		return nil, err
	}

	var response struct {
		Capabilities []json.RawMessage `json:"capabilities"`
	}
	if err := c.get(ctx, "/capability/by-did/"+did, nil, &response); err != nil {
		return nil, err
	}
	return response.Capabilities, nil
}
