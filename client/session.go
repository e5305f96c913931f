// Copyright 2026 The Disentangle Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"

	"github.com/disentangle-foundation/disentangle-go/lib/config"
)

// RegisterOptions holds parameters for registering an agent identity.
type RegisterOptions struct {
	// AgentType is the identity type: "agi" or "human". Defaults to "agi".
	AgentType string

	// RuntimeAttestation is an optional attestation string for AGI
	// agents. Omitted from the payload when empty.
	RuntimeAttestation string
}

// RegisterOptionsFromConfig builds registration options from a loaded
// configuration file.
func RegisterOptionsFromConfig(cfg *config.Config) RegisterOptions {
	return RegisterOptions{
		AgentType:          cfg.AgentType,
		RuntimeAttestation: cfg.RuntimeAttestation,
	}
}

// Register creates a new agent identity on the node and stores it as
// the client's session identity. Calling Register again is legal: the
// new identity replaces the local session state, without invalidating
// the previous identity on the node.
func (c *Client) Register(ctx context.Context, options RegisterOptions) (*AgentIdentity, error) {
	agentType := options.AgentType
	if agentType == "" {
		agentType = "agi"
	}

	payload := map[string]any{"agent_type": agentType}
	if options.RuntimeAttestation != "" {
		payload["runtime_attestation"] = options.RuntimeAttestation
	}

	var identity AgentIdentity
	if err := c.post(ctx, "/identity/register", payload, &identity); err != nil {
		return nil, err
	}
	if identity.DID == "" || identity.SigningKeyHex == "" {
		return nil, &ProtocolError{Message: "register response missing did or signing_key_hex"}
	}

	c.identity = &identity
	c.signingKey = identity.SigningKeyHex

	c.logger.Info("registered agent identity",
		"did", identity.DID,
		"agent_type", agentType,
	)
	return &identity, nil
}

// DID returns the session's DID. Fails with *NotRegisteredError when no
// identity has been established.
func (c *Client) DID() (string, error) {
	did, _, err := c.requireRegistered()
	return did, err
}

// IsRegistered reports whether the client holds a session identity.
func (c *Client) IsRegistered() bool {
	return c.identity != nil
}

// requireRegistered gates every identity-scoped operation. The DID and
// the signing credential are established together by Register, so their
// absence is a single error condition.
func (c *Client) requireRegistered() (did, signingKey string, err error) {
	if c.identity == nil {
		return "", "", &NotRegisteredError{}
	}
	return c.identity.DID, c.signingKey, nil
}
