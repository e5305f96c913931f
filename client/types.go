// Copyright 2026 The Disentangle Authors
// SPDX-License-Identifier: Apache-2.0

package client

import "encoding/json"

// AgentIdentity is the identity established by registration. Immutable
// once decoded; owned by the client's session slot.
type AgentIdentity struct {
	// DID is the agent's decentralized identifier on the network.
	DID string `json:"did"`

	// SigningKeyHex is the hex-encoded signing credential issued by the
	// node. The client treats it as opaque — it travels back to the node
	// in identity-scoped payloads and is never used for local signing.
	SigningKeyHex string `json:"signing_key_hex"`

	// Document is the agent's identity document as returned by the node.
	Document json.RawMessage `json:"document"`
}

// CapabilityHandle references a capability created on the node. The
// client does not track capability lifecycle locally — every mutation
// (delegate, revoke, invoke) is a fresh round trip using the ID.
type CapabilityHandle struct {
	// CapabilityIDHex is the hex-encoded 32-byte capability ID.
	CapabilityIDHex string `json:"capability_id_hex"`

	// Capability is the full capability object as issued by the node.
	Capability json.RawMessage `json:"capability"`
}

// CoherenceReport is an agent's coherence profile: a decoded snapshot
// of the node's computation, never cached across calls.
type CoherenceReport struct {
	// DID identifies the profiled agent.
	DID string `json:"did"`

	// TopologicalMass is the agent's network position score.
	TopologicalMass float64 `json:"topological_mass"`

	// MeanLocalCurvature is the average curvature with neighbors.
	MeanLocalCurvature float64 `json:"mean_local_curvature"`

	// RelationalDiversity is the number of unique supporters.
	RelationalDiversity int `json:"relational_diversity"`

	// TemporalDepth is the historical depth of participation.
	TemporalDepth int `json:"temporal_depth"`

	// CompositeScore is the overall coherence score in [0, 1].
	CompositeScore float64 `json:"composite_score"`

	// DecayedMass is the time-decayed topological mass.
	DecayedMass float64 `json:"decayed_mass"`
}

// StreamEvent is one event from the /watch stream.
type StreamEvent struct {
	// Topic is the event's "type" field. Empty when the event object
	// carries no type.
	Topic string

	// Payload is the full event object as received on the wire.
	Payload json.RawMessage
}
