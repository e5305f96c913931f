// Copyright 2026 The Disentangle Authors
// SPDX-License-Identifier: Apache-2.0

// Package client speaks the Disentangle node protocol: HTTP/JSON RPC
// plus a Server-Sent-Events stream. A Client binds one node URL and at
// most one agent identity established via Register; identity-scoped
// calls fail with *NotRegisteredError until then.
//
// Every call maps onto exactly one node endpoint and performs exactly
// one round trip. The client never retries, caches, or reconciles
// protocol state — the node owns the identity registry, capability
// graph, and coherence computation. Failures surface as one of five
// error types (ProtocolError, NotFoundError, DeniedError,
// ConnectionError, NotRegisteredError), matchable with errors.As or
// the Is* predicates.
package client
