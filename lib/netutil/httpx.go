// Copyright 2026 The Disentangle Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides HTTP I/O helpers for the Disentangle client.
//
// Response body reads are bounded at MaxResponseSize to prevent
// unbounded memory allocation from a misbehaving node. This applies to
// JSON RPC responses only, not to the /watch event stream, which is
// read incrementally line by line.
package netutil

import (
	"io"
)

// MaxResponseSize bounds JSON RPC response body reads: 16 MB. Node
// responses (identity documents, capability listings, oracle
// distributions) are orders of magnitude smaller; the limit only guards
// against a pathological response exhausting memory.
const MaxResponseSize int64 = 16 << 20

// ReadResponse reads a JSON RPC response body up to MaxResponseSize
// bytes. Use instead of io.ReadAll when reading HTTP response bodies.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}
