// Copyright 2026 The Disentangle Authors
// SPDX-License-Identifier: Apache-2.0

// Package sse reads Server-Sent-Events data lines from a streaming HTTP
// response body.
//
// The Disentangle node's /watch endpoint emits one complete JSON object
// per "data:" line and uses SSE comment lines (starting with ":") as
// keepalives. The scanner therefore frames per data line rather than per
// W3C event block: every data line is one frame, and blank lines,
// comments, and non-data fields (event, id, retry) are skipped.
package sse

import (
	"bufio"
	"io"
	"strings"
)

// Scanner reads data frames from an SSE stream.
//
// Usage:
//
//	scanner := sse.NewScanner(body)
//	for scanner.Next() {
//	    payload := scanner.Data()
//	    // decode payload
//	}
//	if err := scanner.Err(); err != nil {
//	    // stream ended abnormally
//	}
//
// Scanner is not safe for concurrent use.
type Scanner struct {
	reader *bufio.Reader
	data   string
	err    error
}

// NewScanner creates a scanner reading from reader.
func NewScanner(reader io.Reader) *Scanner {
	return &Scanner{
		reader: bufio.NewReaderSize(reader, 64*1024),
	}
}

// Next advances to the next data line. Returns false when the stream
// ends (EOF) or a read error occurs. After Next returns false, call
// [Err] to distinguish a clean close from a failure.
func (scanner *Scanner) Next() bool {
	if scanner.err != nil {
		return false
	}

	for {
		line, err := scanner.reader.ReadString('\n')

		// A partial last line (no trailing newline before EOF) is still
		// a complete frame if it carries data.
		if err != nil && line == "" {
			scanner.err = err
			return false
		}

		payload, ok := dataPayload(strings.TrimRight(line, "\r\n"))
		if ok {
			scanner.data = payload
			if err != nil {
				// Deliver the final frame now; the next call reports
				// the stream end.
				scanner.err = err
			}
			return true
		}

		if err != nil {
			scanner.err = err
			return false
		}
	}
}

// Data returns the payload of the current data line, with the "data:"
// prefix stripped. Only valid after [Next] returns true.
func (scanner *Scanner) Data() string {
	return scanner.data
}

// Err returns the first error encountered while scanning. Returns nil
// if the stream ended with a clean EOF.
func (scanner *Scanner) Err() error {
	if scanner.err == io.EOF {
		return nil
	}
	return scanner.err
}

// dataPayload reports whether line is an SSE data line and returns its
// payload. Blank lines, comment lines, and non-data fields yield false.
func dataPayload(line string) (string, bool) {
	if line == "" || strings.HasPrefix(line, ":") {
		return "", false
	}

	field, value, hasColon := strings.Cut(line, ":")
	if !hasColon {
		// A line without a colon is a field name with an empty value.
		field = line
		value = ""
	} else {
		// Per the SSE spec, a single leading space in the value is
		// stripped.
		value = strings.TrimPrefix(value, " ")
	}

	if field != "data" {
		return "", false
	}
	return value, true
}
