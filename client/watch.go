// Copyright 2026 The Disentangle Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/disentangle-foundation/disentangle-go/lib/netutil"
	"github.com/disentangle-foundation/disentangle-go/lib/sse"
)

// ErrStopWatch, returned from a Watch handler, ends the watch cleanly.
var ErrStopWatch = errors.New("stop watch")

// EventStream is a pull iterator over the /watch event stream. Events
// arrive in wire order; the stream is non-restartable. Not safe for
// concurrent use.
type EventStream struct {
	scanner *sse.Scanner
	body    io.ReadCloser
	done    bool
}

// Next returns the next event from the stream. It blocks until an
// event arrives, the server closes the stream (io.EOF), or the
// connection fails (*ConnectionError). Keepalive comments and frames
// that are not valid JSON are skipped, never surfaced. Events already
// returned remain valid after a failure.
func (s *EventStream) Next() (StreamEvent, error) {
	if s.done {
		return StreamEvent{}, io.EOF
	}

	for s.scanner.Next() {
		data := s.scanner.Data()
		if !json.Valid([]byte(data)) {
			continue
		}

		var header struct {
			Type string `json:"type"`
		}
		// Valid JSON that is not an object (rare) still decodes the
		// header as zero; the raw frame passes through either way.
		_ = json.Unmarshal([]byte(data), &header)

		return StreamEvent{
			Topic:   header.Type,
			Payload: json.RawMessage(data),
		}, nil
	}

	s.done = true
	s.body.Close()
	if err := s.scanner.Err(); err != nil {
		return StreamEvent{}, &ConnectionError{Message: "event stream interrupted", Err: err}
	}
	return StreamEvent{}, io.EOF
}

// Close releases the stream's connection. Abandoning a stream without
// calling Close leaks the connection. Idempotent.
func (s *EventStream) Close() error {
	if s.done {
		return nil
	}
	s.done = true
	return s.body.Close()
}

// WatchEvents opens the node's event stream and returns a pull
// iterator over it. topics filters the stream server-side; nil or
// empty subscribes to everything. The stream has no read deadline —
// the server's keepalive comments hold the connection open between
// events. Canceling ctx tears the stream down.
//
// The caller must drain the stream to io.EOF or call Close.
func (c *Client) WatchEvents(ctx context.Context, topics []string) (*EventStream, error) {
	did, _, err := c.requireRegistered()
	if err != nil {
		return nil, err
	}

	query := url.Values{"did": {did}}
	if len(topics) > 0 {
		query.Set("topics", strings.Join(topics, ","))
	}
	requestURL := c.baseURL + "/watch?" + query.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &ConnectionError{Message: "creating watch request", Err: err}
	}
	request.Header.Set("Accept", "text/event-stream")

	response, err := c.streamClient.Do(request)
	if err != nil {
		return nil, &ConnectionError{Message: "opening event stream", Err: err}
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		body, readErr := netutil.ReadResponse(response.Body)
		response.Body.Close()
		if readErr != nil {
			return nil, &ConnectionError{
				Message: fmt.Sprintf("reading watch error response (HTTP %d)", response.StatusCode),
				Err:     readErr,
			}
		}
		return nil, classify(response.StatusCode, body)
	}

	c.logger.Debug("event stream open", "topics", topics)
	return &EventStream{
		scanner: sse.NewScanner(response.Body),
		body:    response.Body,
	}, nil
}

// Watch opens the event stream and invokes handler for each event, in
// wire order from the reading goroutine. It blocks until the server
// closes the stream, the connection fails, ctx is canceled, or the
// handler returns an error. A handler returning ErrStopWatch ends the
// watch with a nil error; any other handler error propagates unchanged.
func (c *Client) Watch(ctx context.Context, topics []string, handler func(StreamEvent) error) error {
	stream, err := c.WatchEvents(ctx, topics)
	if err != nil {
		return err
	}
	defer stream.Close()

	for {
		event, err := stream.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := handler(event); err != nil {
			if errors.Is(err, ErrStopWatch) {
				return nil
			}
			return err
		}
	}
}
