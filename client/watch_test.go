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
	"testing"
	"time"
)

// watchHandler serves /watch with a fixed SSE body.
func watchHandler(t *testing.T, mux *http.ServeMux, body string) {
	t.Helper()
	mux.HandleFunc("GET /watch", func(writer http.ResponseWriter, request *http.Request) {
		if did := request.URL.Query().Get("did"); did != testDID {
			t.Errorf("did query = %q, want %q", did, testDID)
		}
		writer.Header().Set("Content-Type", "text/event-stream")
		writer.Write([]byte(body))
	})
}

func TestWatchEventsIterator(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	// Keepalive comment between two adjacent data lines: both events
	// must come through, in order, with the comment skipped.
	watchHandler(t, mux,
		": keepalive\n"+
			"data: {\"type\":\"introduction\",\"from\":\"did:dis:a\"}\n"+
			"data: {\"type\":\"coherence_update\",\"score\":0.7}\n")
	client := registeredClient(t, mux)

	stream, err := client.WatchEvents(context.Background(), nil)
	if err != nil {
		t.Fatalf("WatchEvents: %v", err)
	}
	defer stream.Close()

	first, err := stream.Next()
	if err != nil {
		t.Fatalf("first Next: %v", err)
	}
	if first.Topic != "introduction" {
		t.Errorf("first.Topic = %q, want introduction", first.Topic)
	}
	var firstPayload struct {
		From string `json:"from"`
	}
	if err := json.Unmarshal(first.Payload, &firstPayload); err != nil {
		t.Fatalf("decoding first payload: %v", err)
	}
	if firstPayload.From != "did:dis:a" {
		t.Errorf("from = %q, want did:dis:a", firstPayload.From)
	}

	second, err := stream.Next()
	if err != nil {
		t.Fatalf("second Next: %v", err)
	}
	if second.Topic != "coherence_update" {
		t.Errorf("second.Topic = %q, want coherence_update", second.Topic)
	}

	if _, err := stream.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("error after stream end = %v, want io.EOF", err)
	}
	// The stream stays terminated.
	if _, err := stream.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("repeat Next = %v, want io.EOF", err)
	}
}

func TestWatchEventsSkipsMalformedFrames(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	watchHandler(t, mux,
		"data: not json\n"+
			"event: ignored\n"+
			"\n"+
			"data: {\"type\":\"ping\"}\n")
	client := registeredClient(t, mux)

	stream, err := client.WatchEvents(context.Background(), nil)
	if err != nil {
		t.Fatalf("WatchEvents: %v", err)
	}
	defer stream.Close()

	event, err := stream.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if event.Topic != "ping" {
		t.Errorf("Topic = %q, want ping", event.Topic)
	}
	if _, err := stream.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("error = %v, want io.EOF", err)
	}
}

func TestWatchEventsTopicsQuery(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /watch", func(writer http.ResponseWriter, request *http.Request) {
		if topics := request.URL.Query().Get("topics"); topics != "introduction,coherence_update" {
			t.Errorf("topics query = %q, want introduction,coherence_update", topics)
		}
		writer.Header().Set("Content-Type", "text/event-stream")
	})
	client := registeredClient(t, mux)

	stream, err := client.WatchEvents(context.Background(), []string{"introduction", "coherence_update"})
	if err != nil {
		t.Fatalf("WatchEvents: %v", err)
	}
	stream.Close()
}

func TestWatchEventsMidStreamFault(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /watch", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "text/event-stream")
		writer.Write([]byte("data: {\"type\":\"ping\"}\n"))
		writer.(http.Flusher).Flush()
		// Drop the connection without a terminating chunk.
		panic(http.ErrAbortHandler)
	})
	client := registeredClient(t, mux)

	stream, err := client.WatchEvents(context.Background(), nil)
	if err != nil {
		t.Fatalf("WatchEvents: %v", err)
	}
	defer stream.Close()

	// The event delivered before the fault remains valid.
	event, err := stream.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if event.Topic != "ping" {
		t.Errorf("Topic = %q, want ping", event.Topic)
	}

	if _, err := stream.Next(); !IsConnectionFailure(err) {
		t.Fatalf("error = %v, want *ConnectionError", err)
	}
}

func TestWatchEventsCloseReleasesConnection(t *testing.T) {
	t.Parallel()

	released := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("GET /watch", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "text/event-stream")
		writer.Write([]byte("data: {\"type\":\"first\"}\n"))
		writer.(http.Flusher).Flush()
		<-request.Context().Done()
		close(released)
	})
	client := registeredClient(t, mux)

	stream, err := client.WatchEvents(context.Background(), nil)
	if err != nil {
		t.Fatalf("WatchEvents: %v", err)
	}

	if _, err := stream.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if err := stream.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	select {
	case <-released:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not observe the stream closing")
	}

	if _, err := stream.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("Next after Close = %v, want io.EOF", err)
	}
}

func TestWatchEventsDenied(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /watch", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusForbidden)
		json.NewEncoder(writer).Encode(map[string]any{"error": "watch denied"})
	})
	client := registeredClient(t, mux)

	_, err := client.WatchEvents(context.Background(), nil)
	if !IsDenied(err) {
		t.Fatalf("error = %v, want *DeniedError", err)
	}
}

func TestWatchCallback(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	watchHandler(t, mux,
		"data: {\"type\":\"a\"}\n"+
			": keepalive\n"+
			"data: {\"type\":\"b\"}\n")
	client := registeredClient(t, mux)

	var topics []string
	err := client.Watch(context.Background(), nil, func(event StreamEvent) error {
		topics = append(topics, event.Topic)
		return nil
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	if len(topics) != 2 || topics[0] != "a" || topics[1] != "b" {
		t.Errorf("topics = %v, want [a b]", topics)
	}
}

func TestWatchStopSentinel(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	watchHandler(t, mux,
		"data: {\"type\":\"a\"}\n"+
			"data: {\"type\":\"b\"}\n"+
			"data: {\"type\":\"c\"}\n")
	client := registeredClient(t, mux)

	seen := 0
	err := client.Watch(context.Background(), nil, func(event StreamEvent) error {
		seen++
		if seen == 2 {
			return ErrStopWatch
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	if seen != 2 {
		t.Errorf("handler invocations = %d, want 2", seen)
	}
}

func TestWatchHandlerErrorPropagates(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	watchHandler(t, mux, "data: {\"type\":\"a\"}\n")
	client := registeredClient(t, mux)

	handlerErr := fmt.Errorf("handler rejected event")
	err := client.Watch(context.Background(), nil, func(StreamEvent) error {
		return handlerErr
	})
	if !errors.Is(err, handlerErr) {
		t.Fatalf("error = %v, want the handler's error", err)
	}
}
