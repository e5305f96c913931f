// Copyright 2026 The Disentangle Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

var testProfile = map[string]any{
	"did":                  testDID,
	"topological_mass":     12.5,
	"mean_local_curvature": 0.42,
	"relational_diversity": 7,
	"temporal_depth":       120,
	"composite_score":      0.81,
	"decayed_mass":         11.9,
}

func checkProfile(t *testing.T, report *CoherenceReport) {
	t.Helper()
	if report.DID != testDID {
		t.Errorf("DID = %q, want %q", report.DID, testDID)
	}
	if report.TopologicalMass != 12.5 {
		t.Errorf("TopologicalMass = %g, want 12.5", report.TopologicalMass)
	}
	if report.MeanLocalCurvature != 0.42 {
		t.Errorf("MeanLocalCurvature = %g, want 0.42", report.MeanLocalCurvature)
	}
	if report.RelationalDiversity != 7 {
		t.Errorf("RelationalDiversity = %d, want 7", report.RelationalDiversity)
	}
	if report.TemporalDepth != 120 {
		t.Errorf("TemporalDepth = %d, want 120", report.TemporalDepth)
	}
	if report.CompositeScore != 0.81 {
		t.Errorf("CompositeScore = %g, want 0.81", report.CompositeScore)
	}
	if report.DecayedMass != 11.9 {
		t.Errorf("DecayedMass = %g, want 11.9", report.DecayedMass)
	}
}

func TestCoherenceEnvelopedProfile(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /coherence/"+testDID, func(writer http.ResponseWriter, request *http.Request) {
		json.NewEncoder(writer).Encode(map[string]any{"profile": testProfile})
	})
	client := registeredClient(t, mux)

	report, err := client.Coherence(context.Background())
	if err != nil {
		t.Fatalf("Coherence: %v", err)
	}
	checkProfile(t, report)
}

func TestPeerCoherenceBareProfile(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /coherence/"+testDID, func(writer http.ResponseWriter, request *http.Request) {
		json.NewEncoder(writer).Encode(testProfile)
	})
	// No registration: peer lookups are open.
	client := testClient(t, mux)

	report, err := client.PeerCoherence(context.Background(), testDID)
	if err != nil {
		t.Fatalf("PeerCoherence: %v", err)
	}
	checkProfile(t, report)
}

func TestCurvatureWith(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /coherence/curvature/"+testDID+"/did:dis:other", func(writer http.ResponseWriter, request *http.Request) {
		json.NewEncoder(writer).Encode(map[string]any{"curvature": -0.25})
	})
	client := registeredClient(t, mux)

	curvature, err := client.CurvatureWith(context.Background(), "did:dis:other")
	if err != nil {
		t.Fatalf("CurvatureWith: %v", err)
	}
	if curvature != -0.25 {
		t.Errorf("curvature = %g, want -0.25", curvature)
	}
}

func TestNeighbors(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /coherence/neighbors/"+testDID, func(writer http.ResponseWriter, request *http.Request) {
		json.NewEncoder(writer).Encode(map[string]any{
			"neighbors": []string{"did:dis:a", "did:dis:b"},
		})
	})
	client := registeredClient(t, mux)

	neighbors, err := client.Neighbors(context.Background())
	if err != nil {
		t.Fatalf("Neighbors: %v", err)
	}
	if len(neighbors) != 2 || neighbors[0] != "did:dis:a" {
		t.Errorf("neighbors = %v, want [did:dis:a did:dis:b]", neighbors)
	}
}

func TestGradientQueries(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /coherence/gradient/did:dis:a/did:dis:b", func(writer http.ResponseWriter, request *http.Request) {
		if window := request.URL.Query().Get("window"); window != "50" {
			t.Errorf("window = %q, want 50", window)
		}
		json.NewEncoder(writer).Encode(map[string]any{"derivative": 0.1})
	})
	mux.HandleFunc("GET /coherence/excitability/did:dis:a", func(writer http.ResponseWriter, request *http.Request) {
		// Zero window falls back to the node default.
		if window := request.URL.Query().Get("window"); window != "100" {
			t.Errorf("window = %q, want default 100", window)
		}
		json.NewEncoder(writer).Encode(map[string]any{"excitability": 0.7})
	})
	mux.HandleFunc("GET /coherence/gradient/map", func(writer http.ResponseWriter, request *http.Request) {
		query := request.URL.Query()
		if topN := query.Get("top_n"); topN != "20" {
			t.Errorf("top_n = %q, want default 20", topN)
		}
		if window := query.Get("window"); window != "100" {
			t.Errorf("window = %q, want default 100", window)
		}
		json.NewEncoder(writer).Encode(map[string]any{"edges": []any{}, "count": 0})
	})
	client := testClient(t, mux)
	ctx := context.Background()

	if _, err := client.CurvatureDerivative(ctx, "did:dis:a", "did:dis:b", 50); err != nil {
		t.Fatalf("CurvatureDerivative: %v", err)
	}
	if _, err := client.Excitability(ctx, "did:dis:a", 0); err != nil {
		t.Fatalf("Excitability: %v", err)
	}
	if _, err := client.GradientMap(ctx, 0, 0); err != nil {
		t.Fatalf("GradientMap: %v", err)
	}
}

func TestNeighborhoods(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /coherence/neighborhoods", func(writer http.ResponseWriter, request *http.Request) {
		json.NewEncoder(writer).Encode(map[string]any{
			"neighborhoods": []map[string]any{{"members": []string{"did:dis:a"}}},
		})
	})
	client := testClient(t, mux)

	neighborhoods, err := client.Neighborhoods(context.Background())
	if err != nil {
		t.Fatalf("Neighborhoods: %v", err)
	}
	if len(neighborhoods) != 1 {
		t.Errorf("len(neighborhoods) = %d, want 1", len(neighborhoods))
	}
}
