package qdrant_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"support-router/pkg/qdrant"
)

func TestQdrantClient(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("api-key") != "secret" {
			w.WriteHeader(http.StatusForbidden)
			return
		}

		path := r.URL.Path
		switch {
		case r.Method == http.MethodGet && path == "/collections/support_kb":
			w.Write([]byte(`{"result":{"status":"green"}}`))
		case r.Method == http.MethodGet && strings.HasPrefix(path, "/collections/"):
			w.WriteHeader(http.StatusNotFound)
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNotFound)
		case r.Method == http.MethodPut && strings.HasSuffix(path, "/points"):
			if r.URL.Query().Get("wait") != "true" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			var req qdrant.UpsertPointsRequest
			json.NewDecoder(r.Body).Decode(&req)
			if len(req.Points) > 0 && req.Points[0].Payload["cause_500"] == true {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodPut:
			w.WriteHeader(http.StatusCreated)
		case r.Method == http.MethodPost && strings.HasSuffix(path, "/points/search"):
			var req qdrant.SearchRequest
			json.NewDecoder(r.Body).Decode(&req)
			if req.Limit == 999 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(`{"result":[{"id":"123","version":1,"score":0.95,"payload":{"text":"Question: a\nAnswer: b"}}],"status":"ok"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	client := qdrant.NewClient(ts.URL+"/", "secret")
	ctx := context.Background()

	t.Run("CollectionExists", func(t *testing.T) {
		ok, err := client.CollectionExists(ctx, "support_kb")
		if err != nil || !ok {
			t.Fatalf("expected existing collection, got %v %v", ok, err)
		}
		ok, err = client.CollectionExists(ctx, "missing")
		if err != nil || ok {
			t.Fatalf("expected missing collection, got %v %v", ok, err)
		}
	})

	t.Run("CreateCollection", func(t *testing.T) {
		err := client.CreateCollection(ctx, qdrant.CreateCollectionRequest{
			Name:    "support_kb",
			Vectors: qdrant.VectorConfig{Size: 1024, Distance: "Cosine"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("DeleteCollection missing is not an error", func(t *testing.T) {
		if err := client.DeleteCollection(ctx, "missing"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("UpsertPoints", func(t *testing.T) {
		err := client.UpsertPoints(ctx, "support_kb", qdrant.UpsertPointsRequest{
			Points: []qdrant.Point{{ID: "123", Vector: []float32{0.1, 0.2}, Payload: map[string]interface{}{"k": "v"}}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		err = client.UpsertPoints(ctx, "support_kb", qdrant.UpsertPointsRequest{
			Points: []qdrant.Point{{ID: "123", Payload: map[string]interface{}{"cause_500": true}}},
		})
		if err == nil || !strings.Contains(err.Error(), "500") {
			t.Fatalf("expected 500 error, got %v", err)
		}
	})

	t.Run("SearchPoints", func(t *testing.T) {
		resp, err := client.SearchPoints(ctx, "support_kb", qdrant.SearchRequest{Limit: 3, WithPayload: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resp.Result) != 1 || resp.Result[0].ID != "123" || resp.Result[0].Score != 0.95 {
			t.Errorf("unexpected search results: %+v", resp)
		}

		if _, err := client.SearchPoints(ctx, "support_kb", qdrant.SearchRequest{Limit: 999}); err == nil {
			t.Fatal("expected error from 500 response")
		}
	})

	t.Run("wrong api key", func(t *testing.T) {
		bad := qdrant.NewClient(ts.URL, "nope")
		if _, err := bad.SearchPoints(ctx, "support_kb", qdrant.SearchRequest{Limit: 1}); err == nil {
			t.Fatal("expected forbidden error")
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := client.SearchPoints(cctx, "support_kb", qdrant.SearchRequest{}); err == nil {
			t.Error("expected error on canceled context")
		}
	})
}
