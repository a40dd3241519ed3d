package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleDoc = `{
  "generated_at": "2024-05-01T08:00:00Z",
  "items": [
    {
      "id": "abc123",
      "title": "Market rally continues",
      "outlet": "Example Wire",
      "url": "https://example.com/a",
      "published_at": "2024-05-01T07:00:00Z",
      "bullets": ["• Stocks rally again"],
      "category": "Business",
      "sentiment": {"label": "positive", "score": 0.91}
    }
  ],
  "clusters": [
    {"id": "cl1", "topic": "market rally", "item_ids": ["abc123"]}
  ]
}`

func TestClientFetchDecodesDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleDoc))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	doc, raw, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(raw) == 0 {
		t.Fatalf("raw bytes should be returned for snapshot caching")
	}
	if doc.GeneratedAt != "2024-05-01T08:00:00Z" {
		t.Fatalf("GeneratedAt = %q", doc.GeneratedAt)
	}
	if len(doc.Items) != 1 || doc.Items[0].ID != "abc123" {
		t.Fatalf("items not decoded: %+v", doc.Items)
	}
	it := doc.Items[0]
	if it.Sentiment == nil || it.Sentiment.Label != "positive" {
		t.Fatalf("sentiment not decoded: %+v", it.Sentiment)
	}
	if len(doc.Clusters) != 1 || doc.Clusters[0].Topic != "market rally" {
		t.Fatalf("clusters not decoded: %+v", doc.Clusters)
	}
}

func TestClientFetchRejectsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, _, err := c.Fetch(context.Background()); err == nil {
		t.Fatalf("expected error on non-200 status")
	}
}

func TestDecodeRejectsMalformedDocument(t *testing.T) {
	if _, err := Decode([]byte("{not json")); err == nil {
		t.Fatalf("expected unmarshal error")
	}
	doc, err := Decode([]byte(`{"generated_at":"","items":[]}`))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(doc.Items) != 0 {
		t.Fatalf("expected empty items")
	}
}
