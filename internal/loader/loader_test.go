package loader

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/coreylamb90/justnews/internal/feed"
	"github.com/coreylamb90/justnews/internal/storage"
)

// fakeStore 记录各存储调用，供同步流程断言
type fakeStore struct {
	snapshot      []byte
	savedSnapshot []byte
	savedItems    []storage.Item
	clusters      []storage.Cluster
}

func (f *fakeStore) SaveFeedSnapshot(_ context.Context, raw []byte) error {
	f.savedSnapshot = raw
	return nil
}

func (f *fakeStore) LoadFeedSnapshot(_ context.Context) ([]byte, bool) {
	if f.snapshot == nil {
		return nil, false
	}
	return f.snapshot, true
}

func (f *fakeStore) SaveItems(items []storage.Item) error {
	f.savedItems = items
	return nil
}

func (f *fakeStore) ReplaceClusters(clusters []storage.Cluster) error {
	f.clusters = clusters
	return nil
}

func sampleDocJSON(t *testing.T, title string) []byte {
	t.Helper()
	doc := feed.Document{
		GeneratedAt: "2024-05-01T08:30:00Z",
		Items: []feed.NewsItem{
			{ID: "aaa111bbb222", Title: title, URL: "https://example.com/a", PublishedAt: "2024-05-01T08:30:00Z"},
		},
	}
	bs, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal doc: %v", err)
	}
	return bs
}

func TestRefreshAppliesFetchedDocumentAndSavesSnapshot(t *testing.T) {
	raw := sampleDocJSON(t, "fresh title")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(raw)
	}))
	defer srv.Close()

	store := &fakeStore{}
	ldr := New(feed.NewClient(srv.URL), store)

	if err := ldr.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(store.savedItems) != 1 || store.savedItems[0].Title != "fresh title" {
		t.Fatalf("expect fetched item applied, got %+v", store.savedItems)
	}
	if store.savedSnapshot == nil {
		t.Fatalf("expect snapshot saved after successful fetch")
	}
}

func TestRefreshFallsBackToSnapshotWhenFetchFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	store := &fakeStore{snapshot: sampleDocJSON(t, "cached title")}
	ldr := New(feed.NewClient(srv.URL), store)

	if err := ldr.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh should succeed from snapshot, got: %v", err)
	}
	if len(store.savedItems) != 1 || store.savedItems[0].Title != "cached title" {
		t.Fatalf("expect cached item applied, got %+v", store.savedItems)
	}
	if store.savedSnapshot != nil {
		t.Fatalf("failed fetch must not overwrite the snapshot")
	}
}

func TestRefreshFailsWhenFetchAndSnapshotBothUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ldr := New(feed.NewClient(srv.URL), &fakeStore{})
	if err := ldr.Refresh(context.Background()); err == nil {
		t.Fatalf("expect error when fetch fails and no snapshot exists")
	}
}

func TestRefreshFailsOnCorruptSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	store := &fakeStore{snapshot: []byte("{not json")}
	ldr := New(feed.NewClient(srv.URL), store)
	if err := ldr.Refresh(context.Background()); err == nil {
		t.Fatalf("expect error for corrupt snapshot")
	}
}

func TestConvertClustersNormalizesItemIDs(t *testing.T) {
	in := []feed.Cluster{
		{ID: "c1", ItemIDs: []string{"AAA111", "not-hex!", "bbb222"}},
		{ID: "c2", ItemIDs: []string{"not-hex!"}},
		{ID: "", ItemIDs: []string{"aaa111"}},
	}
	out := convertClusters(in)
	if len(out) != 1 {
		t.Fatalf("expect 1 cluster, got %d", len(out))
	}
	want := []string{"aaa111", "bbb222"}
	if len(out[0].ItemIDs) != 2 || out[0].ItemIDs[0] != want[0] || out[0].ItemIDs[1] != want[1] {
		t.Fatalf("expect item ids %v, got %v", want, out[0].ItemIDs)
	}
}
