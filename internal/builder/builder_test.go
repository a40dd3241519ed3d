package builder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/coreylamb90/justnews/internal/config"
)

func TestBuilderRunEndToEnd(t *testing.T) {
	para := "The city council voted to expand the riverside park after months of public hearings and a detailed review of the proposed budget for the coming fiscal year."
	articles := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(articleHTML(para, 12)))
	}))
	defer articles.Close()

	rss := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		body := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Example Wire</title>
<item><title>Council expands riverside park</title><link>` + articles.URL + `/a</link><pubDate>Wed, 01 May 2024 08:30:00 GMT</pubDate></item>
<item><title>Council expands riverside park area</title><link>` + articles.URL + `/b</link><pubDate>Wed, 01 May 2024 07:30:00 GMT</pubDate></item>
</channel></rss>`
		_, _ = w.Write([]byte(body))
	}))
	defer rss.Close()

	b := New(
		[]config.FeedSource{{URL: rss.URL, Category: "Local"}},
		LexicalNLP{},
		NewArticleExtractor(""),
	)

	doc, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if doc.GeneratedAt == "" || !strings.HasSuffix(doc.GeneratedAt, "Z") {
		t.Fatalf("GeneratedAt not set: %q", doc.GeneratedAt)
	}
	if len(doc.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(doc.Items))
	}

	for _, it := range doc.Items {
		if len(it.ID) != 12 {
			t.Fatalf("item id should be 12 hex chars: %q", it.ID)
		}
		if it.Category != "Local" || it.Outlet != "Example Wire" {
			t.Fatalf("item metadata wrong: %+v", it)
		}
		if len(it.Bullets) == 0 {
			t.Fatalf("item has no bullets: %+v", it)
		}
		if it.Sentiment == nil || it.Sentiment.Label == "" {
			t.Fatalf("item has no sentiment: %+v", it)
		}
		if it.Moods == nil {
			t.Fatalf("item has no moods: %+v", it)
		}
		if it.ClusterID == "" {
			t.Fatalf("item not assigned to a cluster: %+v", it)
		}
	}

	// 两条标题几乎相同，应聚成一簇
	if len(doc.Clusters) != 1 {
		t.Fatalf("expected 1 cluster, got %d: %+v", len(doc.Clusters), doc.Clusters)
	}
	if len(doc.Clusters[0].ItemIDs) != 2 {
		t.Fatalf("cluster should hold both items: %+v", doc.Clusters[0])
	}

	// 按原始时间文本倒序
	if doc.Items[0].PublishedAt < doc.Items[1].PublishedAt {
		t.Fatalf("items not sorted latest first: %q then %q", doc.Items[0].PublishedAt, doc.Items[1].PublishedAt)
	}
}

func TestBuilderRunSkipsDeadSource(t *testing.T) {
	b := New(
		[]config.FeedSource{{URL: "http://127.0.0.1:1/feed.xml", Category: "World"}},
		LexicalNLP{},
		NewArticleExtractor(""),
	)
	doc, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("Run should tolerate dead sources: %v", err)
	}
	if len(doc.Items) != 0 {
		t.Fatalf("expected no items from dead source, got %d", len(doc.Items))
	}
}
