package builder

import (
	"testing"

	"github.com/coreylamb90/justnews/internal/feed"
)

func TestTokenizeTitleFiltersAndSingularizes(t *testing.T) {
	got := tokenizeTitle("The Storms Batter Coastal Towns")
	// the 是停用词；storms→storm、towns→town 朴素去 s；其余保留
	want := []string{"storm", "batter", "coastal", "town"}
	if len(got) != len(want) {
		t.Fatalf("tokenizeTitle = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %q, want %q (%v)", i, got[i], want[i], got)
		}
	}
}

func TestSignatureWordsDeduplicatesAndCaps(t *testing.T) {
	got := signatureWords("storm storm storm alpha bravo charlie delta echo foxtrot", 6)
	if len(got) != 6 {
		t.Fatalf("signature should cap at 6, got %d: %v", len(got), got)
	}
	if got[0] != "storm" || got[1] != "alpha" {
		t.Fatalf("signature order wrong: %v", got)
	}
	seen := make(map[string]struct{})
	for _, w := range got {
		if _, dup := seen[w]; dup {
			t.Fatalf("duplicate in signature: %v", got)
		}
		seen[w] = struct{}{}
	}
}

func TestJaccard(t *testing.T) {
	a := toSet([]string{"alpha", "bravo", "charlie"})
	b := toSet([]string{"alpha", "bravo", "delta"})
	if got := jaccard(a, b); got != 0.5 {
		t.Fatalf("jaccard = %v, want 0.5", got)
	}
	if got := jaccard(a, map[string]struct{}{}); got != 0 {
		t.Fatalf("jaccard with empty set = %v, want 0", got)
	}
}

func TestBuildClustersGroupsSimilarTitles(t *testing.T) {
	items := []feed.NewsItem{
		{ID: "a1", Title: "Wildfire spreads across northern region", Outlet: "Wire A"},
		{ID: "a2", Title: "Wildfire spreads across northern region overnight", Outlet: "Wire B"},
		{ID: "b1", Title: "Central bank holds interest rates steady", Outlet: "Wire A"},
	}

	clusters := BuildClusters(items)
	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d: %+v", len(clusters), clusters)
	}

	// 前两条同簇，第三条独立成簇
	if items[0].ClusterID == "" || items[0].ClusterID != items[1].ClusterID {
		t.Fatalf("similar titles should share cluster id: %q vs %q", items[0].ClusterID, items[1].ClusterID)
	}
	if items[2].ClusterID == items[0].ClusterID {
		t.Fatalf("unrelated title should get its own cluster")
	}

	for _, cl := range clusters {
		if cl.ID == "" || cl.Topic == "" {
			t.Fatalf("cluster missing id or topic: %+v", cl)
		}
		if len(cl.ItemIDs) == 0 {
			t.Fatalf("cluster without items: %+v", cl)
		}
	}
}

func TestBuildClustersEmptyInput(t *testing.T) {
	if got := BuildClusters(nil); len(got) != 0 {
		t.Fatalf("expected no clusters, got %+v", got)
	}
}

func TestMakeIDStableShortHex(t *testing.T) {
	a := MakeID("https://example.com/a")
	b := MakeID("https://example.com/a")
	c := MakeID("https://example.com/b")
	if a != b {
		t.Fatalf("MakeID not deterministic: %q vs %q", a, b)
	}
	if a == c {
		t.Fatalf("MakeID should differ for different input")
	}
	if len(a) != 12 {
		t.Fatalf("MakeID length = %d, want 12", len(a))
	}
}
