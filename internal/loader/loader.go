package loader

import (
	"context"
	"fmt"
	"log"

	"github.com/coreylamb90/justnews/internal/feed"
	"github.com/coreylamb90/justnews/internal/storage"
)

// feedStore 是 Loader 依赖的存储面，*storage.Store 实现了它
type feedStore interface {
	SaveFeedSnapshot(ctx context.Context, raw []byte) error
	LoadFeedSnapshot(ctx context.Context) ([]byte, bool)
	SaveItems(items []storage.Item) error
	ReplaceClusters(clusters []storage.Cluster) error
}

// Loader 负责把发布端的 summaries.json 同步进存储层。
// 拉取失败时回退到最近一次成功的快照，保证客户端始终有内容可读。
type Loader struct {
	client *feed.Client
	store  feedStore
}

func New(client *feed.Client, store feedStore) *Loader {
	return &Loader{client: client, store: store}
}

// Refresh 拉取并应用一次最新的文档
func (l *Loader) Refresh(ctx context.Context) error {
	doc, raw, err := l.client.Fetch(ctx)
	if err != nil {
		log.Printf("feed fetch failed, falling back to cached snapshot: %v", err)
		bs, ok := l.store.LoadFeedSnapshot(ctx)
		if !ok {
			return fmt.Errorf("loader: fetch failed and no cached snapshot: %w", err)
		}
		cached, derr := feed.Decode(bs)
		if derr != nil {
			return fmt.Errorf("loader: decode cached snapshot: %w", derr)
		}
		return l.apply(cached)
	}

	if err := l.store.SaveFeedSnapshot(ctx, raw); err != nil {
		log.Printf("warn: save feed snapshot: %v", err)
	}
	return l.apply(doc)
}

func (l *Loader) apply(doc *feed.Document) error {
	items := NormalizeItems(doc.Items)
	if err := l.store.SaveItems(items); err != nil {
		return fmt.Errorf("loader: save items: %w", err)
	}

	clusters := convertClusters(doc.Clusters)
	if err := l.store.ReplaceClusters(clusters); err != nil {
		return fmt.Errorf("loader: replace clusters: %w", err)
	}

	log.Printf("feed applied: items=%d clusters=%d generated_at=%s",
		len(items), len(clusters), doc.GeneratedAt)
	return nil
}

func convertClusters(in []feed.Cluster) []storage.Cluster {
	out := make([]storage.Cluster, 0, len(in))
	for _, c := range in {
		if c.ID == "" {
			continue
		}
		// 簇成员 ID 与条目入库走同一套校验，不合规的引用直接丢弃
		ids := make([]string, 0, len(c.ItemIDs))
		for _, id := range c.ItemIDs {
			if nid := storage.NormalizeItemID(id); nid != "" {
				ids = append(ids, nid)
			}
		}
		if len(ids) == 0 {
			continue
		}
		out = append(out, storage.Cluster{
			ID:       c.ID,
			Topic:    c.Topic,
			Keywords: c.Keywords,
			ItemIDs:  ids,
			Outlets:  c.Outlets,
		})
	}
	return out
}
