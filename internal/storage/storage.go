package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Item 一条入库后的新闻摘要，来源于发布端的 summaries.json
type Item struct {
	ID     string `gorm:"primaryKey;size:40" json:"id"`
	Title  string `gorm:"size:512" json:"title"`
	Outlet string `gorm:"size:256" json:"outlet"`
	URL    string `gorm:"size:1024;index" json:"url"`
	// PublishedRaw 保留上游原始时间文本（可能为空或无法解析），展示用；
	// PublishedAt 是尽力解析的结果，仅用于排序，解析失败为零值（排序时自然垫底）
	PublishedRaw string    `gorm:"size:64" json:"publishedAt"`
	PublishedAt  time.Time `gorm:"index" json:"publishedTime"`

	Bullets  datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"bullets"`
	Category string                      `gorm:"size:64;index" json:"category"`

	SentimentLabel string  `gorm:"size:16;index" json:"sentimentLabel"`
	SentimentScore float64 `json:"sentimentScore"`

	Moods     datatypes.JSONMap `gorm:"type:jsonb" json:"moods"`
	ClusterID string            `gorm:"size:40;index" json:"clusterId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Cluster 同一事件的多信源聚合（由发布端计算，整批替换）
type Cluster struct {
	ID       string                      `gorm:"primaryKey;size:40" json:"id"`
	Topic    string                      `gorm:"size:256" json:"topic"`
	Keywords datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"keywords"`
	ItemIDs  datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"itemIds"`
	Outlets  datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"outlets"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Store struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewStore(dsn, redisAddr string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&Item{}, &Cluster{}, &Bookmark{}, &FeedSnapshot{}); err != nil {
		return nil, err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("warn: redis ping failed: %v", err)
	}

	return &Store{DB: db, Redis: rdb}, nil
}

// toValidUTF8 将字符串规范为合法 UTF-8，避免 PostgreSQL invalid byte sequence 错误
func toValidUTF8(s string) string {
	return strings.ToValidUTF8(s, "�")
}

// truncateRunesDB 按 rune 数截断字符串，防止上游异常长文本超出字段长度导致入库失败
func truncateRunesDB(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return string(rs[:limit])
}

// SaveItems 保存一批条目，以 ID 作为幂等键；已存在时更新摘要与情感等字段。
// 发布端会对同一事件反复重摘要，所以更新而不是忽略。
func (s *Store) SaveItems(items []Item) error {
	for i := range items {
		it := items[i]
		it.Title = truncateRunesDB(toValidUTF8(it.Title), 512)
		it.Outlet = truncateRunesDB(toValidUTF8(it.Outlet), 256)

		if err := s.DB.Where("id = ?", it.ID).FirstOrCreate(&it).Error; err != nil {
			return err
		}
		if err := s.DB.Model(&Item{ID: it.ID}).Updates(map[string]any{
			"title":           it.Title,
			"outlet":          it.Outlet,
			"url":             it.URL,
			"published_raw":   it.PublishedRaw,
			"published_at":    it.PublishedAt,
			"bullets":         it.Bullets,
			"category":        it.Category,
			"sentiment_label": it.SentimentLabel,
			"sentiment_score": it.SentimentScore,
			"moods":           it.Moods,
			"cluster_id":      it.ClusterID,
		}).Error; err != nil {
			return err
		}
	}

	// 列表缓存靠短 TTL 自然过期，不做按 key 通配删除
	return nil
}

// ReplaceClusters 整批替换聚合结果：聚合由发布端对全量条目重算，没有增量语义
func (s *Store) ReplaceClusters(clusters []Cluster) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Cluster{}).Error; err != nil {
			return err
		}
		for i := range clusters {
			if err := tx.Create(&clusters[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ItemFilter 列表筛选条件，与前端的筛选控件一一对应
type ItemFilter struct {
	Category   string // 分类标签，空为不限
	Sentiment  string // positive / neutral / negative，空为不限
	Keyword    string // 标题与要点的子串匹配（大小写不敏感）
	Bookmarked bool   // 只看收藏
	Limit      int
}

// ListItems 按筛选条件返回条目，按发布时间倒序（无法解析时间的排在最后），
// 并使用 Redis 做简单缓存
func (s *Store) ListItems(f ItemFilter) ([]Item, error) {
	if f.Limit <= 0 || f.Limit > 1000 {
		f.Limit = 50
	}

	ctx := context.Background()
	cacheKey := fmt.Sprintf("items:list:%s:%s:%s:%t:%d",
		f.Category, f.Sentiment, f.Keyword, f.Bookmarked, f.Limit)

	if s.Redis != nil {
		if bs, err := s.Redis.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached []Item
			if err := json.Unmarshal(bs, &cached); err == nil {
				return cached, nil
			}
		}
	}

	db := s.DB.Model(&Item{})
	if f.Category != "" {
		db = db.Where("category = ?", f.Category)
	}
	if f.Sentiment != "" {
		db = db.Where("sentiment_label = ?", f.Sentiment)
	}
	if f.Keyword != "" {
		kw := "%" + f.Keyword + "%"
		db = db.Where("(title ILIKE ? OR bullets::text ILIKE ?)", kw, kw)
	}
	if f.Bookmarked {
		db = db.Where("id IN (?)", s.DB.Model(&Bookmark{}).Select("item_id"))
	}

	var list []Item
	// 零值 published_at 在 DESC 下自然排在最后
	if err := db.Order("published_at DESC").Order("created_at DESC").Limit(f.Limit).Find(&list).Error; err != nil {
		return nil, err
	}

	// 回写缓存（5 分钟，减轻列表接口的 DB 压力）
	const listCacheTTL = 5 * time.Minute
	if s.Redis != nil && len(list) > 0 {
		if bs, err := json.Marshal(list); err == nil {
			_ = s.Redis.Set(ctx, cacheKey, bs, listCacheTTL).Err()
		}
	}

	return list, nil
}

// ListClusters 返回全部聚合
func (s *Store) ListClusters() ([]Cluster, error) {
	var list []Cluster
	err := s.DB.Order("created_at ASC").Find(&list).Error
	return list, err
}
