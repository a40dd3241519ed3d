package storage

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 最近一次成功拉取的整份 summaries.json，固定 key 只存一份。
// Redis 为主（快），Postgres 作冷启动兜底（Redis 清空后仍可回退）。
const (
	feedSnapshotKey      = "feed:lastgood"
	feedSnapshotRedisTTL = 0 // 不过期，始终保留最近一次成功的快照
)

// FeedSnapshot 快照的 Postgres 镜像表
type FeedSnapshot struct {
	Key       string    `gorm:"primaryKey;size:40" json:"key"`
	Data      string    `gorm:"type:text" json:"data"`
	FetchedAt time.Time `gorm:"index" json:"fetchedAt"`
}

// SaveFeedSnapshot 写入最近一次成功拉取的原始文档
func (s *Store) SaveFeedSnapshot(ctx context.Context, raw []byte) error {
	if s.Redis != nil {
		// Redis 写失败不阻断落库，读取方会走 DB 兜底
		if err := s.Redis.Set(ctx, feedSnapshotKey, raw, feedSnapshotRedisTTL).Err(); err != nil {
			log.Printf("warn: cache feed snapshot: %v", err)
		}
	}
	snap := FeedSnapshot{
		Key:       feedSnapshotKey,
		Data:      string(raw),
		FetchedAt: time.Now(),
	}
	return s.DB.Save(&snap).Error
}

// LoadFeedSnapshot 读取最近一次成功的快照；没有时返回 false
func (s *Store) LoadFeedSnapshot(ctx context.Context) ([]byte, bool) {
	if s.Redis != nil {
		if bs, err := s.Redis.Get(ctx, feedSnapshotKey).Bytes(); err == nil && len(bs) > 0 {
			return bs, true
		}
	}

	var snap FeedSnapshot
	silent := s.DB.Session(&gorm.Session{Logger: s.DB.Logger.LogMode(logger.Silent)})
	if err := silent.Where("key = ?", feedSnapshotKey).First(&snap).Error; err != nil {
		return nil, false
	}
	return []byte(snap.Data), true
}
