package storage

import (
	"strings"
	"time"
)

// Bookmark 用户收藏的条目 ID 集合
type Bookmark struct {
	ItemID    string    `gorm:"primaryKey;size:40" json:"itemId"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListBookmarkIDs 返回所有收藏的条目 ID（按收藏顺序）
func (s *Store) ListBookmarkIDs() []string {
	var list []Bookmark
	if err := s.DB.Order("created_at ASC").Find(&list).Error; err != nil {
		return nil
	}
	ids := make([]string, 0, len(list))
	for _, b := range list {
		ids = append(ids, b.ItemID)
	}
	return ids
}

// AddBookmark 收藏一个条目（已收藏则忽略，集合语义）
func (s *Store) AddBookmark(itemID string) error {
	itemID = NormalizeItemID(itemID)
	if itemID == "" {
		return nil
	}
	b := Bookmark{ItemID: itemID, CreatedAt: time.Now()}
	return s.DB.Where("item_id = ?", itemID).FirstOrCreate(&b).Error
}

// RemoveBookmark 取消收藏
func (s *Store) RemoveBookmark(itemID string) error {
	itemID = NormalizeItemID(itemID)
	if itemID == "" {
		return nil
	}
	return s.DB.Where("item_id = ?", itemID).Delete(&Bookmark{}).Error
}

// NormalizeItemID 校验并规范条目 ID：发布端生成的是短十六进制串。
// 收藏接口和条目入库共用这一套校验，保证入库的条目都能被收藏
func NormalizeItemID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if len(id) == 0 || len(id) > 40 {
		return ""
	}
	for _, c := range id {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return ""
		}
	}
	return id
}
