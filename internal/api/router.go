package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/coreylamb90/justnews/internal/loader"
	"github.com/coreylamb90/justnews/internal/storage"
	"github.com/coreylamb90/justnews/internal/trending"
	"github.com/gin-gonic/gin"
)

// 热词统计默认展示的个数与参与统计的条目上限
const (
	defaultTrendingTopN = 12
	trendingItemsLimit  = 500
	refreshTimeout      = 60 * time.Second
)

type Server struct {
	store     *storage.Store
	loader    *loader.Loader
	extractor *trending.Extractor
}

func NewServer(store *storage.Store, ldr *loader.Loader, extractor *trending.Extractor) *Server {
	return &Server{store: store, loader: ldr, extractor: extractor}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/items", s.listItems)
		v1.GET("/trending", s.listTrending)
		v1.GET("/clusters", s.listClusters)

		v1.GET("/bookmarks", s.listBookmarks)
		v1.POST("/bookmarks/:id", s.addBookmark)
		v1.DELETE("/bookmarks/:id", s.removeBookmark)

		v1.POST("/refresh", s.refresh)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listItems(c *gin.Context) {
	sentiment := c.Query("sentiment")
	switch sentiment {
	case "", "positive", "neutral", "negative":
	default:
		sentiment = ""
	}

	limitStr := c.DefaultQuery("limit", "50")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 50
	}

	f := storage.ItemFilter{
		Category:   c.Query("category"),
		Sentiment:  sentiment,
		Keyword:    c.Query("q"),
		Bookmarked: c.Query("bookmarked") == "true",
		Limit:      limit,
	}

	items, err := s.store.ListItems(f)
	if err != nil {
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    items,
	})
}

// listTrending 对当前已加载的条目做热词统计。
// 纯函数重算，不做增量维护：条目量级（≤500）下每次算都足够快。
func (s *Server) listTrending(c *gin.Context) {
	topStr := c.DefaultQuery("top", strconv.Itoa(defaultTrendingTopN))
	top, err := strconv.Atoi(topStr)
	if err != nil || top < 0 {
		top = defaultTrendingTopN
	}

	items, err := s.store.ListItems(storage.ItemFilter{Limit: trendingItemsLimit})
	if err != nil {
		internalError(c)
		return
	}

	topics := s.extractor.Extract(loader.ToFeedItems(items), top)
	if topics == nil {
		topics = []trending.TopicCount{}
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    topics,
	})
}

func (s *Server) listClusters(c *gin.Context) {
	clusters, err := s.store.ListClusters()
	if err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    clusters,
	})
}

func (s *Server) listBookmarks(c *gin.Context) {
	ids := s.store.ListBookmarkIDs()
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    ids,
	})
}

func (s *Server) addBookmark(c *gin.Context) {
	id := storage.NormalizeItemID(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "invalid_argument",
			"message": "invalid item id",
		})
		return
	}
	if err := s.store.AddBookmark(id); err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": "ok", "message": "success"})
}

func (s *Server) removeBookmark(c *gin.Context) {
	id := storage.NormalizeItemID(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "invalid_argument",
			"message": "invalid item id",
		})
		return
	}
	if err := s.store.RemoveBookmark(id); err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": "ok", "message": "success"})
}

// refresh 手动触发一次 feed 同步（等价于等下一个 cron 周期）
func (s *Server) refresh(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), refreshTimeout)
	defer cancel()

	if err := s.loader.Refresh(ctx); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"code":    "upstream_error",
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": "ok", "message": "success"})
}

func internalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"code":    "internal_error",
		"message": "internal server error",
	})
}
