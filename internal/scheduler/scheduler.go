package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/coreylamb90/justnews/internal/loader"
	"github.com/robfig/cron/v3"
)

const refreshTimeout = 60 * time.Second

// Scheduler 周期性同步发布端的 feed 文档
type Scheduler struct {
	cron   *cron.Cron
	loader *loader.Loader
}

func New(spec string, ldr *loader.Loader) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:   c,
		loader: ldr,
	}

	if _, err := c.AddFunc(spec, s.runOnce); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	// 延迟执行首轮同步，避免与用户首次打开页面的请求争抢资源
	const startupDelay = 15 * time.Second
	time.AfterFunc(startupDelay, func() {
		go s.runOnce()
	})
}

func (s *Scheduler) runOnce() {
	log.Println("start feed refresh...")

	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if err := s.loader.Refresh(ctx); err != nil {
		log.Printf("feed refresh error: %v", err)
		return
	}
	log.Println("feed refresh done")
}
