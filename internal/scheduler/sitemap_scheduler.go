package scheduler

import (
	"github.com/bufgix/recipe-blog-backend/internal/metrics"
	"github.com/bufgix/recipe-blog-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// SitemapRefresher service.SitemapService의 재생성 부분
type SitemapRefresher interface {
	Refresh() ([]byte, error)
}

// SitemapScheduler 캐시된 sitemap.xml을 주기적으로 다시 만든다
type SitemapScheduler struct {
	cron      *cron.Cron
	spec      string
	refresher SitemapRefresher
}

// NewSitemapScheduler spec은 5필드 cron 표현식 (기본 "0 * * * *" = 매시 정각)
func NewSitemapScheduler(refresher SitemapRefresher, spec string) *SitemapScheduler {
	if spec == "" {
		spec = "0 * * * *"
	}
	return &SitemapScheduler{
		cron:      cron.New(),
		spec:      spec,
		refresher: refresher,
	}
}

// Start 스케줄러 시작
func (s *SitemapScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, s.run)
	if err != nil {
		logger.Error("Failed to add cron job for sitemap refresh", err, map[string]interface{}{
			"spec": s.spec,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Sitemap scheduler started successfully", map[string]interface{}{
		"spec": s.spec,
	})
	return nil
}

func (s *SitemapScheduler) run() {
	logger.Info("Starting scheduled sitemap refresh", nil)

	_, err := s.refresher.Refresh()
	metrics.RecordSitemapRefresh(err)
	if err != nil {
		logger.Error("Failed to refresh sitemap from scheduler", err)
		return
	}

	logger.Info("Successfully refreshed sitemap from scheduler", nil)
}

// Stop 스케줄러 중지. 실행 중인 작업이 끝날 때까지 기다린다.
func (s *SitemapScheduler) Stop() {
	logger.Info("Stopping sitemap scheduler...", nil)
	<-s.cron.Stop().Done()
	logger.Info("Sitemap scheduler stopped", nil)
}
