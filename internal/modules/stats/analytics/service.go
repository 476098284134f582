package analytics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aiinasia/core/internal/models"
	"github.com/aiinasia/core/internal/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	keyArticleViews = "aia:views:article:%s"
	keySiteDaily    = "aia:views:site:%s" // date formatted as 2006-01-02
	dailyKeyTTL     = 40 * 24 * time.Hour
	flushThreshold  = 10
)

type Service struct {
	db     *gorm.DB
	cache  *redis.Client
	logger *zap.Logger
}

func NewService(db *gorm.DB, cache *redis.Client, logger *zap.Logger) *Service {
	return &Service{db: db, cache: cache, logger: logger.Named("AnalyticsService")}
}

// TrackView bumps the article and site counters. The article row's view_count
// is flushed from Redis every few hits to keep writes off the hot path.
func (s *Service) TrackView(ctx context.Context, articleID string, readerID string) error {
	articleKey := fmt.Sprintf(keyArticleViews, articleID)
	count, err := s.cache.Incr(ctx, articleKey)
	if err != nil {
		return err
	}

	dailyKey := fmt.Sprintf(keySiteDaily, time.Now().Format("2006-01-02"))
	if _, err := s.cache.Incr(ctx, dailyKey); err != nil {
		s.logger.Warn("site daily counter failed", zap.Error(err))
	}
	if err := s.cache.Expire(ctx, dailyKey, dailyKeyTTL); err != nil {
		s.logger.Warn("site daily expire failed", zap.Error(err))
	}

	if count%flushThreshold == 0 {
		if err := s.db.Model(&models.ArticleModel{}).
			Where("id = ?", articleID).
			Update("view_count", gorm.Expr("view_count + ?", flushThreshold)).Error; err != nil {
			s.logger.Warn("view count flush failed",
				zap.String("article_id", articleID), zap.Error(err))
		}
	}

	if readerID != "" {
		s.recordHistory(articleID, readerID)
	}
	return nil
}

func (s *Service) recordHistory(articleID, readerID string) {
	now := time.Now()
	var existing models.ReadingHistoryModel
	err := s.db.First(&existing, "article_id = ? AND reader_id = ?", articleID, readerID).Error
	if err == nil {
		s.db.Model(&existing).Update("read_at", &now)
		return
	}
	entry := models.ReadingHistoryModel{ArticleID: articleID, ReaderID: readerID, ReadAt: &now}
	if err := s.db.Create(&entry).Error; err != nil {
		s.logger.Warn("reading history write failed", zap.Error(err))
	}
}

// ArticleViews returns the live counter for one article, combining the
// flushed database value with the pending Redis remainder.
func (s *Service) ArticleViews(ctx context.Context, articleID string) (int64, error) {
	var art models.ArticleModel
	if err := s.db.Select("view_count").First(&art, "id = ?", articleID).Error; err != nil {
		return 0, err
	}

	raw, err := s.cache.Get(ctx, fmt.Sprintf(keyArticleViews, articleID))
	if err != nil {
		return int64(art.ViewCount), nil
	}
	pending, _ := strconv.ParseInt(raw, 10, 64)
	return int64(art.ViewCount) + pending%flushThreshold, nil
}

// DailySiteViews returns per-day site view totals for the last n days.
func (s *Service) DailySiteViews(ctx context.Context, days int) (map[string]int64, error) {
	if days < 1 {
		days = 7
	}
	if days > 30 {
		days = 30
	}

	out := make(map[string]int64, days)
	for i := 0; i < days; i++ {
		day := time.Now().AddDate(0, 0, -i).Format("2006-01-02")
		raw, err := s.cache.Get(ctx, fmt.Sprintf(keySiteDaily, day))
		if err != nil {
			return nil, err
		}
		n, _ := strconv.ParseInt(raw, 10, 64)
		out[day] = n
	}
	return out, nil
}

// Popular returns the most viewed published articles.
func (s *Service) Popular(limit int) ([]models.ArticleModel, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	var articles []models.ArticleModel
	err := s.db.
		Where("status = ?", models.ArticlePublished).
		Order("view_count DESC").
		Limit(limit).
		Find(&articles).Error
	return articles, err
}
