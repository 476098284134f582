package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/aiinasia/core/internal/models"
	"github.com/aiinasia/core/internal/pkg/pagination"
	"github.com/aiinasia/core/internal/pkg/response"
	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// chunkSize is the number of rows processed between chunk-boundary
// cancellation checks and incremental log updates.
const chunkSize = 50

// Service drives legacy CSV imports: tokenizing, validation, block parsing,
// persistence, cancellation with compensating deletes, and batch rollback.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger

	mu     sync.Mutex
	active map[string]*ImportRun
}

func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		db:     db,
		logger: logger.Named("ImporterService"),
		active: make(map[string]*ImportRun),
	}
}

// Prepare tokenizes the CSV, persists an in_progress log entry and registers
// the run so it can be cancelled while executing.
func (s *Service) Prepare(filename, csvText string) (*ImportRun, error) {
	rows, dropped := ParseCSV(csvText)
	if len(rows) == 0 && dropped == 0 {
		return nil, fmt.Errorf("no data rows found in %q", filename)
	}

	run := &ImportRun{
		BatchID:     uuid.New().String(),
		Filename:    filename,
		Total:       len(rows),
		DroppedRows: dropped,
		rows:        rows,
	}

	entry := models.MigrationLogModel{
		BatchID:     run.BatchID,
		Filename:    filename,
		TotalRows:   run.Total,
		DroppedRows: dropped,
		Status:      models.BatchInProgress,
		Errors:      models.ImportRowErrors{},
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("create migration log: %w", err)
	}

	s.mu.Lock()
	s.active[run.BatchID] = run
	s.mu.Unlock()

	return run, nil
}

// Execute processes all rows of a prepared run. Rows are handled sequentially
// in chunks; the cancellation flag is observed before each chunk and around
// each row write. On cancellation every article and URL mapping already
// written under the batch id is deleted and the batch ends as cancelled.
func (s *Service) Execute(ctx context.Context, run *ImportRun, progress ProgressFunc) {
	defer func() {
		s.mu.Lock()
		delete(s.active, run.BatchID)
		s.mu.Unlock()
	}()

	for start := 0; start < len(run.rows); start += chunkSize {
		if run.ShouldStop(ctx) {
			s.compensate(ctx, run)
			return
		}
		end := start + chunkSize
		if end > len(run.rows) {
			end = len(run.rows)
		}
		for i := start; i < end; i++ {
			if run.ShouldStop(ctx) {
				s.compensate(ctx, run)
				return
			}
			s.processRow(ctx, run, run.rows[i], i)
			if run.ShouldStop(ctx) {
				s.compensate(ctx, run)
				return
			}
			if progress != nil {
				progress(i+1, run.Total)
			}
		}
		s.updateLog(run, models.BatchInProgress)
	}

	status := models.BatchCompleted
	if len(run.Errors) > 0 {
		status = models.BatchCompletedWithErrors
	}
	s.updateLog(run, status)
	s.logger.Info("import finished",
		zap.String("batch_id", run.BatchID),
		zap.String("status", string(status)),
		zap.Int("success", run.Success),
		zap.Int("failed", run.Failed),
	)
}

// Cancel flips the cancellation flag of a running batch.
func (s *Service) Cancel(batchID string) error {
	s.mu.Lock()
	run, ok := s.active[batchID]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("batch %q is not running", batchID)
	}
	run.Cancel()
	return nil
}

func (s *Service) processRow(ctx context.Context, run *ImportRun, row RowRecord, idx int) {
	rowNum := idx + 2

	if errs := ValidateRow(row, idx); len(errs) > 0 {
		run.Failed++
		run.Errors = append(run.Errors, errs...)
		return
	}

	slug := SanitizeURL(strings.TrimSpace(row["slug"]))

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.ArticleModel{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		run.Failed++
		run.recordError(rowNum, "general", fmt.Sprintf("slug lookup failed: %v", err))
		return
	}
	if count > 0 {
		run.Failed++
		run.recordError(rowNum, "slug", fmt.Sprintf("article with slug %q already exists, skipped", slug))
		return
	}

	blocks := resolveContent(row["content"])

	article := models.ArticleModel{
		Title:            SanitizeText(row["title"]),
		Slug:             slug,
		Content:          models.Blocks(blocks),
		Excerpt:          SanitizeText(row["excerpt"]),
		Status:           models.ArticleDraft,
		ArticleType:      strings.TrimSpace(row["article_type"]),
		MetaTitle:        SanitizeText(row["meta_title"]),
		MetaDescription:  SanitizeText(row["meta_description"]),
		FeaturedImageURL: SanitizeURL(strings.TrimSpace(row["featured_image_url"])),
		FeaturedImageAlt: SanitizeText(row["featured_image_alt"]),
		PublishedAt:      parsePublishedAt(row["published_at"]),
		ReadingTime:      CalculateReadingTime(blocks),
		ImportBatchID:    &run.BatchID,
		AuthorID:         s.resolveAuthor(ctx, row["author"]),
	}

	if err := s.db.WithContext(ctx).Create(&article).Error; err != nil {
		run.Failed++
		if isDuplicateSlugError(err) {
			run.recordError(rowNum, "slug", fmt.Sprintf("article with slug %q already exists, skipped", slug))
		} else {
			run.recordError(rowNum, "general", err.Error())
		}
		return
	}

	primarySlug := s.attachCategories(ctx, run, rowNum, article.ID, row["categories"])
	s.attachTags(ctx, run, rowNum, article.ID, row["tags"])

	if oldSlug := strings.TrimSpace(row["old_slug"]); oldSlug != "" {
		s.createURLMapping(ctx, run, rowNum, oldSlug, primarySlug, slug)
	}

	// Relation failures above are recorded but the article itself persisted,
	// so the row still counts as a success.
	run.Success++
}

// resolveContent accepts pre-structured block JSON and falls back to the
// WordPress block parser for everything else.
func resolveContent(raw string) []models.ContentBlock {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "[") {
		var blocks []models.ContentBlock
		if err := json.Unmarshal([]byte(trimmed), &blocks); err == nil && len(blocks) > 0 && allBlocksTyped(blocks) {
			return blocks
		}
	}
	return ParseWordPressContent(raw)
}

func allBlocksTyped(blocks []models.ContentBlock) bool {
	for _, b := range blocks {
		if b.Type == "" {
			return false
		}
	}
	return true
}

func (s *Service) resolveAuthor(ctx context.Context, raw string) *string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return nil
	}
	var user models.UserModel
	err := s.db.WithContext(ctx).
		Where("LOWER(username) = ? OR LOWER(name) = ?", strings.ToLower(name), strings.ToLower(name)).
		First(&user).Error
	if err != nil {
		return nil
	}
	return &user.ID
}

// attachCategories resolves a comma-separated category list against existing
// categories (case-insensitive on name or slug). The first match becomes the
// primary category and its slug is returned for URL mapping. Unmatched names
// are skipped; categories are never auto-created.
func (s *Service) attachCategories(ctx context.Context, run *ImportRun, rowNum int, articleID, raw string) string {
	primarySlug := ""
	for _, name := range splitList(raw) {
		var cat models.CategoryModel
		err := s.db.WithContext(ctx).
			Where("LOWER(name) = ? OR LOWER(slug) = ?", strings.ToLower(name), strings.ToLower(name)).
			First(&cat).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			run.recordError(rowNum, "general", fmt.Sprintf("category %q: %v", name, err))
			continue
		}

		link := models.ArticleCategory{
			ArticleModelID:  articleID,
			CategoryModelID: cat.ID,
			Primary:         primarySlug == "",
		}
		if err := s.db.WithContext(ctx).Create(&link).Error; err != nil {
			run.recordError(rowNum, "general", fmt.Sprintf("category link %q: %v", name, err))
			continue
		}
		if primarySlug == "" {
			primarySlug = cat.Slug
		}
	}
	return primarySlug
}

// attachTags resolves a comma-separated tag list (case-insensitive on name)
// and auto-creates tags that do not exist yet.
func (s *Service) attachTags(ctx context.Context, run *ImportRun, rowNum int, articleID, raw string) {
	for _, name := range splitList(raw) {
		var tag models.TagModel
		err := s.db.WithContext(ctx).
			Where("LOWER(name) = ?", strings.ToLower(name)).
			First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = models.TagModel{Name: name, Slug: slugify(name)}
			err = s.db.WithContext(ctx).Create(&tag).Error
		}
		if err != nil {
			run.recordError(rowNum, "general", fmt.Sprintf("tag %q: %v", name, err))
			continue
		}

		link := models.ArticleTag{ArticleModelID: articleID, TagModelID: tag.ID}
		if err := s.db.WithContext(ctx).Create(&link).Error; err != nil {
			run.recordError(rowNum, "general", fmt.Sprintf("tag link %q: %v", name, err))
		}
	}
}

func (s *Service) createURLMapping(ctx context.Context, run *ImportRun, rowNum int, oldSlug, primarySlug, slug string) {
	segment := primarySlug
	if segment == "" {
		segment = "articles"
	}
	mapping := models.URLMappingModel{
		OldPath:       "/" + strings.TrimPrefix(SanitizeURL(oldSlug), "/"),
		NewPath:       "/" + segment + "/" + slug,
		ImportBatchID: &run.BatchID,
	}
	if err := s.db.WithContext(ctx).Create(&mapping).Error; err != nil {
		run.recordError(rowNum, "general", fmt.Sprintf("url mapping %q: %v", oldSlug, err))
	}
}

// compensate removes every article and URL mapping written under the batch id
// and finalizes the batch as cancelled. Tags and category links created
// earlier in the run are left in place, matching the legacy importer's
// rollback scope.
func (s *Service) compensate(ctx context.Context, run *ImportRun) {
	s.logger.Info("import cancelled, removing batch writes", zap.String("batch_id", run.BatchID))

	if err := s.db.Unscoped().Where("import_batch_id = ?", run.BatchID).Delete(&models.ArticleModel{}).Error; err != nil {
		s.logger.Warn("cancel cleanup: delete articles", zap.String("batch_id", run.BatchID), zap.Error(err))
	}
	if err := s.db.Unscoped().Where("import_batch_id = ?", run.BatchID).Delete(&models.URLMappingModel{}).Error; err != nil {
		s.logger.Warn("cancel cleanup: delete url mappings", zap.String("batch_id", run.BatchID), zap.Error(err))
	}

	run.Success = 0
	s.updateLog(run, models.BatchCancelled)
}

func (s *Service) updateLog(run *ImportRun, status models.BatchStatus) {
	err := s.db.Model(&models.MigrationLogModel{}).
		Where("batch_id = ?", run.BatchID).
		Updates(map[string]interface{}{
			"status":        status,
			"success_count": run.Success,
			"failed_count":  run.Failed,
			"dropped_rows":  run.DroppedRows,
			"errors":        run.Errors,
		}).Error
	if err != nil {
		s.logger.Warn("update migration log", zap.String("batch_id", run.BatchID), zap.Error(err))
	}
}

// Rollback deletes everything a batch wrote, dependents first so the article
// delete never violates referential integrity: category links, tag links,
// comments, reading history, bookmarks, editors picks, newsletter features
// and recommendations, then the articles, then the URL mappings. Each step is
// best-effort; a failing step is logged and later steps still run.
func (s *Service) Rollback(ctx context.Context, batchID string) error {
	entry, err := s.GetBatch(batchID)
	if err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("batch %q not found", batchID)
	}
	if entry.Status == models.BatchInProgress {
		return fmt.Errorf("batch %q is still running", batchID)
	}

	var articleIDs []string
	if err := s.db.WithContext(ctx).Model(&models.ArticleModel{}).
		Where("import_batch_id = ?", batchID).
		Pluck("id", &articleIDs).Error; err != nil {
		return fmt.Errorf("collect batch articles: %w", err)
	}

	if len(articleIDs) > 0 {
		dependents := []struct {
			name   string
			column string
			model  interface{}
		}{
			{"article_categories", "article_model_id", &models.ArticleCategory{}},
			{"article_tags", "article_model_id", &models.ArticleTag{}},
			{"comments", "article_id", &models.CommentModel{}},
			{"reading_history", "article_id", &models.ReadingHistoryModel{}},
			{"bookmarks", "article_id", &models.BookmarkModel{}},
			{"editors_picks", "article_id", &models.EditorsPickModel{}},
			{"newsletter_features", "article_id", &models.NewsletterFeatureModel{}},
			{"recommendations", "article_id", &models.RecommendationModel{}},
		}
		for _, dep := range dependents {
			if err := s.db.WithContext(ctx).Unscoped().
				Where(dep.column+" IN ?", articleIDs).
				Delete(dep.model).Error; err != nil {
				s.logger.Warn("rollback: delete dependents failed, continuing",
					zap.String("batch_id", batchID),
					zap.String("table", dep.name),
					zap.Error(err),
				)
			}
		}
		// recommendations can also reference a batch article as the target
		if err := s.db.WithContext(ctx).Unscoped().
			Where("recommended_id IN ?", articleIDs).
			Delete(&models.RecommendationModel{}).Error; err != nil {
			s.logger.Warn("rollback: delete inbound recommendations failed, continuing",
				zap.String("batch_id", batchID), zap.Error(err))
		}

		if err := s.db.WithContext(ctx).Unscoped().
			Where("import_batch_id = ?", batchID).
			Delete(&models.ArticleModel{}).Error; err != nil {
			s.logger.Warn("rollback: delete articles failed, continuing",
				zap.String("batch_id", batchID), zap.Error(err))
		}
	}

	if err := s.db.WithContext(ctx).Unscoped().
		Where("import_batch_id = ?", batchID).
		Delete(&models.URLMappingModel{}).Error; err != nil {
		s.logger.Warn("rollback: delete url mappings failed, continuing",
			zap.String("batch_id", batchID), zap.Error(err))
	}

	return s.db.Model(&models.MigrationLogModel{}).
		Where("batch_id = ?", batchID).
		Update("status", models.BatchRolledBack).Error
}

// ListBatches returns migration logs newest first.
func (s *Service) ListBatches(q pagination.Query) ([]models.MigrationLogModel, response.Pagination, error) {
	tx := s.db.Model(&models.MigrationLogModel{}).Order("created_at DESC")
	var items []models.MigrationLogModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

// GetBatch returns one migration log, or nil when it does not exist.
func (s *Service) GetBatch(batchID string) (*models.MigrationLogModel, error) {
	var entry models.MigrationLogModel
	if err := s.db.First(&entry, "batch_id = ?", batchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// DeleteLog removes a batch's log entry only. Articles and mappings remain
// untouched; running batches cannot have their log removed.
func (s *Service) DeleteLog(batchID string) error {
	entry, err := s.GetBatch(batchID)
	if err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("batch %q not found", batchID)
	}
	if entry.Status == models.BatchInProgress {
		return fmt.Errorf("batch %q is still running", batchID)
	}
	return s.db.Unscoped().Delete(&models.MigrationLogModel{}, "batch_id = ?", batchID).Error
}

func isDuplicateSlugError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysqlDriver.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

var reSlugStrip = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = reSlugStrip.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

var publishedAtLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parsePublishedAt(raw string) *time.Time {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	for _, layout := range publishedAtLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return &t
		}
	}
	return nil
}
