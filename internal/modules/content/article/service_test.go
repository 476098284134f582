package article

import (
	"fmt"
	"strings"
	"testing"

	"github.com/aiinasia/core/internal/database"
	"github.com/aiinasia/core/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return NewService(db), db
}

func TestCreateArticleLinksCategoriesAndTags(t *testing.T) {
	svc, db := setupService(t)

	cat := models.CategoryModel{Name: "News", Slug: "news"}
	tag := models.TagModel{Name: "AI", Slug: "ai"}
	require.NoError(t, db.Create(&cat).Error)
	require.NoError(t, db.Create(&tag).Error)

	art, err := svc.Create(&CreateArticleDTO{
		Title:       "Hello",
		Slug:        "hello",
		Content:     []models.ContentBlock{models.Paragraph("Body")},
		CategoryIDs: []string{cat.ID},
		TagIDs:      []string{tag.ID},
	}, "")
	require.NoError(t, err)
	require.Equal(t, models.ArticleDraft, art.Status)
	require.Len(t, art.Categories, 1)
	require.Len(t, art.Tags, 1)
	require.Equal(t, 1, art.ReadingTime)

	var link models.ArticleCategory
	require.NoError(t, db.First(&link, "article_model_id = ?", art.ID).Error)
	require.True(t, link.Primary)

	_, err = svc.Create(&CreateArticleDTO{Title: "Dup", Slug: "hello"}, "")
	require.Error(t, err)
}

func TestPublishSetsPublishedAtOnce(t *testing.T) {
	svc, _ := setupService(t)

	art, err := svc.Create(&CreateArticleDTO{Title: "T", Slug: "t"}, "")
	require.NoError(t, err)
	require.Nil(t, art.PublishedAt)

	published, err := svc.SetStatus(art.ID, models.ArticlePublished)
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
	firstPublish := *published.PublishedAt

	// unpublish then republish keeps the original timestamp
	_, err = svc.SetStatus(art.ID, models.ArticleDraft)
	require.NoError(t, err)
	again, err := svc.SetStatus(art.ID, models.ArticlePublished)
	require.NoError(t, err)
	require.Equal(t, firstPublish.Unix(), again.PublishedAt.Unix())
}

func TestGetBySlugFallsBackToURLMapping(t *testing.T) {
	svc, db := setupService(t)

	require.NoError(t, db.Create(&models.URLMappingModel{
		OldPath: "/2019-old-path",
		NewPath: "/news/new-path",
	}).Error)

	art, redirect, err := svc.GetBySlug("2019-old-path")
	require.NoError(t, err)
	require.Nil(t, art)
	require.Equal(t, "/news/new-path", redirect)

	art, redirect, err = svc.GetBySlug("missing-entirely")
	require.NoError(t, err)
	require.Nil(t, art)
	require.Empty(t, redirect)
}

func TestUpdateReplacesLinks(t *testing.T) {
	svc, db := setupService(t)

	catA := models.CategoryModel{Name: "A", Slug: "a"}
	catB := models.CategoryModel{Name: "B", Slug: "b"}
	require.NoError(t, db.Create(&catA).Error)
	require.NoError(t, db.Create(&catB).Error)

	art, err := svc.Create(&CreateArticleDTO{
		Title: "T", Slug: "t", CategoryIDs: []string{catA.ID},
	}, "")
	require.NoError(t, err)

	newCats := []string{catB.ID}
	updated, err := svc.Update(art.ID, &UpdateArticleDTO{CategoryIDs: &newCats})
	require.NoError(t, err)
	require.Len(t, updated.Categories, 1)
	require.Equal(t, "b", updated.Categories[0].Slug)
}

func TestDeleteRemovesLinkRows(t *testing.T) {
	svc, db := setupService(t)

	tag := models.TagModel{Name: "X", Slug: "x"}
	require.NoError(t, db.Create(&tag).Error)

	art, err := svc.Create(&CreateArticleDTO{Title: "T", Slug: "t", TagIDs: []string{tag.ID}}, "")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(art.ID))

	var links int64
	db.Model(&models.ArticleTag{}).Where("article_model_id = ?", art.ID).Count(&links)
	require.EqualValues(t, 0, links)

	got, err := svc.GetByID(art.ID)
	require.NoError(t, err)
	require.Nil(t, got)
}
