package comment

import (
	"fmt"
	"strings"
	"testing"

	"github.com/aiinasia/core/internal/database"
	"github.com/aiinasia/core/internal/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
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
	return NewService(db, zap.NewNop()), db
}

func createArticle(t *testing.T, db *gorm.DB, slug string) models.ArticleModel {
	t.Helper()
	art := models.ArticleModel{Title: "T", Slug: slug, Status: models.ArticlePublished}
	require.NoError(t, db.Create(&art).Error)
	return art
}

func TestCreateCommentStartsPending(t *testing.T) {
	svc, db := setupService(t)
	art := createArticle(t, db, "a1")

	c, err := svc.Create(CreateInput{ArticleID: art.ID, Author: "anon", Text: "hi"})
	require.NoError(t, err)
	require.NotNil(t, c)
	require.Equal(t, models.CommentPending, c.State)
	require.False(t, c.IsAIGenerated)

	// unknown article yields no comment and no error
	missing, err := svc.Create(CreateInput{ArticleID: "nope", Author: "anon", Text: "hi"})
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestListForArticleOnlyApprovedThreaded(t *testing.T) {
	svc, db := setupService(t)
	art := createArticle(t, db, "a1")

	parent, err := svc.Create(CreateInput{ArticleID: art.ID, Author: "p", Text: "parent"})
	require.NoError(t, err)
	reply, err := svc.Create(CreateInput{ArticleID: art.ID, Author: "r", Text: "reply", ParentID: &parent.ID})
	require.NoError(t, err)
	_, err = svc.Create(CreateInput{ArticleID: art.ID, Author: "s", Text: "still pending"})
	require.NoError(t, err)

	_, err = svc.SetState(parent.ID, models.CommentApproved)
	require.NoError(t, err)
	_, err = svc.SetState(reply.ID, models.CommentApproved)
	require.NoError(t, err)

	listed, err := svc.ListForArticle(art.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "parent", listed[0].Text)
	require.Len(t, listed[0].Children, 1)
	require.Equal(t, "reply", listed[0].Children[0].Text)
}

func TestSetStateAndDelete(t *testing.T) {
	svc, db := setupService(t)
	art := createArticle(t, db, "a1")

	c, err := svc.Create(CreateInput{ArticleID: art.ID, Author: "x", Text: "spammy"})
	require.NoError(t, err)

	updated, err := svc.SetState(c.ID, models.CommentSpam)
	require.NoError(t, err)
	require.Equal(t, models.CommentSpam, updated.State)

	missing, err := svc.SetState("nope", models.CommentApproved)
	require.NoError(t, err)
	require.Nil(t, missing)

	reply, err := svc.Create(CreateInput{ArticleID: art.ID, Author: "y", Text: "r", ParentID: &c.ID})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(c.ID))

	var count int64
	db.Model(&models.CommentModel{}).Where("id IN ?", []string{c.ID, reply.ID}).Count(&count)
	require.EqualValues(t, 0, count)
}
