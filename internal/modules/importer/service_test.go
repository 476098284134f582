package importer

import (
	"context"
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

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	db := setupDB(t)
	return NewService(db, nil), db
}

const importHeader = "title,slug,old_slug,content,excerpt,categories,tags,published_at\n"

func TestImportCreatesArticles(t *testing.T) {
	svc, db := newTestService(t)
	require.NoError(t, db.Create(&models.CategoryModel{Name: "News", Slug: "news"}).Error)

	csv := importHeader +
		`First Post,first-post,2019/05/first-post,"<!-- wp:paragraph --><p>Hello world.</p><!-- /wp:paragraph -->",An excerpt,News,"AI,Robots",2024-03-01` + "\n" +
		`Second Post,second-post,,"<!-- wp:paragraph --><p>More text.</p><!-- /wp:paragraph -->",,,,` + "\n"

	run, err := svc.Prepare("legacy.csv", csv)
	require.NoError(t, err)
	require.Equal(t, 2, run.Total)
	svc.Execute(context.Background(), run, nil)

	require.Equal(t, 2, run.Success)
	require.Equal(t, 0, run.Failed)

	entry, err := svc.GetBatch(run.BatchID)
	require.NoError(t, err)
	require.NotNil(t, entry)
	require.Equal(t, models.BatchCompleted, entry.Status)
	require.Equal(t, 2, entry.SuccessCount)

	var first models.ArticleModel
	require.NoError(t, db.First(&first, "slug = ?", "first-post").Error)
	require.Equal(t, models.ArticleDraft, first.Status)
	require.Equal(t, run.BatchID, *first.ImportBatchID)
	require.NotNil(t, first.PublishedAt)
	require.Equal(t, 1, first.ReadingTime)
	require.Len(t, first.Content, 1)
	require.Equal(t, "Hello world.", first.Content[0].Content)

	// tags are auto-created, categories are not
	var tagCount int64
	db.Model(&models.TagModel{}).Count(&tagCount)
	require.EqualValues(t, 2, tagCount)

	var mapping models.URLMappingModel
	require.NoError(t, db.First(&mapping, "import_batch_id = ?", run.BatchID).Error)
	require.Equal(t, "/2019/05/first-post", mapping.OldPath)
	require.Equal(t, "/news/first-post", mapping.NewPath)
}

func TestImportRecordsRowErrors(t *testing.T) {
	svc, _ := newTestService(t)

	csv := importHeader +
		`,missing-title,,"<p>text</p>",,,,` + "\n" +
		`Good Row,good-row,,"<p>fine</p>",,,,` + "\n"

	run, err := svc.Prepare("legacy.csv", csv)
	require.NoError(t, err)
	svc.Execute(context.Background(), run, nil)

	require.Equal(t, 1, run.Success)
	require.Equal(t, 1, run.Failed)

	entry, err := svc.GetBatch(run.BatchID)
	require.NoError(t, err)
	require.Equal(t, models.BatchCompletedWithErrors, entry.Status)
	require.Len(t, entry.Errors, 1)
	require.Equal(t, 2, entry.Errors[0].Row)
	require.Equal(t, "title", entry.Errors[0].Field)
}

func TestImportSkipsDuplicateSlug(t *testing.T) {
	svc, db := newTestService(t)

	csv := importHeader +
		`One,same-slug,,"<p>a</p>",,,,` + "\n" +
		`Two,same-slug,,"<p>b</p>",,,,` + "\n"

	run, err := svc.Prepare("legacy.csv", csv)
	require.NoError(t, err)
	svc.Execute(context.Background(), run, nil)

	require.Equal(t, 1, run.Success)
	require.Equal(t, 1, run.Failed)
	require.Len(t, run.Errors, 1)
	require.Equal(t, "slug", run.Errors[0].Field)
	require.Contains(t, run.Errors[0].Message, "already exists")

	var count int64
	db.Model(&models.ArticleModel{}).Where("slug = ?", "same-slug").Count(&count)
	require.EqualValues(t, 1, count)
}

func TestImportCancelCompensates(t *testing.T) {
	svc, db := newTestService(t)

	var b strings.Builder
	b.WriteString(importHeader)
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&b, `Post %d,post-%d,old-%d,"<p>text</p>",,,"Tag%d",`+"\n", i, i, i, i)
	}

	run, err := svc.Prepare("legacy.csv", b.String())
	require.NoError(t, err)

	// cancel after the third row has been written
	svc.Execute(context.Background(), run, func(processed, total int) {
		if processed == 3 {
			require.NoError(t, svc.Cancel(run.BatchID))
		}
	})

	var articles, mappings int64
	db.Model(&models.ArticleModel{}).Where("import_batch_id = ?", run.BatchID).Count(&articles)
	db.Model(&models.URLMappingModel{}).Where("import_batch_id = ?", run.BatchID).Count(&mappings)
	require.EqualValues(t, 0, articles)
	require.EqualValues(t, 0, mappings)

	entry, err := svc.GetBatch(run.BatchID)
	require.NoError(t, err)
	require.Equal(t, models.BatchCancelled, entry.Status)
	require.Equal(t, 0, entry.SuccessCount)

	// auto-created tags survive cancellation
	var tags int64
	db.Model(&models.TagModel{}).Count(&tags)
	require.Greater(t, tags, int64(0))
}

func TestRollbackRemovesBatchData(t *testing.T) {
	svc, db := newTestService(t)

	csv := importHeader +
		`Keep Me,keep-me,old-keep,"<p>text</p>",,,"Legacy",` + "\n"

	run, err := svc.Prepare("legacy.csv", csv)
	require.NoError(t, err)
	svc.Execute(context.Background(), run, nil)
	require.Equal(t, 1, run.Success)

	var article models.ArticleModel
	require.NoError(t, db.First(&article, "slug = ?", "keep-me").Error)
	require.NoError(t, db.Create(&models.CommentModel{
		ArticleID: article.ID, Author: "anon", Text: "hi",
	}).Error)

	require.NoError(t, svc.Rollback(context.Background(), run.BatchID))

	var articles, mappings, comments, links int64
	db.Model(&models.ArticleModel{}).Where("import_batch_id = ?", run.BatchID).Count(&articles)
	db.Model(&models.URLMappingModel{}).Where("import_batch_id = ?", run.BatchID).Count(&mappings)
	db.Model(&models.CommentModel{}).Where("article_id = ?", article.ID).Count(&comments)
	db.Model(&models.ArticleTag{}).Where("article_model_id = ?", article.ID).Count(&links)
	require.EqualValues(t, 0, articles)
	require.EqualValues(t, 0, mappings)
	require.EqualValues(t, 0, comments)
	require.EqualValues(t, 0, links)

	entry, err := svc.GetBatch(run.BatchID)
	require.NoError(t, err)
	require.Equal(t, models.BatchRolledBack, entry.Status)
}

func TestRollbackRejectsRunningBatch(t *testing.T) {
	svc, db := newTestService(t)
	require.NoError(t, db.Create(&models.MigrationLogModel{
		BatchID: "running-batch",
		Status:  models.BatchInProgress,
	}).Error)

	err := svc.Rollback(context.Background(), "running-batch")
	require.Error(t, err)
	require.Contains(t, err.Error(), "still running")
}

func TestDeleteLogGuards(t *testing.T) {
	svc, db := newTestService(t)

	require.Error(t, svc.DeleteLog("no-such-batch"))

	require.NoError(t, db.Create(&models.MigrationLogModel{
		BatchID: "busy", Status: models.BatchInProgress,
	}).Error)
	require.Error(t, svc.DeleteLog("busy"))

	require.NoError(t, db.Create(&models.MigrationLogModel{
		BatchID: "done", Status: models.BatchCompleted,
	}).Error)
	require.NoError(t, svc.DeleteLog("done"))

	entry, err := svc.GetBatch("done")
	require.NoError(t, err)
	require.Nil(t, entry)
}

func TestPrepareRejectsEmptyCSV(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Prepare("empty.csv", "title,slug,content\n")
	require.Error(t, err)
}

func TestPrepareSurfacesDroppedRows(t *testing.T) {
	svc, _ := newTestService(t)

	csv := "title,slug,content\nGood,good,body\nbad-row-only-one-field\n"
	run, err := svc.Prepare("legacy.csv", csv)
	require.NoError(t, err)
	require.Equal(t, 1, run.Total)
	require.Equal(t, 1, run.DroppedRows)

	entry, err := svc.GetBatch(run.BatchID)
	require.NoError(t, err)
	require.Equal(t, 1, entry.DroppedRows)
}
