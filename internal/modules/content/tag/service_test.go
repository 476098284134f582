package tag

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

func TestMergeMovesLinksAndRemovesSource(t *testing.T) {
	svc, db := setupService(t)

	from, err := svc.Create("ML", "ml")
	require.NoError(t, err)
	into, err := svc.Create("Machine Learning", "machine-learning")
	require.NoError(t, err)

	art1 := models.ArticleModel{Title: "A", Slug: "a"}
	art2 := models.ArticleModel{Title: "B", Slug: "b"}
	require.NoError(t, db.Create(&art1).Error)
	require.NoError(t, db.Create(&art2).Error)

	// art1 tagged with both, art2 only with the source tag
	require.NoError(t, db.Create(&models.ArticleTag{ArticleModelID: art1.ID, TagModelID: from.ID}).Error)
	require.NoError(t, db.Create(&models.ArticleTag{ArticleModelID: art1.ID, TagModelID: into.ID}).Error)
	require.NoError(t, db.Create(&models.ArticleTag{ArticleModelID: art2.ID, TagModelID: from.ID}).Error)

	merged, err := svc.Merge("ml", "machine-learning")
	require.NoError(t, err)
	require.Equal(t, into.ID, merged.ID)

	gone, err := svc.GetBySlug("ml")
	require.NoError(t, err)
	require.Nil(t, gone)

	var links int64
	db.Model(&models.ArticleTag{}).Where("tag_model_id = ?", into.ID).Count(&links)
	require.EqualValues(t, 2, links)

	db.Model(&models.ArticleTag{}).Where("tag_model_id = ?", from.ID).Count(&links)
	require.EqualValues(t, 0, links)
}

func TestCreateRejectsDuplicates(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Create("AI", "ai")
	require.NoError(t, err)
	_, err = svc.Create("AI", "artificial-intelligence")
	require.Error(t, err)
}
