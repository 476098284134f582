package guide

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

func TestGuideSectionsRoundTrip(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Create(&models.GuideModel{
		Title: "Getting Started",
		Slug:  "getting-started",
		Intro: "Welcome to **AI in ASIA**.",
		Sections: []models.GuideSection{
			{Title: "Step one", Body: "Do the *first* thing."},
			{Title: "Step two", Body: "| a | b |\n|---|---|\n| 1 | 2 |"},
		},
	})
	require.NoError(t, err)

	got, err := svc.GetBySlug("getting-started")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Sections, 2)
	require.Equal(t, "Step two", got.Sections[1].Title)

	_, err = svc.Create(&models.GuideModel{Title: "Dup", Slug: "getting-started"})
	require.Error(t, err)
}

func TestRenderConvertsMarkdown(t *testing.T) {
	svc, _ := setupService(t)

	g := &models.GuideModel{
		Title: "G",
		Slug:  "g",
		Intro: "Some **bold** text.",
		Sections: []models.GuideSection{
			{Title: "S", Body: "A [link](https://example.com) here."},
		},
	}

	rendered, err := svc.Render(g)
	require.NoError(t, err)
	require.Contains(t, rendered.Intro, "<strong>bold</strong>")
	require.Len(t, rendered.Sections, 1)
	require.Contains(t, rendered.Sections[0].HTML, `<a href="https://example.com">link</a>`)
}

func TestListPublishedOnly(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Create(&models.GuideModel{Title: "Pub", Slug: "pub", Published: true})
	require.NoError(t, err)
	_, err = svc.Create(&models.GuideModel{Title: "Draft", Slug: "draft"})
	require.NoError(t, err)

	public, err := svc.List(true)
	require.NoError(t, err)
	require.Len(t, public, 1)
	require.Equal(t, "pub", public[0].Slug)

	all, err := svc.List(false)
	require.NoError(t, err)
	require.Len(t, all, 2)
}
