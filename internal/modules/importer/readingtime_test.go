package importer

import (
	"strings"
	"testing"

	"github.com/aiinasia/core/internal/models"
	"github.com/stretchr/testify/require"
)

func TestCalculateReadingTimeMinimumOneMinute(t *testing.T) {
	require.Equal(t, 1, CalculateReadingTime(nil))
	require.Equal(t, 1, CalculateReadingTime([]models.ContentBlock{
		models.Paragraph("just a few words"),
	}))
}

func TestCalculateReadingTimeRoundsUp(t *testing.T) {
	words := strings.TrimSpace(strings.Repeat("word ", 201))
	blocks := []models.ContentBlock{models.Paragraph(words)}
	require.Equal(t, 2, CalculateReadingTime(blocks))

	exact := strings.TrimSpace(strings.Repeat("word ", 400))
	require.Equal(t, 2, CalculateReadingTime([]models.ContentBlock{models.Paragraph(exact)}))
}

func TestCalculateReadingTimeCountsListsAndTables(t *testing.T) {
	item := strings.TrimSpace(strings.Repeat("w ", 100))
	blocks := []models.ContentBlock{
		models.List(models.ListUnordered, []string{item, item}),
		models.Table([][]string{{item, item}}),
	}
	// 400 words across list items and table cells
	require.Equal(t, 2, CalculateReadingTime(blocks))
}
