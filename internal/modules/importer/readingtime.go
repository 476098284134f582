package importer

import (
	"strings"

	"github.com/aiinasia/core/internal/models"
)

const wordsPerMinute = 200

// CalculateReadingTime estimates whole minutes of reading for structured
// content at 200 words per minute, never less than 1.
func CalculateReadingTime(blocks []models.ContentBlock) int {
	words := 0
	for _, b := range blocks {
		switch b.Type {
		case models.BlockList:
			for _, item := range b.Items {
				words += len(strings.Fields(item))
			}
		case models.BlockTable:
			for _, row := range b.Rows {
				for _, cell := range row {
					words += len(strings.Fields(cell))
				}
			}
		default:
			words += len(strings.Fields(b.Content))
		}
	}

	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
