package guide

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/aiinasia/core/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
	"gorm.io/gorm"
)

var markdownEngine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Table,
		extension.Strikethrough,
		extension.Linkify,
		extension.Typographer,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
		htmlrenderer.WithXHTML(),
	),
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// RenderedSection is a guide section with its body converted to HTML.
type RenderedSection struct {
	Title string `json:"title"`
	HTML  string `json:"html"`
}

// RenderedGuide is the public read view of a guide.
type RenderedGuide struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Slug     string            `json:"slug"`
	Intro    string            `json:"intro"`
	Sections []RenderedSection `json:"sections"`
}

func (s *Service) List(publishedOnly bool) ([]models.GuideModel, error) {
	tx := s.db.Order("created_at DESC")
	if publishedOnly {
		tx = tx.Where("published = ?", true)
	}
	var guides []models.GuideModel
	err := tx.Find(&guides).Error
	return guides, err
}

func (s *Service) GetBySlug(slug string) (*models.GuideModel, error) {
	var g models.GuideModel
	err := s.db.First(&g, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

// Render converts a guide's markdown sections to HTML for public reading.
func (s *Service) Render(g *models.GuideModel) (*RenderedGuide, error) {
	out := RenderedGuide{
		ID:       g.ID,
		Title:    g.Title,
		Slug:     g.Slug,
		Sections: make([]RenderedSection, 0, len(g.Sections)),
	}

	var intro bytes.Buffer
	if err := markdownEngine.Convert([]byte(g.Intro), &intro); err != nil {
		return nil, fmt.Errorf("render intro: %w", err)
	}
	out.Intro = intro.String()

	for _, sec := range g.Sections {
		var buf bytes.Buffer
		if err := markdownEngine.Convert([]byte(sec.Body), &buf); err != nil {
			return nil, fmt.Errorf("render section %q: %w", sec.Title, err)
		}
		out.Sections = append(out.Sections, RenderedSection{Title: sec.Title, HTML: buf.String()})
	}
	return &out, nil
}

func (s *Service) Create(g *models.GuideModel) (*models.GuideModel, error) {
	var count int64
	s.db.Model(&models.GuideModel{}).Where("slug = ?", g.Slug).Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("guide slug already exists")
	}
	if err := s.db.Create(g).Error; err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Service) Update(id string, updates map[string]interface{}) (*models.GuideModel, error) {
	var g models.GuideModel
	if err := s.db.First(&g, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.db.Model(&g).Updates(updates).Error; err != nil {
			return nil, err
		}
		if err := s.db.First(&g, "id = ?", id).Error; err != nil {
			return nil, err
		}
	}
	return &g, nil
}

func (s *Service) Delete(id string) error {
	return s.db.Delete(&models.GuideModel{}, "id = ?", id).Error
}
