package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// BlockType discriminates the kinds of structured content blocks.
type BlockType string

const (
	BlockParagraph BlockType = "paragraph"
	BlockHeading   BlockType = "heading"
	BlockList      BlockType = "list"
	BlockQuote     BlockType = "quote"
	BlockImage     BlockType = "image"
	BlockSeparator BlockType = "separator"
	BlockCode      BlockType = "code"
	BlockEmbed     BlockType = "embed"
	BlockTable     BlockType = "table"
)

// List type values for list blocks.
const (
	ListOrdered   = "ordered"
	ListUnordered = "unordered"
)

// ContentBlock is one structural unit of an article body. The Type field
// selects which of the remaining fields are meaningful; the JSON shape on the
// wire keeps the legacy polymorphic "content" key (string for text blocks,
// []string for lists, [][]string for tables).
type ContentBlock struct {
	Type     BlockType
	Content  string     // paragraph, heading, quote, code
	Level    int        // heading, 1..6
	ListType string     // list
	Items    []string   // list
	Src      string     // image
	Alt      string     // image
	Caption  string     // image
	URL      string     // embed
	Provider string     // embed
	Rows     [][]string // table, first row is the header when present
}

func Paragraph(content string) ContentBlock {
	return ContentBlock{Type: BlockParagraph, Content: content}
}

func Heading(level int, content string) ContentBlock {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return ContentBlock{Type: BlockHeading, Level: level, Content: content}
}

func List(listType string, items []string) ContentBlock {
	if listType != ListOrdered {
		listType = ListUnordered
	}
	return ContentBlock{Type: BlockList, ListType: listType, Items: items}
}

func Quote(content string) ContentBlock {
	return ContentBlock{Type: BlockQuote, Content: content}
}

func Image(src, alt, caption string) ContentBlock {
	return ContentBlock{Type: BlockImage, Src: src, Alt: alt, Caption: caption}
}

func Separator() ContentBlock { return ContentBlock{Type: BlockSeparator} }

func Code(content string) ContentBlock {
	return ContentBlock{Type: BlockCode, Content: content}
}

func Embed(url, provider string) ContentBlock {
	return ContentBlock{Type: BlockEmbed, URL: url, Provider: provider}
}

func Table(rows [][]string) ContentBlock {
	return ContentBlock{Type: BlockTable, Rows: rows}
}

func (b ContentBlock) MarshalJSON() ([]byte, error) {
	m := map[string]interface{}{"type": b.Type}
	switch b.Type {
	case BlockHeading:
		m["level"] = b.Level
		m["content"] = b.Content
	case BlockList:
		m["listType"] = b.ListType
		m["content"] = b.Items
	case BlockImage:
		m["src"] = b.Src
		m["alt"] = b.Alt
		m["caption"] = b.Caption
	case BlockEmbed:
		m["url"] = b.URL
		m["provider"] = b.Provider
	case BlockTable:
		m["content"] = b.Rows
	case BlockSeparator:
		// type only
	default:
		m["content"] = b.Content
	}
	return json.Marshal(m)
}

func (b *ContentBlock) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type     BlockType       `json:"type"`
		Content  json.RawMessage `json:"content"`
		Level    int             `json:"level"`
		ListType string          `json:"listType"`
		Src      string          `json:"src"`
		Alt      string          `json:"alt"`
		Caption  string          `json:"caption"`
		URL      string          `json:"url"`
		Provider string          `json:"provider"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*b = ContentBlock{
		Type:     raw.Type,
		Level:    raw.Level,
		ListType: raw.ListType,
		Src:      raw.Src,
		Alt:      raw.Alt,
		Caption:  raw.Caption,
		URL:      raw.URL,
		Provider: raw.Provider,
	}

	if len(raw.Content) == 0 {
		return nil
	}
	switch raw.Type {
	case BlockList:
		return json.Unmarshal(raw.Content, &b.Items)
	case BlockTable:
		return json.Unmarshal(raw.Content, &b.Rows)
	default:
		return json.Unmarshal(raw.Content, &b.Content)
	}
}

// Blocks stores an ordered []ContentBlock column as JSON.
type Blocks []ContentBlock

func (bs Blocks) Value() (driver.Value, error) {
	if bs == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]ContentBlock(bs))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (bs *Blocks) Scan(value interface{}) error {
	if bs == nil {
		return fmt.Errorf("models.Blocks: Scan on nil pointer")
	}
	if value == nil {
		*bs = Blocks{}
		return nil
	}

	var raw string
	switch v := value.(type) {
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("models.Blocks: unsupported Scan type %T", value)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		*bs = Blocks{}
		return nil
	}

	var arr []ContentBlock
	if err := json.Unmarshal([]byte(raw), &arr); err == nil {
		*bs = arr
		return nil
	}

	// Legacy rows stored plain text before the structured migration.
	*bs = Blocks{Paragraph(raw)}
	return nil
}
