package importer

import (
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/aiinasia/core/internal/models"
)

// ParseWordPressContent converts one row's raw Gutenberg/HTML content into an
// ordered sequence of typed content blocks. Each block kind is extracted by an
// independent pass over the full text; every match records its source offset
// and the merged collection is stably sorted so the output order matches the
// document's reading order. Malformed or partial markup never errors: whatever
// cannot be matched is simply absent from the output.
func ParseWordPressContent(raw string) []models.ContentBlock {
	if strings.TrimSpace(raw) == "" {
		return []models.ContentBlock{models.Paragraph("No content provided")}
	}

	content := stripBoilerplate(raw)

	var found []positioned
	for _, ex := range blockExtractors {
		found = append(found, ex(content)...)
	}

	if len(found) == 0 {
		found = extractLooseParagraphs(content)
	}
	if len(found) == 0 {
		return []models.ContentBlock{models.Paragraph("Content could not be parsed")}
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].offset < found[j].offset })

	blocks := make([]models.ContentBlock, len(found))
	for i, p := range found {
		blocks[i] = p.block
	}
	return blocks
}

// positioned pairs an extracted block with the offset of its source markup.
type positioned struct {
	offset int
	block  models.ContentBlock
}

type extractor func(content string) []positioned

var blockExtractors = []extractor{
	extractParagraphs,
	extractHeadings,
	extractLists,
	extractQuotes,
	extractPullquotes,
	extractImages,
	extractSeparators,
	extractCodeBlocks,
	extractEmbeds,
	extractTables,
}

// "You may also like" marks the start of legacy boilerplate; everything from
// the marker onward is dropped before extraction. The marker shows up as a
// heading, as bold text or as plain text, with or without surrounding block
// comment markers.
var boilerplateMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<!--\s*wp:heading[^>]*-->\s*<h[1-6][^>]*>\s*(?:<[^>]*>\s*)*you\s+may\s+also\s+like`),
	regexp.MustCompile(`(?is)<h[1-6][^>]*>\s*(?:<[^>]*>\s*)*you\s+may\s+also\s+like`),
	regexp.MustCompile(`(?is)<(?:strong|b)[^>]*>\s*you\s+may\s+also\s+like`),
	regexp.MustCompile(`(?i)you\s+may\s+also\s+like`),
}

func stripBoilerplate(content string) string {
	cut := -1
	for _, re := range boilerplateMarkers {
		if loc := re.FindStringIndex(content); loc != nil {
			if cut == -1 || loc[0] < cut {
				cut = loc[0]
			}
		}
	}
	if cut == -1 {
		return content
	}
	return content[:cut]
}

var (
	reParagraph = regexp.MustCompile(`(?is)<!--\s*wp:paragraph[^>]*?-->\s*<p[^>]*>(.*?)</p>\s*<!--\s*/wp:paragraph\s*-->`)
	reHeading   = regexp.MustCompile(`(?is)(?:<!--\s*wp:heading[^>]*?-->\s*)?<h([1-6])[^>]*>(.*?)</h[1-6]>`)
	reList      = regexp.MustCompile(`(?is)(?:<!--\s*wp:list([^>]*?)-->\s*)?<(ul|ol)[^>]*>(.*?)</(?:ul|ol)>`)
	reListItem  = regexp.MustCompile(`(?is)<li[^>]*>(.*?)</li>`)
	reQuote     = regexp.MustCompile(`(?is)<!--\s*wp:quote[^>]*?-->\s*<blockquote[^>]*>(.*?)</blockquote>\s*<!--\s*/wp:quote\s*-->`)
	rePullquote = regexp.MustCompile(`(?is)<!--\s*wp:pullquote[^>]*?-->(.*?)<!--\s*/wp:pullquote\s*-->`)
	reImage     = regexp.MustCompile(`(?is)(?:<!--\s*wp:image[^>]*?-->\s*)?<figure[^>]*>\s*(<img[^>]*>.*?)</figure>`)
	reImgSrc    = regexp.MustCompile(`(?i)src\s*=\s*"([^"]*)"`)
	reImgAlt    = regexp.MustCompile(`(?i)alt\s*=\s*"([^"]*)"`)
	reCaption   = regexp.MustCompile(`(?is)<figcaption[^>]*>(.*?)</figcaption>`)
	reSeparator = regexp.MustCompile(`(?is)<!--\s*wp:separator[^>]*?-->\s*<hr[^>]*>\s*<!--\s*/wp:separator\s*-->`)
	reCode      = regexp.MustCompile(`(?is)<!--\s*wp:code[^>]*?-->\s*<pre[^>]*>\s*<code[^>]*>(.*?)</code>\s*</pre>\s*<!--\s*/wp:code\s*-->`)
	reEmbed     = regexp.MustCompile(`(?is)<!--\s*wp:(?:core-)?embed(?:/(\w+))?\s*(\{.*?\})?\s*-->(.*?)<!--\s*/wp:(?:core-)?embed(?:/\w+)?\s*-->`)
	reTable     = regexp.MustCompile(`(?is)(?:<!--\s*wp:table[^>]*?-->\s*)?(?:<figure[^>]*>\s*)?<table[^>]*>(.*?)</table>`)
	reTableHead = regexp.MustCompile(`(?is)<thead[^>]*>(.*?)</thead>`)
	reTableRow  = regexp.MustCompile(`(?is)<tr[^>]*>(.*?)</tr>`)
	reTableCell = regexp.MustCompile(`(?is)<t[hd][^>]*>(.*?)</t[hd]>`)
	rePlainPara = regexp.MustCompile(`(?is)<p[^>]*>(.*?)</p>`)
	reInnerPara = regexp.MustCompile(`(?is)<p[^>]*>(.*?)</p>`)
	reBareURL   = regexp.MustCompile(`https?://[^\s<"]+`)
)

func extractParagraphs(content string) []positioned {
	var out []positioned
	for _, m := range reParagraph.FindAllStringSubmatchIndex(content, -1) {
		text := normalizeInline(slice(content, m, 1))
		if text == "" {
			continue
		}
		out = append(out, positioned{m[0], models.Paragraph(text)})
	}
	return out
}

func extractHeadings(content string) []positioned {
	var out []positioned
	for _, m := range reHeading.FindAllStringSubmatchIndex(content, -1) {
		level, _ := strconv.Atoi(slice(content, m, 1))
		text := normalizeInline(slice(content, m, 2))
		if text == "" {
			continue
		}
		out = append(out, positioned{m[0], models.Heading(level, text)})
	}
	return out
}

func extractLists(content string) []positioned {
	var out []positioned
	for _, m := range reList.FindAllStringSubmatchIndex(content, -1) {
		attrs := slice(content, m, 1)
		tag := strings.ToLower(slice(content, m, 2))
		body := slice(content, m, 3)

		var items []string
		for _, im := range reListItem.FindAllStringSubmatch(body, -1) {
			if text := normalizeInline(im[1]); text != "" {
				items = append(items, text)
			}
		}
		if len(items) == 0 {
			continue
		}

		listType := models.ListUnordered
		if tag == "ol" || strings.Contains(attrs, `"ordered":true`) {
			listType = models.ListOrdered
		}
		out = append(out, positioned{m[0], models.List(listType, items)})
	}
	return out
}

func extractQuotes(content string) []positioned {
	var out []positioned
	for _, m := range reQuote.FindAllStringSubmatchIndex(content, -1) {
		text := quoteText(slice(content, m, 1))
		if text == "" {
			continue
		}
		out = append(out, positioned{m[0], models.Quote(text)})
	}
	return out
}

func extractPullquotes(content string) []positioned {
	var out []positioned
	for _, m := range rePullquote.FindAllStringSubmatchIndex(content, -1) {
		text := quoteText(slice(content, m, 1))
		if text == "" {
			continue
		}
		out = append(out, positioned{m[0], models.Quote(text)})
	}
	return out
}

// quoteText joins the inner paragraphs of a blockquote, or falls back to the
// whole fragment when no <p> tags are present.
func quoteText(fragment string) string {
	var parts []string
	for _, pm := range reInnerPara.FindAllStringSubmatch(fragment, -1) {
		if text := normalizeInline(pm[1]); text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, "\n")
	}
	return normalizeInline(fragment)
}

func extractImages(content string) []positioned {
	var out []positioned
	for _, m := range reImage.FindAllStringSubmatchIndex(content, -1) {
		inner := slice(content, m, 1)
		// a figure wrapping a table belongs to the table pass
		if strings.Contains(strings.ToLower(inner), "<table") {
			continue
		}
		src := ""
		if sm := reImgSrc.FindStringSubmatch(inner); sm != nil {
			src = strings.TrimSpace(sm[1])
		}
		if src == "" {
			continue
		}
		alt := ""
		if am := reImgAlt.FindStringSubmatch(inner); am != nil {
			alt = normalizeInline(am[1])
		}
		caption := ""
		if cm := reCaption.FindStringSubmatch(inner); cm != nil {
			caption = normalizeInline(cm[1])
		}
		out = append(out, positioned{m[0], models.Image(SanitizeURL(src), alt, caption)})
	}
	return out
}

func extractSeparators(content string) []positioned {
	var out []positioned
	for _, m := range reSeparator.FindAllStringIndex(content, -1) {
		out = append(out, positioned{m[0], models.Separator()})
	}
	return out
}

func extractCodeBlocks(content string) []positioned {
	var out []positioned
	for _, m := range reCode.FindAllStringSubmatchIndex(content, -1) {
		// code keeps its text verbatim apart from entity decoding
		text := strings.TrimRight(decodeEntities(slice(content, m, 1)), "\n")
		if strings.TrimSpace(text) == "" {
			continue
		}
		out = append(out, positioned{m[0], models.Code(text)})
	}
	return out
}

func extractEmbeds(content string) []positioned {
	var out []positioned
	for _, m := range reEmbed.FindAllStringSubmatchIndex(content, -1) {
		provider := strings.ToLower(slice(content, m, 1))
		attrs := slice(content, m, 2)
		inner := slice(content, m, 3)

		url := jsonStringField(attrs, "url")
		if url == "" {
			if um := reBareURL.FindString(inner); um != "" {
				url = um
			}
		}
		if url == "" {
			continue
		}
		if provider == "" {
			provider = jsonStringField(attrs, "providerNameSlug")
		}
		if provider == "" {
			provider = providerFromURL(url)
		}
		out = append(out, positioned{m[0], models.Embed(SanitizeURL(url), provider)})
	}
	return out
}

// jsonStringField pulls one string field out of a Gutenberg attribute object
// without insisting the whole object parses.
func jsonStringField(attrs, key string) string {
	if strings.TrimSpace(attrs) == "" {
		return ""
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(attrs), &parsed); err == nil {
		if v, ok := parsed[key].(string); ok {
			return strings.TrimSpace(v)
		}
		return ""
	}
	re := regexp.MustCompile(`"` + regexp.QuoteMeta(key) + `"\s*:\s*"([^"]*)"`)
	if m := re.FindStringSubmatch(attrs); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func providerFromURL(url string) string {
	lower := strings.ToLower(url)
	switch {
	case strings.Contains(lower, "youtube.com"), strings.Contains(lower, "youtu.be"):
		return "youtube"
	case strings.Contains(lower, "vimeo.com"):
		return "vimeo"
	case strings.Contains(lower, "twitter.com"), strings.Contains(lower, "x.com"):
		return "twitter"
	default:
		return "unknown"
	}
}

func extractTables(content string) []positioned {
	var out []positioned
	for _, m := range reTable.FindAllStringSubmatchIndex(content, -1) {
		body := slice(content, m, 1)

		var rows [][]string
		head := ""
		if hm := reTableHead.FindStringSubmatch(body); hm != nil {
			head = hm[1]
			body = reTableHead.ReplaceAllString(body, "")
		}
		if head != "" {
			for _, rm := range reTableRow.FindAllStringSubmatch(head, -1) {
				if cells := tableCells(rm[1]); len(cells) > 0 {
					rows = append(rows, cells)
				}
			}
		}
		for _, rm := range reTableRow.FindAllStringSubmatch(body, -1) {
			if cells := tableCells(rm[1]); len(cells) > 0 {
				rows = append(rows, cells)
			}
		}
		// a table that yields no rows is omitted entirely
		if len(rows) == 0 {
			continue
		}
		out = append(out, positioned{m[0], models.Table(rows)})
	}
	return out
}

func tableCells(rowFragment string) []string {
	var cells []string
	for _, cm := range reTableCell.FindAllStringSubmatch(rowFragment, -1) {
		cells = append(cells, normalizeInline(cm[1]))
	}
	return cells
}

// extractLooseParagraphs is the last-resort pass for documents with no
// recognizable block markup: plain <p> tags, skipping fragments that are only
// leaked framework class names.
func extractLooseParagraphs(content string) []positioned {
	var out []positioned
	for _, m := range rePlainPara.FindAllStringSubmatchIndex(content, -1) {
		text := normalizeInline(slice(content, m, 1))
		if text == "" || looksLikeClassArtifact(text) {
			continue
		}
		out = append(out, positioned{m[0], models.Paragraph(text)})
	}
	return out
}

var reClassArtifact = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)+(?:\s+[a-z0-9]+(?:-[a-z0-9]+)+)*$`)

func looksLikeClassArtifact(text string) bool {
	return reClassArtifact.MatchString(text)
}

// slice returns capture group n of a FindAllStringSubmatchIndex match, or ""
// when the group did not participate.
func slice(content string, m []int, n int) string {
	if 2*n+1 >= len(m) || m[2*n] < 0 {
		return ""
	}
	return content[m[2*n]:m[2*n+1]]
}
