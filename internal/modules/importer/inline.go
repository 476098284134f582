package importer

import (
	"regexp"
	"strings"
)

var (
	reEmphasisTag = regexp.MustCompile(`(?i)</?(?:strong|b|em|i)(?:\s[^>]*)?>`)
	reLineBreak   = regexp.MustCompile(`(?i)<br\s*/?\s*>`)
	reAnchor      = regexp.MustCompile(`(?is)<a\s[^>]*?href\s*=\s*"([^"]*)"[^>]*>(.*?)</a>`)
	reAnyTag      = regexp.MustCompile(`(?s)</?[a-zA-Z][^>]*>`)
	reManySpaces  = regexp.MustCompile(`[ \t]{2,}`)
)

// entityTable is the fixed set of HTML entities the importer understands.
// &amp; is decoded last so it cannot form new entities.
var entityTable = []replacement{
	{"&nbsp;", " "},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", `"`},
	{"&apos;", "'"},
	{"&#39;", "'"},
	{"&#039;", "'"},
	{"&lsquo;", "'"},
	{"&rsquo;", "'"},
	{"&#8216;", "'"},
	{"&#8217;", "'"},
	{"&ldquo;", `"`},
	{"&rdquo;", `"`},
	{"&#8220;", `"`},
	{"&#8221;", `"`},
	{"&ndash;", "-"},
	{"&mdash;", "-"},
	{"&#8211;", "-"},
	{"&#8212;", "-"},
	{"&hellip;", "..."},
	{"&#8230;", "..."},
	{"&amp;", "&"},
}

func decodeEntities(s string) string {
	return applyTable(s, entityTable)
}

// normalizeInline reduces inline HTML to plain text: emphasis markup is
// stripped outright (not converted to markdown), line breaks become literal
// newlines, anchors become [text](url), entities are decoded from the fixed
// table, and stray emphasis markers left by upstream tools are removed.
func normalizeInline(s string) string {
	s = reEmphasisTag.ReplaceAllString(s, "")
	s = reLineBreak.ReplaceAllString(s, "\n")
	s = reAnchor.ReplaceAllString(s, "[$2]($1)")
	s = reAnyTag.ReplaceAllString(s, "")
	s = decodeEntities(s)
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = reManySpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
