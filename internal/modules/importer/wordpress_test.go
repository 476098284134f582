package importer

import (
	"strings"
	"testing"

	"github.com/aiinasia/core/internal/models"
	"github.com/stretchr/testify/require"
)

const mixedGutenbergDoc = `
<!-- wp:heading --><h2>Intro</h2><!-- /wp:heading -->
<!-- wp:paragraph --><p>First <strong>para</strong> with <a href="https://example.com/a">link</a> &amp; more</p><!-- /wp:paragraph -->
<!-- wp:list --><ul><li>one</li><li>two</li></ul><!-- /wp:list -->
<!-- wp:quote --><blockquote><p>Wise words</p><p>More words</p></blockquote><!-- /wp:quote -->
<!-- wp:image --><figure class="wp-block-image"><img src="https://cdn.example.com/a.jpg" alt="A photo"/><figcaption>The caption</figcaption></figure><!-- /wp:image -->
<!-- wp:separator --><hr class="wp-block-separator"><!-- /wp:separator -->
<!-- wp:code --><pre class="wp-block-code"><code>fmt.Println(&quot;hi&quot;)</code></pre><!-- /wp:code -->
<!-- wp:embed/youtube {"url":"https://youtube.com/watch?v=abc"} -->
<figure class="wp-block-embed">https://youtube.com/watch?v=abc</figure>
<!-- /wp:embed/youtube -->
<!-- wp:table --><figure class="wp-block-table"><table><thead><tr><th>H1</th><th>H2</th></tr></thead><tbody><tr><td>a</td><td>b</td></tr></tbody></table></figure><!-- /wp:table -->
`

func TestParseWordPressContentPreservesDocumentOrder(t *testing.T) {
	blocks := ParseWordPressContent(mixedGutenbergDoc)
	require.Len(t, blocks, 9)

	require.Equal(t, models.BlockHeading, blocks[0].Type)
	require.Equal(t, 2, blocks[0].Level)
	require.Equal(t, "Intro", blocks[0].Content)

	require.Equal(t, models.BlockParagraph, blocks[1].Type)
	require.Equal(t, "First para with [link](https://example.com/a) & more", blocks[1].Content)

	require.Equal(t, models.BlockList, blocks[2].Type)
	require.Equal(t, models.ListUnordered, blocks[2].ListType)
	require.Equal(t, []string{"one", "two"}, blocks[2].Items)

	require.Equal(t, models.BlockQuote, blocks[3].Type)
	require.Equal(t, "Wise words\nMore words", blocks[3].Content)

	require.Equal(t, models.BlockImage, blocks[4].Type)
	require.Equal(t, "https://cdn.example.com/a.jpg", blocks[4].Src)
	require.Equal(t, "A photo", blocks[4].Alt)
	require.Equal(t, "The caption", blocks[4].Caption)

	require.Equal(t, models.BlockSeparator, blocks[5].Type)

	require.Equal(t, models.BlockCode, blocks[6].Type)
	require.Equal(t, `fmt.Println("hi")`, blocks[6].Content)

	require.Equal(t, models.BlockEmbed, blocks[7].Type)
	require.Equal(t, "https://youtube.com/watch?v=abc", blocks[7].URL)
	require.Equal(t, "youtube", blocks[7].Provider)

	require.Equal(t, models.BlockTable, blocks[8].Type)
	require.Equal(t, [][]string{{"H1", "H2"}, {"a", "b"}}, blocks[8].Rows)
}

func TestParseWordPressContentEmptyInput(t *testing.T) {
	blocks := ParseWordPressContent("   ")
	require.Len(t, blocks, 1)
	require.Equal(t, models.BlockParagraph, blocks[0].Type)
	require.Equal(t, "No content provided", blocks[0].Content)
}

func TestParseWordPressContentUnparseable(t *testing.T) {
	blocks := ParseWordPressContent("just plain text without any markup")
	require.Len(t, blocks, 1)
	require.Equal(t, "Content could not be parsed", blocks[0].Content)
}

func TestParseWordPressContentOrderedList(t *testing.T) {
	byTag := ParseWordPressContent(`<!-- wp:list --><ol><li>a</li><li>b</li></ol><!-- /wp:list -->`)
	require.Len(t, byTag, 1)
	require.Equal(t, models.ListOrdered, byTag[0].ListType)

	byAttr := ParseWordPressContent(`<!-- wp:list {"ordered":true} --><ul><li>a</li></ul><!-- /wp:list -->`)
	require.Len(t, byAttr, 1)
	require.Equal(t, models.ListOrdered, byAttr[0].ListType)
}

func TestParseWordPressContentBoilerplateCut(t *testing.T) {
	variants := []string{
		`<!-- wp:heading --><h2>You May Also Like</h2><!-- /wp:heading -->`,
		`<h3>you may also like</h3>`,
		`<strong>You may also like</strong>`,
		`You may also like:`,
	}
	for _, marker := range variants {
		content := `<!-- wp:paragraph --><p>Keep this.</p><!-- /wp:paragraph -->` +
			marker +
			`<!-- wp:paragraph --><p>Drop this.</p><!-- /wp:paragraph -->`

		blocks := ParseWordPressContent(content)
		require.Len(t, blocks, 1, "marker %q", marker)
		require.Equal(t, "Keep this.", blocks[0].Content, "marker %q", marker)
	}
}

func TestParseWordPressContentLooseParagraphFallback(t *testing.T) {
	content := `<p>Real text here.</p><p>wp-block-group is-layout-flow</p><p>Second real paragraph.</p>`

	blocks := ParseWordPressContent(content)
	require.Len(t, blocks, 2)
	require.Equal(t, "Real text here.", blocks[0].Content)
	require.Equal(t, "Second real paragraph.", blocks[1].Content)
}

func TestParseWordPressContentEmptyTableOmitted(t *testing.T) {
	content := `<!-- wp:table --><table></table><!-- /wp:table -->` +
		`<!-- wp:paragraph --><p>after</p><!-- /wp:paragraph -->`

	blocks := ParseWordPressContent(content)
	require.Len(t, blocks, 1)
	require.Equal(t, "after", blocks[0].Content)
}

func TestParseWordPressContentImageSrcSanitized(t *testing.T) {
	content := `<!-- wp:image --><figure><img src="https://cdn.example.com/café.jpg" alt=""/></figure><!-- /wp:image -->`

	blocks := ParseWordPressContent(content)
	require.Len(t, blocks, 1)
	require.Equal(t, "https://cdn.example.com/caf%C3%A9.jpg", blocks[0].Src)
}

func TestParseWordPressContentEmbedProviderFromURL(t *testing.T) {
	content := `<!-- wp:embed -->
<figure>https://vimeo.com/12345</figure>
<!-- /wp:embed -->`

	blocks := ParseWordPressContent(content)
	require.Len(t, blocks, 1)
	require.Equal(t, "vimeo", blocks[0].Provider)
	require.Equal(t, "https://vimeo.com/12345", blocks[0].URL)
}

func TestNormalizeInline(t *testing.T) {
	in := `Line one<br/>with <em>emphasis</em> and <a href="https://x.io">a link</a> &mdash; done`
	want := "Line one\nwith emphasis and [a link](https://x.io) - done"
	require.Equal(t, want, normalizeInline(in))
}

func TestNormalizeInlineStripsStrayMarkers(t *testing.T) {
	require.Equal(t, "bold and under", normalizeInline("**bold** and __under__"))
	require.False(t, strings.Contains(normalizeInline("a  b   c"), "  "))
}
