package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContentBlockJSONShape(t *testing.T) {
	blocks := Blocks{
		Heading(2, "Title"),
		Paragraph("Body text"),
		List(ListOrdered, []string{"a", "b"}),
		Table([][]string{{"h1", "h2"}, {"x", "y"}}),
		Separator(),
	}

	data, err := json.Marshal(blocks)
	require.NoError(t, err)

	var generic []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &generic))

	require.Equal(t, "heading", generic[0]["type"])
	require.EqualValues(t, 2, generic[0]["level"])
	require.Equal(t, "Title", generic[0]["content"])

	// content stays polymorphic: string, []string, [][]string
	require.IsType(t, "", generic[1]["content"])
	require.IsType(t, []interface{}{}, generic[2]["content"])
	require.Equal(t, "ordered", generic[2]["listType"])
	require.IsType(t, []interface{}{}, generic[3]["content"])

	_, hasContent := generic[4]["content"]
	require.False(t, hasContent)

	var round Blocks
	require.NoError(t, json.Unmarshal(data, &round))
	require.Equal(t, blocks, round)
}

func TestBlocksScanLegacyPlainText(t *testing.T) {
	var bs Blocks
	require.NoError(t, bs.Scan("just some old plain text"))
	require.Len(t, bs, 1)
	require.Equal(t, BlockParagraph, bs[0].Type)
	require.Equal(t, "just some old plain text", bs[0].Content)
}

func TestBlocksScanNullAndEmpty(t *testing.T) {
	var bs Blocks
	require.NoError(t, bs.Scan(nil))
	require.Empty(t, bs)

	require.NoError(t, bs.Scan("null"))
	require.Empty(t, bs)
}
