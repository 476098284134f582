package importer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeTextRepairsMojibake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"â€œquotedâ€", `"quoted"`},
		{"donâ€™t", "don't"},
		{"dash â€” here", "dash - here"},
		{"wait â€¦ more", "wait ... more"},
		{"Ã¢â‚¬Å“double decodedÃ¢â‚¬Â", `"double decoded"`},
		{"itÃ¢â‚¬â„¢s", "it's"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, SanitizeText(c.in), "input %q", c.in)
	}
}

func TestSanitizeTextNormalizesPunctuation(t *testing.T) {
	require.Equal(t, `"smart" - it's...`, SanitizeText("“smart” — it’s…"))
}

func TestSanitizeTextIdempotent(t *testing.T) {
	inputs := []string{
		"â€œquotedâ€ and donâ€™t â€” plus â€¦",
		"“curly” — it’s…",
		"plain ascii text, untouched.",
	}
	for _, in := range inputs {
		once := SanitizeText(in)
		require.Equal(t, once, SanitizeText(once), "input %q", in)
	}
}

func TestSanitizeURLPercentEncodesNonASCII(t *testing.T) {
	require.Equal(t, "/caf%C3%A9-guide", SanitizeURL("/café-guide"))
	require.Equal(t, "/plain-path", SanitizeURL("/plain-path"))
}

func TestSanitizeURLIdempotent(t *testing.T) {
	once := SanitizeURL("/café—guide")
	require.Equal(t, once, SanitizeURL(once))
}
