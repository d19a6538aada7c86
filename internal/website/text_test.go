package website

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText_StripsMarkupAndHidden(t *testing.T) {
	body := `<html><head><title>Liberty GMC</title><style>.x{color:red}</style>
<script>var oem = "Toyota";</script></head>
<body><h1>New <b>GMC</b> Sierra</h1><!-- Honda --><p>Parts &amp; Service</p>
<noscript>Enable JS</noscript><template><p>Kia</p></template></body></html>`

	text, err := ExtractText(strings.NewReader(body), "text/html; charset=utf-8")
	require.NoError(t, err)
	assert.Contains(t, text, "Liberty GMC")
	assert.Contains(t, text, "New GMC Sierra")
	assert.Contains(t, text, "Parts & Service")
	assert.NotContains(t, text, "Toyota")
	assert.NotContains(t, text, "Honda")
	assert.NotContains(t, text, "color:red")
	assert.NotContains(t, text, "Enable JS")
	assert.NotContains(t, text, "Kia")
}

func TestExtractText_Latin1(t *testing.T) {
	text, err := ExtractText(strings.NewReader("<p>Concesionario Pe\xf1a</p>"), "text/html; charset=iso-8859-1")
	require.NoError(t, err)
	assert.Equal(t, "Concesionario Peña", text)
}

func TestExtractText_KeepsLineBreaks(t *testing.T) {
	text, err := ExtractText(strings.NewReader("<footer>Copyright\n<span>2019</span></footer>"), "")
	require.NoError(t, err)
	assert.Equal(t, "Copyright\n2019", text)
}

func TestExtractText_CollapsesSpaces(t *testing.T) {
	text, err := ExtractText(strings.NewReader("<p>Copyright   \t <span>2024</span>   Dealer</p>"), "")
	require.NoError(t, err)
	assert.Equal(t, "Copyright 2024 Dealer", text)
}

func TestExtractText_FooterAfterLargeScript(t *testing.T) {
	body := "<html><body><script>" + strings.Repeat("var x = 1;\n", 500_000) +
		"</script><footer>Honda Copyright 2019</footer></body></html>"
	require.Greater(t, len(body), 5<<20)

	text, err := ExtractText(strings.NewReader(body), "text/html")
	require.NoError(t, err)
	assert.Equal(t, "Honda Copyright 2019", text)
}

func TestExtractText_TooMuchVisibleText(t *testing.T) {
	body := "<p>" + strings.Repeat("a", maxTextBytes+1) + "</p>"
	_, err := ExtractText(strings.NewReader(body), "text/html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "visible text exceeds")
}
