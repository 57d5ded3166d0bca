package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cybertron10/fuzzwalk/internal/tree"
)

func sampleTree() *tree.Tree {
	t := tree.New()
	root := t.Insert(tree.Data{URL: "http://h", Depth: 0, Path: "", Extra: []tree.Addition{}}, nil)
	t.InsertUnique(tree.Data{URL: "http://h/a", Depth: 1, Path: "a", StatusCode: 200, Extra: []tree.Addition{}}, root)
	t.InsertUnique(tree.Data{URL: "http://h/b", Depth: 1, Path: "b", StatusCode: 404, Extra: []tree.Addition{}}, root)
	return t
}

func TestFormatFromExtension(t *testing.T) {
	f, err := FormatFromExtension(".json")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, f)

	_, err = FormatFromExtension("bogus")
	require.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleTree(), FormatCSV, 2))
	out := buf.String()
	require.Contains(t, out, "url,depth,path,status_code")
	require.Contains(t, out, "http://h/a,1,a,200")
}

func TestWriteTXT(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleTree(), FormatTXT, 2))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
}

func TestWriteMarkdownEmojiCoded(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleTree(), FormatMD, 2))
	out := buf.String()
	require.Contains(t, out, "✅")
	require.Contains(t, out, "⚠️")
}

func TestWriteJSONRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleTree(), FormatJSON, 2))
	require.Contains(t, buf.String(), `"url":"http://h"`)
}

func TestPrintTree(t *testing.T) {
	var buf bytes.Buffer
	PrintTree(&buf, sampleTree().Root())
	out := buf.String()
	require.Contains(t, out, "http://h")
	require.Contains(t, out, "http://h/a")
}
