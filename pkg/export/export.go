// Package export writes the discovered Tree out in the formats spec.md
// §6 names: JSON (full tree), CSV (flat rows of TreeData), Markdown
// (indented list with status-coded emoji), and plain text (URL per
// line). None of this lives in the core crawl engine — spec.md §6
// requires only that the core expose NodesAtDepth and serializable
// TreeData, which internal/tree already does.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cybertron10/fuzzwalk/internal/tree"
)

// Format is one of the four supported output kinds.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatMD   Format = "md"
	FormatTXT  Format = "txt"
)

// FormatFromExtension maps a file extension (as in spec.md §6's
// "invalid output extension" fatal error) to a Format.
func FormatFromExtension(ext string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "md":
		return FormatMD, nil
	case "txt":
		return FormatTXT, nil
	default:
		return "", fmt.Errorf("invalid output file type %q", ext)
	}
}

// Write renders t in the given format to w. maxDepth bounds the flat
// exporters (CSV/Markdown/txt) to nodes at depth < maxDepth, matching
// the original's "for depth in 0..*depth.lock()" loop.
func Write(w io.Writer, t *tree.Tree, format Format, maxDepth int) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, t)
	case FormatCSV:
		return writeCSV(w, t, maxDepth)
	case FormatMD:
		return writeMarkdown(w, t, maxDepth)
	case FormatTXT:
		return writeTXT(w, t, maxDepth)
	default:
		return fmt.Errorf("invalid output file type %q", format)
	}
}

func writeJSON(w io.Writer, t *tree.Tree) error {
	enc := json.NewEncoder(w)
	return enc.Encode(t.Root())
}

func flatNodes(t *tree.Tree, maxDepth int) []*tree.Node {
	var out []*tree.Node
	for d := 0; d < maxDepth; d++ {
		out = append(out, t.NodesAtDepth(d)...)
	}
	return out
}

func writeCSV(w io.Writer, t *tree.Tree, maxDepth int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"url", "depth", "path", "status_code"}); err != nil {
		return err
	}
	for _, n := range flatNodes(t, maxDepth) {
		row := []string{
			n.Data.URL,
			strconv.Itoa(n.Data.Depth),
			n.Data.Path,
			strconv.Itoa(int(n.Data.StatusCode)),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeMarkdown(w io.Writer, t *tree.Tree, maxDepth int) error {
	for _, n := range flatNodes(t, maxDepth) {
		emoji := EmojiForStatus(n.Data.StatusCode)
		status := ""
		if n.Data.StatusCode != 0 {
			status = fmt.Sprintf("(%d)", n.Data.StatusCode)
		}
		line := fmt.Sprintf("%s- [%s /%s %s](%s)\n",
			strings.Repeat("  ", n.Data.Depth),
			emoji,
			strings.TrimPrefix(n.Data.Path, "/"),
			status,
			n.Data.URL,
		)
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeTXT(w io.Writer, t *tree.Tree, maxDepth int) error {
	for _, n := range flatNodes(t, maxDepth) {
		if _, err := io.WriteString(w, n.Data.URL+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// EmojiForStatus mirrors the original's get_emoji_for_status_code.
func EmojiForStatus(code uint16) string {
	switch {
	case code == 0:
		return "🔌"
	case code >= 200 && code < 300:
		return "✅"
	case code >= 300 && code < 400:
		return "↪️"
	case code >= 400 && code < 500:
		return "⚠️"
	case code >= 500:
		return "❌"
	default:
		return "❔"
	}
}

// PrintTree renders an indented text tree to w, the completion-summary
// rendering SPEC_FULL.md grounds on the original's ptree::print_tree
// call (§ "Tree pretty-print on completion").
func PrintTree(w io.Writer, root *tree.Node) {
	if root == nil {
		return
	}
	fmt.Fprintln(w, root.Data.URL)
	for i, c := range root.Children {
		printNode(w, c, "", i == len(root.Children)-1)
	}
}

func printNode(w io.Writer, n *tree.Node, prefix string, last bool) {
	connector := "├── "
	if last {
		connector = "└── "
	}
	label := n.Data.URL
	if n.Data.StatusCode != 0 {
		label = fmt.Sprintf("%s [%d]", label, n.Data.StatusCode)
	}
	fmt.Fprintf(w, "%s%s%s\n", prefix, connector, label)

	childPrefix := prefix + "│   "
	if last {
		childPrefix = prefix + "    "
	}
	for i, c := range n.Children {
		printNode(w, c, childPrefix, i == len(n.Children)-1)
	}
}
