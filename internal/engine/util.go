package engine

import (
	"net/url"
	"strings"
)

// pathRelativeToRoot derives TreeData.Path for a classic-mode discovery:
// the candidate URL's path with the root URL's path prefix stripped,
// matching the original's path.replace(root_path, "").
func pathRelativeToRoot(rootURL, candidateURL string) string {
	root, err := url.Parse(rootURL)
	if err != nil {
		return candidateURL
	}
	cand, err := url.Parse(candidateURL)
	if err != nil {
		return candidateURL
	}
	return strings.TrimPrefix(cand.Path, root.Path)
}
