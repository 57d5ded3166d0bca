package httpx

import (
	"fmt"
	"net/http"
	"regexp"

	"github.com/cybertron10/fuzzwalk/internal/config"
	"github.com/cybertron10/fuzzwalk/internal/tree"
)

// FilterFunc is the boolean predicate spec.md §4.3 step 4 calls
// "filters.check": it decides whether a drained response is a
// discovery worth recording. depth is nil in classic mode (there is no
// per-depth override concept outside recursion) and set to the current
// BFS depth in recursive mode.
type FilterFunc func(o *config.Options, body string, status int, elapsedMS int64, depth *int) bool

// Check is the default FilterFunc: status-code classes, body-size
// bounds, response-time bounds, and substring/regex body match, with
// per-depth overrides taken from o.Filters.PerDepth.
func Check(o *config.Options, body string, status int, elapsedMS int64, depth *int) bool {
	f := o.Filters
	if depth != nil {
		if override, ok := f.PerDepth[*depth]; ok {
			f = override
		}
	}

	if len(f.IncludeStatus) > 0 && !containsInt(f.IncludeStatus, status) {
		return false
	}
	if len(f.ExcludeStatus) > 0 && containsInt(f.ExcludeStatus, status) {
		return false
	}
	size := len(body)
	if f.MinSize > 0 && size < f.MinSize {
		return false
	}
	if f.MaxSize > 0 && size > f.MaxSize {
		return false
	}
	if f.MinTimeMS > 0 && elapsedMS < f.MinTimeMS {
		return false
	}
	if f.MaxTimeMS > 0 && elapsedMS > f.MaxTimeMS {
		return false
	}
	if f.BodyMatch != nil && !f.BodyMatch.MatchString(body) {
		return false
	}
	if f.BodyExclude != nil && f.BodyExclude.MatchString(body) {
		return false
	}
	return true
}

func containsInt(set []int, v int) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// ParseShow derives {key, value} additions from a response per the
// user's show-rules (spec.md §4.3 step 4). Supported sources are body
// length, a named response header, and the first capture group of a
// regex over the body; no other sources exist.
func ParseShow(o *config.Options, body string, resp *http.Response) []tree.Addition {
	var out []tree.Addition
	for _, rule := range o.ShowRules {
		switch rule.Source {
		case config.ShowLength:
			out = append(out, tree.Addition{Key: "length", Value: fmt.Sprintf("%d", len(body))})
		case config.ShowHeader:
			if v := resp.Header.Get(rule.Key); v != "" {
				out = append(out, tree.Addition{Key: rule.Key, Value: v})
			}
		case config.ShowRegex:
			re, err := regexp.Compile(rule.Pattern)
			if err != nil {
				continue
			}
			if m := re.FindStringSubmatch(body); len(m) > 1 {
				out = append(out, tree.Addition{Key: rule.Key, Value: m[1]})
			}
		}
	}
	return out
}

// PrintError reports a non-connect transport error for a single request.
// Separate from the "connection error" success-path printer used when
// hit_connection_errors records a synthetic discovery (spec.md §4.3
// step 5).
func PrintError(o *config.Options, url string, err error) {
	if o.Quiet {
		return
	}
	fmt.Printf("%s %s %s\n", colorError("[ERR]", o), url, err)
}

func colorError(s string, o *config.Options) string {
	if o.NoColor {
		return s
	}
	return "\x1b[31m" + s + "\x1b[0m"
}
