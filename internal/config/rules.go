package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/cybertron10/fuzzwalk/internal/wordlist"
)

// RulesFile is the on-disk YAML shape for filter/transform/show rules,
// the natural home SPEC_FULL.md gives to the free-text "user predicates"
// and "user --show rules" spec.md leaves unspecified.
type RulesFile struct {
	Filters struct {
		IncludeStatus []int    `yaml:"include_status"`
		ExcludeStatus []int    `yaml:"exclude_status"`
		MinSize       int      `yaml:"min_size"`
		MaxSize       int      `yaml:"max_size"`
		MinTimeMS     int64    `yaml:"min_time_ms"`
		MaxTimeMS     int64    `yaml:"max_time_ms"`
		BodyMatch     string   `yaml:"body_match"`
		BodyExclude   string   `yaml:"body_exclude"`
		PerDepth      map[int] struct {
			IncludeStatus []int  `yaml:"include_status"`
			ExcludeStatus []int  `yaml:"exclude_status"`
			MinSize       int    `yaml:"min_size"`
			MaxSize       int    `yaml:"max_size"`
			BodyMatch     string `yaml:"body_match"`
		} `yaml:"per_depth"`
	} `yaml:"filters"`

	Transforms []struct {
		Kind  string `yaml:"kind"` // lower|upper|prefix|suffix|substitute
		Value string `yaml:"value"`
		Old   string `yaml:"old"`
		New   string `yaml:"new"`
	} `yaml:"transforms"`

	WordFilters []struct {
		Kind  string `yaml:"kind"` // length|regex_match|regex_exclude|contains|excludes
		Min   int    `yaml:"min"`
		Max   int    `yaml:"max"`
		Value string `yaml:"value"`
	} `yaml:"word_filters"`

	Show []struct {
		Source  string `yaml:"source"` // length|header|regex
		Key     string `yaml:"key"`
		Pattern string `yaml:"pattern"`
	} `yaml:"show"`
}

// LoadRules reads and parses a YAML rules file.
func LoadRules(path string) (*RulesFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file %q: %w", path, err)
	}
	var rf RulesFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing rules file %q: %w", path, err)
	}
	return &rf, nil
}

// ToFilters compiles the rules file's filter section into a Filters
// value, compiling any regexes once up front.
func (rf *RulesFile) ToFilters() (Filters, error) {
	f := Filters{
		IncludeStatus: rf.Filters.IncludeStatus,
		ExcludeStatus: rf.Filters.ExcludeStatus,
		MinSize:       rf.Filters.MinSize,
		MaxSize:       rf.Filters.MaxSize,
		MinTimeMS:     rf.Filters.MinTimeMS,
		MaxTimeMS:     rf.Filters.MaxTimeMS,
	}
	var err error
	if rf.Filters.BodyMatch != "" {
		if f.BodyMatch, err = regexp.Compile(rf.Filters.BodyMatch); err != nil {
			return Filters{}, fmt.Errorf("compiling body_match: %w", err)
		}
	}
	if rf.Filters.BodyExclude != "" {
		if f.BodyExclude, err = regexp.Compile(rf.Filters.BodyExclude); err != nil {
			return Filters{}, fmt.Errorf("compiling body_exclude: %w", err)
		}
	}
	if len(rf.Filters.PerDepth) > 0 {
		f.PerDepth = make(map[int]Filters, len(rf.Filters.PerDepth))
		for depth, pd := range rf.Filters.PerDepth {
			override := Filters{
				IncludeStatus: pd.IncludeStatus,
				ExcludeStatus: pd.ExcludeStatus,
				MinSize:       pd.MinSize,
				MaxSize:       pd.MaxSize,
			}
			if pd.BodyMatch != "" {
				if override.BodyMatch, err = regexp.Compile(pd.BodyMatch); err != nil {
					return Filters{}, fmt.Errorf("compiling per_depth[%d].body_match: %w", depth, err)
				}
			}
			f.PerDepth[depth] = override
		}
	}
	return f, nil
}

// ToWordFilters compiles the rules file's word_filters section into
// wordlist.Filter predicates (pipeline step 2, spec.md §4.2).
func (rf *RulesFile) ToWordFilters() ([]wordlist.Filter, error) {
	out := make([]wordlist.Filter, 0, len(rf.WordFilters))
	for _, wf := range rf.WordFilters {
		switch wf.Kind {
		case "length":
			out = append(out, wordlist.LengthFilter(wf.Min, wf.Max))
		case "regex_match":
			re, err := regexp.Compile(wf.Value)
			if err != nil {
				return nil, fmt.Errorf("compiling word_filters regex_match: %w", err)
			}
			out = append(out, wordlist.RegexMatchFilter(re))
		case "regex_exclude":
			re, err := regexp.Compile(wf.Value)
			if err != nil {
				return nil, fmt.Errorf("compiling word_filters regex_exclude: %w", err)
			}
			out = append(out, wordlist.RegexExcludeFilter(re))
		case "contains":
			out = append(out, wordlist.ContainsFilter(wf.Value))
		case "excludes":
			out = append(out, wordlist.ExcludesFilter(wf.Value))
		default:
			return nil, fmt.Errorf("unknown word_filters kind %q", wf.Kind)
		}
	}
	return out, nil
}

// ToWordTransforms compiles the rules file's transforms section into
// wordlist.Transform mappings (pipeline step 3, spec.md §4.2).
func (rf *RulesFile) ToWordTransforms() ([]wordlist.Transform, error) {
	out := make([]wordlist.Transform, 0, len(rf.Transforms))
	for _, tr := range rf.Transforms {
		switch tr.Kind {
		case "lower":
			out = append(out, wordlist.Lower())
		case "upper":
			out = append(out, wordlist.Upper())
		case "prefix":
			out = append(out, wordlist.Prefix(tr.Value))
		case "suffix":
			out = append(out, wordlist.Suffix(tr.Value))
		case "substitute":
			out = append(out, wordlist.Substitute(tr.Old, tr.New))
		default:
			return nil, fmt.Errorf("unknown transforms kind %q", tr.Kind)
		}
	}
	return out, nil
}

// ToShowRules compiles the rules file's show section.
func (rf *RulesFile) ToShowRules() ([]ShowRule, error) {
	out := make([]ShowRule, 0, len(rf.Show))
	for _, s := range rf.Show {
		var src ShowSource
		switch s.Source {
		case "length":
			src = ShowLength
		case "header":
			src = ShowHeader
		case "regex":
			src = ShowRegex
		default:
			return nil, fmt.Errorf("unknown show source %q", s.Source)
		}
		out = append(out, ShowRule{Source: src, Key: s.Key, Pattern: s.Pattern})
	}
	return out, nil
}
