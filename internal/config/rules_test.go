package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleRules = `
filters:
  exclude_status: [404]
  min_size: 10
  per_depth:
    0:
      exclude_status: [404, 500]
word_filters:
  - kind: length
    min: 3
    max: 12
transforms:
  - kind: lower
show:
  - source: length
  - source: header
    key: Content-Type
`

func writeRules(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(p, []byte(sampleRules), 0o644))
	return p
}

func TestLoadRulesAndCompile(t *testing.T) {
	p := writeRules(t)
	rf, err := LoadRules(p)
	require.NoError(t, err)

	filters, err := rf.ToFilters()
	require.NoError(t, err)
	require.Equal(t, []int{404}, filters.ExcludeStatus)
	require.Equal(t, 10, filters.MinSize)
	require.Contains(t, filters.PerDepth, 0)
	require.Equal(t, []int{404, 500}, filters.PerDepth[0].ExcludeStatus)

	wf, err := rf.ToWordFilters()
	require.NoError(t, err)
	require.Len(t, wf, 1)
	require.True(t, wf[0]("abc"))
	require.False(t, wf[0]("ab"))

	tr, err := rf.ToWordTransforms()
	require.NoError(t, err)
	require.Len(t, tr, 1)
	require.Equal(t, "abc", tr[0]("ABC"))

	show, err := rf.ToShowRules()
	require.NoError(t, err)
	require.Len(t, show, 2)
	require.Equal(t, ShowLength, show[0].Source)
	require.Equal(t, ShowHeader, show[1].Source)
	require.Equal(t, "Content-Type", show[1].Key)
}

func TestOptionsApplyDefaults(t *testing.T) {
	o := &Options{}
	o.ApplyDefaults(4)
	require.Equal(t, DefaultFuzzKey, o.FuzzKey)
	require.Equal(t, DefaultDepth, o.Depth)
	require.Equal(t, DefaultSaveFile, o.SaveFile)
	require.Equal(t, 40, o.Threads)
}

func TestOptionsValidate(t *testing.T) {
	o := &Options{}
	require.Error(t, o.Validate())
	o.URL = "http://h"
	require.Error(t, o.Validate())
	o.Wordlists = []string{"w.txt"}
	require.NoError(t, o.Validate())
}
