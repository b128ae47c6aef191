package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stepwise/catalog"
	"github.com/katalvlaran/stepwise/frame"
	"github.com/katalvlaran/stepwise/gitscenario"
	"github.com/katalvlaran/stepwise/gridlabel"
	"github.com/katalvlaran/stepwise/replay"
)

func TestDefault_BuildsEveryScenario(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)
	require.Equal(t, 19, c.Len())

	kinds := map[string]bool{}
	for _, s := range c.List() {
		inst, err := c.Build(s.Name)
		require.NoError(t, err, s.Name)
		assert.Equal(t, s.Kind, inst.Kind(), s.Name)
		kinds[s.Kind] = true

		f, err := inst.Next()
		require.NoError(t, err, s.Name)
		assert.Equal(t, 0, f.Index, s.Name)
	}
	for _, k := range catalog.Kinds() {
		assert.True(t, kinds[k], "default catalog has no %s scenario", k)
	}
}

func TestDefault_ReferenceOutcomes(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	last := func(name string) frame.Frame {
		inst, err := c.Build(name)
		require.NoError(t, err)
		var f frame.Frame
		for {
			next, err := inst.Next()
			if errors.Is(err, frame.ErrExhausted) {
				return f
			}
			require.NoError(t, err)
			f = next
		}
	}

	f := last("two-pointer")
	found, _ := f.Var("found")
	left, _ := f.Var("left")
	right, _ := f.Var("right")
	assert.Equal(t, true, found)
	assert.Equal(t, 0, left)
	assert.Equal(t, 8, right)

	f = last("graph-islands")
	count, _ := f.Var("count")
	assert.Equal(t, 4, count)

	f = last("frequency-counting")
	most, _ := f.Var("mostFrequent")
	assert.Equal(t, "2", most)

	f = last("tree-dfs")
	visited, _ := f.Container("visited")
	assert.Equal(t, []string{"1", "2", "4", "5", "3", "6", "7"}, visited.Items)

	f = last("git-commit")
	head, _ := f.Var("head")
	assert.Equal(t, "e4f5g6h", head)
}

func TestDefault_GitCommands(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	ids := []string{"init", "add", "commit", "push", "pull", "checkout", "merge", "rebase", "squash", "force-push"}
	for _, id := range ids {
		s, ok := c.Lookup(catalog.GitPrefix + id)
		require.True(t, ok, id)
		assert.Equal(t, gitscenario.Kind, s.Kind, id)
		require.NotNil(t, s.Git, id)
		assert.Equal(t, s.Git.Name, s.Title, id)
	}

	rebase, _ := c.Lookup("git-rebase")
	assert.True(t, rebase.Git.Dangerous)
	assert.NotEmpty(t, rebase.Git.Warnings)

	merge, _ := c.Lookup("git-merge")
	last := merge.Git.After.Local.Commits[len(merge.Git.After.Local.Commits)-1]
	assert.Equal(t, []string{"e4f5g6h", "x9y8z7w"}, last.Parents)

	inst, err := c.Build("git-force-push")
	require.NoError(t, err)
	f, err := inst.Next()
	require.NoError(t, err)
	warnings, ok := f.Container("warnings")
	require.True(t, ok)
	assert.Len(t, warnings.Items, 4)
}

func TestWithCommands(t *testing.T) {
	base, err := catalog.Parse([]byte("scenarios:\n  - {name: git-tag, kind: frequency-count, array: [1]}\n"))
	require.NoError(t, err)

	cmd := gitscenario.Command{ID: "stash", Name: "git stash"}
	c, err := base.WithCommands([]gitscenario.Command{cmd})
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 1, base.Len())
	_, err = c.Build("git-stash")
	assert.NoError(t, err)

	_, err = base.WithCommands([]gitscenario.Command{{ID: "tag", Name: "git tag"}})
	assert.ErrorIs(t, err, catalog.ErrDuplicateName)

	_, err = base.WithCommands([]gitscenario.Command{{ID: " "}})
	assert.ErrorIs(t, err, frame.ErrConfiguration)
}

func TestLoadCommands(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "git.yaml")
	require.NoError(t, os.WriteFile(good, []byte("commands:\n  - {id: stash, name: git stash}\n"), 0o600))
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("commands:\n  - {id: stash, colour: red}\n"), 0o600))

	base, err := catalog.Parse(nil)
	require.NoError(t, err)
	c, err := base.LoadCommands(good)
	require.NoError(t, err)
	s, ok := c.Lookup("git-stash")
	require.True(t, ok)
	assert.Equal(t, "git stash", s.Title)

	_, err = base.LoadCommands(bad)
	assert.ErrorIs(t, err, catalog.ErrDecode)
	assert.ErrorIs(t, err, gitscenario.ErrDecode)

	_, err = base.LoadCommands(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestBuild_FreshInstances(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)
	a, err := c.Build("frequency-counting")
	require.NoError(t, err)
	b, err := c.Build("frequency-counting")
	require.NoError(t, err)
	assert.NotSame(t, a, b)

	_, _ = a.Next()
	_, _ = a.Next()
	f, _ := b.Next()
	assert.Equal(t, 0, f.Index)
}

func TestBuild_Errors(t *testing.T) {
	cases := []struct {
		name string
		s    catalog.Scenario
		want error
	}{
		{"UnknownKind", catalog.Scenario{Name: "x", Kind: "bubble-sort"}, catalog.ErrUnknownKind},
		{"MissingTree", catalog.Scenario{Name: "x", Kind: "bfs"}, catalog.ErrMissingField},
		{"MissingGit", catalog.Scenario{Name: "x", Kind: "git-scenario"}, catalog.ErrMissingField},
		{"BadConnectivity", catalog.Scenario{Name: "x", Kind: gridlabel.Kind, Grid: [][]int{{1}}, Connectivity: 6}, frame.ErrConfiguration},
		{"JaggedGrid", catalog.Scenario{Name: "x", Kind: gridlabel.Kind, Grid: [][]int{{1, 0}, {1}}}, gridlabel.ErrNonRectangular},
		{"WindowTooLarge", catalog.Scenario{Name: "x", Kind: "fixed-window", Array: []int{1, 2}, Window: 3}, frame.ErrConfiguration},
		{"EmptyFrequency", catalog.Scenario{Name: "x", Kind: "frequency-count"}, frame.ErrConfiguration},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inst, err := catalog.Build(tc.s)
			assert.Nil(t, inst)
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, frame.ErrConfiguration)
		})
	}
}

func TestBuild_Options(t *testing.T) {
	inst, err := catalog.Build(catalog.Scenario{
		Name: "diag", Kind: gridlabel.Kind, Connectivity: 8,
		Grid: [][]int{{1, 0}, {0, 1}},
	})
	require.NoError(t, err)
	var f frame.Frame
	for {
		next, err := inst.Next()
		if err != nil {
			break
		}
		f = next
	}
	count, _ := f.Var("count")
	assert.Equal(t, 1, count)

	inst, err = catalog.Build(catalog.Scenario{Name: "clamped", Kind: "fixed-window", Array: []int{1, 2}, Window: 5, ClampOversize: true})
	require.NoError(t, err)
	assert.True(t, replay.Seekable(inst))
	assert.Equal(t, 1, inst.(replay.Seeker).Len())
}

func TestParse_Errors(t *testing.T) {
	_, err := catalog.Parse([]byte("scenarios:\n  - name: a\n    kind: two-pointer\n    colour: red\n"))
	assert.ErrorIs(t, err, catalog.ErrDecode)

	_, err = catalog.Parse([]byte("scenarios:\n  - {name: a, kind: frequency-count, array: [1]}\n  - {name: a, kind: frequency-count, array: [2]}\n"))
	assert.ErrorIs(t, err, catalog.ErrDuplicateName)

	_, err = catalog.Parse([]byte("scenarios:\n  - {kind: frequency-count, array: [1]}\n"))
	assert.ErrorIs(t, err, catalog.ErrMissingField)

	_, err = catalog.Parse([]byte("scenarios:\n  - {name: a, kind: two-pointer, array: [3, 1]}\n"))
	assert.ErrorIs(t, err, frame.ErrConfiguration)

	c, err := catalog.Parse(nil)
	require.NoError(t, err)
	assert.Zero(t, c.Len())
	_, err = c.Build("anything")
	assert.ErrorIs(t, err, catalog.ErrUnknownScenario)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
scenarios:
  - name: custom-tree
    kind: bfs
    coalesce: true
    tree:
      root: r
      children:
        r: [a, b]
        a: [c]
`), 0o600))

	c, err := catalog.Load(path)
	require.NoError(t, err)
	s, ok := c.Lookup("custom-tree")
	require.True(t, ok)
	assert.True(t, s.Coalesce)

	_, err = catalog.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
