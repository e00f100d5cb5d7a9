// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/rug/pkg/types"
)

func sourceTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, name := range []string{
		"index.rug",
		"notes.txt",
		"pages/about.rug",
		"pages/.draft.rug",
		".cache/stale.rug",
		"pages/team/people.rug",
	} {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(".x"), 0o644))
	}
	return root
}

func ids(sources []types.SourceFile) []string {
	out := make([]string, len(sources))
	for i, s := range sources {
		out[i] = s.ID
	}
	return out
}

func TestFindSources(t *testing.T) {
	root := sourceTree(t)

	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{"default pattern", "", []string{"index", "pages/about", "pages/team/people"}},
		{"single directory", "pages/*.rug", []string{"pages/about"}},
		{"nested only", "pages/**/*.rug", []string{"pages/about", "pages/team/people"}},
		{"text files", "*.txt", []string{"notes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sources, err := FindSources(root, tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(sources))
		})
	}
}

func TestFindSources_Errors(t *testing.T) {
	_, err := FindSources(t.TempDir(), "[")
	assert.ErrorContains(t, err, "invalid source pattern")

	_, err = FindSources(filepath.Join(t.TempDir(), "missing"), DefaultPattern)
	assert.Error(t, err)
}

func TestSourcesFromPaths(t *testing.T) {
	root := filepath.Join("site", "src")
	got := SourcesFromPaths(root, []string{
		filepath.Join(root, "blog", "post.rug"),
		filepath.Join("elsewhere", "loose.rug"),
	})
	assert.Equal(t, []string{"blog/post", "loose"}, ids(got))
	assert.Equal(t, filepath.Join(root, "blog", "post.rug"), got[0].Path)
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches(DefaultPattern, filepath.Join("a", "b", "c.rug")))
	assert.True(t, Matches(DefaultPattern, "top.rug"))
	assert.False(t, Matches(DefaultPattern, "top.rug.bak"))
}
