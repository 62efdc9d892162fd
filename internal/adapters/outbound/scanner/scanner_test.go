package scanner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locaudit/locaudit/internal/adapters/outbound/scanner"
	"github.com/locaudit/locaudit/internal/domain"
)

const fixtureDir = "../../../../testdata/webapp"

func relPaths(r *domain.ScanResult) []string {
	out := make([]string, 0, len(r.Files))
	for _, f := range r.Files {
		out = append(out, f.RelPath)
	}
	return out
}

func TestFileScanner_Scan(t *testing.T) {
	s := scanner.New()
	result, err := s.Scan(fixtureDir, domain.DefaultExtensions, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"src/App.tsx",
		"src/components/Hero.tsx",
		"src/components/Nav.test.tsx",
		"src/components/Nav.tsx",
	}, relPaths(result))
	assert.True(t, filepath.IsAbs(result.RootPath))
}

func TestFileScanner_ExcludesDependencyAndBuildDirs(t *testing.T) {
	s := scanner.New()
	result, err := s.Scan(fixtureDir, domain.DefaultExtensions, nil)
	require.NoError(t, err)

	for _, f := range result.Files {
		assert.NotContains(t, f.RelPath, "node_modules/")
		assert.NotContains(t, f.RelPath, "dist/")
	}
}

func TestFileScanner_ExcludeGlobs(t *testing.T) {
	s := scanner.New()
	result, err := s.Scan(fixtureDir, domain.DefaultExtensions, []string{"**/*.test.tsx", "src/components/Hero.tsx"})
	require.NoError(t, err)

	assert.Equal(t, []string{"src/App.tsx", "src/components/Nav.tsx"}, relPaths(result))
}

func TestFileScanner_ExcludeDirectoryByName(t *testing.T) {
	s := scanner.New()
	result, err := s.Scan(fixtureDir, domain.DefaultExtensions, []string{"components"})
	require.NoError(t, err)

	assert.Equal(t, []string{"src/App.tsx"}, relPaths(result))
}

func TestFileScanner_ExtensionsWithoutDot(t *testing.T) {
	s := scanner.New()
	result, err := s.Scan(fixtureDir, []string{"CSS"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"src/styles.css"}, relPaths(result))
}

func TestFileScanner_RecordsSizeAndModTime(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.vue"), []byte("<template>Hi</template>"), 0644))

	result, err := scanner.New().Scan(dir, domain.DefaultExtensions, nil)
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Equal(t, int64(23), result.Files[0].Size)
	assert.NotZero(t, result.Files[0].ModTime)
	assert.Equal(t, filepath.Join(result.RootPath, "a.vue"), result.Files[0].Path)
}

func TestFileScanner_InvalidGlob(t *testing.T) {
	_, err := scanner.New().Scan(fixtureDir, domain.DefaultExtensions, []string{"[unclosed"})
	assert.Error(t, err)
}

func TestFileScanner_MissingRoot(t *testing.T) {
	_, err := scanner.New().Scan(filepath.Join(t.TempDir(), "nope"), domain.DefaultExtensions, nil)
	assert.Error(t, err)
}
