package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_Upload(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewLocalStorage(dir)
	require.NoError(t, err)

	path, err := s.Upload(ctx, strings.NewReader("| id |\n"), "2024-10/employees.md", "text/markdown")
	require.NoError(t, err)
	assert.Equal(t, "2024-10/employees.md", path)

	body, err := os.ReadFile(filepath.Join(dir, path))
	require.NoError(t, err)
	assert.Equal(t, "| id |\n", string(body))

	// overwrite replaces the content
	_, err = s.Upload(ctx, strings.NewReader("new"), path, "text/markdown")
	require.NoError(t, err)
	body, err = os.ReadFile(filepath.Join(dir, path))
	require.NoError(t, err)
	assert.Equal(t, "new", string(body))

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Join(dir, "2024-10"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.Upload(context.Background(), strings.NewReader("x"), "../escape.txt", "text/plain")
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = s.Upload(context.Background(), strings.NewReader("x"), "csv/../../../etc/passwd", "text/plain")
	assert.ErrorIs(t, err, ErrInvalidPath)
}
