package fsutil

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile_ReplacesTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	err := WriteFile(nil, path, func(w io.Writer) error {
		_, err := io.WriteString(w, "new content")
		return err
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new content", string(data))
}

func TestWriteFile_RenderFailureLeavesTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0644))

	renderErr := errors.New("render failed")
	err := WriteFile(nil, path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return renderErr
	})
	require.ErrorIs(t, err, renderErr)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
}

func TestWriteFile_PartialStreamLeavesTarget(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.bin")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0644))

	// 写到一半时读取失败
	failing := func(p string, r io.Reader) error {
		return AtomicWriter(p, io.MultiReader(io.LimitReader(r, 3), iotest.ErrReader(errors.New("disk full"))))
	}

	err := WriteFile(failing, path, func(w io.Writer) error {
		_, err := io.WriteString(w, strings.Repeat("x", 1024))
		return err
	})
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "临时文件应被清理")
}

func TestSamePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.docx")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	assert.True(t, SamePath(path, filepath.Join(dir, ".", "a.docx")))
	assert.False(t, SamePath(path, filepath.Join(dir, "b.docx")))
	assert.True(t, SamePath(filepath.Join(dir, "missing.docx"), filepath.Join(dir, "sub", "..", "missing.docx")))
}

func TestEnsureDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "out.docx")
	require.NoError(t, EnsureDir(path))

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
