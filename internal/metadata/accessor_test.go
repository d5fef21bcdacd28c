package metadata

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"testing/iotest"
	"unicode/utf16"

	"github.com/richardlehane/msoleps"
	"github.com/richardlehane/msoleps/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	docerr "github.com/allanpk716/docform/internal/errors"
	"github.com/allanpk716/docform/internal/fsutil"
	"github.com/allanpk716/docform/internal/testutil"
)

func newDocx(t *testing.T, dir string, core, custom string) string {
	t.Helper()
	return testutil.WriteDocx(t, dir, "doc.docx", testutil.DocxFixture{
		Body:      testutil.TextPara("content"),
		CoreXML:   core,
		CustomXML: custom,
	})
}

// failingWriter 在写出少量字节后失败，模拟磁盘写满
func failingWriter(path string, r io.Reader) error {
	return fsutil.AtomicWriter(path, io.MultiReader(io.LimitReader(r, 32), iotest.ErrReader(errors.New("no space left on device"))))
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path   string
		format Format
	}{
		{"a.docx", FormatDOCX},
		{"B.DOCX", FormatDOCX},
		{"c.pdf", FormatPDF},
		{"d.PDF", FormatPDF},
		{"legacy.doc", FormatDOC},
	}
	for _, tt := range tests {
		accessor, err := ForPath(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.format, accessor.Format(), tt.path)
	}

	_, err := ForPath("notes.txt")
	assert.ErrorIs(t, err, docerr.ErrUnsupportedFormat)
	_, err = ForPath("noext")
	assert.ErrorIs(t, err, docerr.ErrUnsupportedFormat)
}

func TestAccessors_RoundTripAndClear(t *testing.T) {
	records := map[string]Record{
		"plain":  {Title: "T", Creator: "C", Description: "D", Category: "G"},
		"padded": {Title: " padded ", Creator: "Ana\n", Description: "\tD", Category: " "},
	}

	fixtures := map[string]func(t *testing.T, dir string) string{
		"docx": func(t *testing.T, dir string) string {
			return newDocx(t, dir, "", "")
		},
		"pdf": func(t *testing.T, dir string) string {
			return testutil.WritePDF(t, dir, "doc.pdf", 2, map[string]string{"Title": "old title"})
		},
	}

	for name, create := range fixtures {
		for recName, want := range records {
			t.Run(name+"/"+recName, func(t *testing.T) {
				path := create(t, t.TempDir())
				accessor, err := ForPath(path)
				require.NoError(t, err)

				require.NoError(t, accessor.Write(path, want))
				got, err := accessor.Read(path)
				require.NoError(t, err)
				assert.Equal(t, want, got)

				require.NoError(t, accessor.Clear(path))
				got, err = accessor.Read(path)
				require.NoError(t, err)
				assert.True(t, got.IsEmpty(), "清除后应全部为空: %+v", got)
			})
		}
	}
}

func TestDocxAccessor_PartialUpdate(t *testing.T) {
	path := newDocx(t, t.TempDir(), testutil.CoreXML("T", "C", "D", "G"), "")
	accessor, err := ForPath(path)
	require.NoError(t, err)

	require.NoError(t, accessor.Write(path, Record{Title: "New", Category: "G"}))
	got, err := accessor.Read(path)
	require.NoError(t, err)
	assert.Equal(t, Record{Title: "New", Category: "G"}, got)

	// 正文不受影响
	assert.Contains(t, testutil.ReadPart(t, path, "word/document.xml"), "content")
}

func TestDocxAccessor_CreatorFallbackCleared(t *testing.T) {
	path := newDocx(t, t.TempDir(), testutil.CoreXML("T", "", "", ""), testutil.CustomXML(map[string]string{"Creator": "fallback"}))
	accessor, err := ForPath(path)
	require.NoError(t, err)

	got, err := accessor.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "fallback", got.Creator)

	require.NoError(t, accessor.Clear(path))
	got, err = accessor.Read(path)
	require.NoError(t, err)
	assert.Empty(t, got.Creator)
}

func TestAccessors_FailureAtomicity(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		newDocx(t, dir, testutil.CoreXML("T", "C", "D", "G"), ""),
		testutil.WritePDF(t, dir, "doc.pdf", 1, map[string]string{"Title": "T"}),
	}

	for _, path := range paths {
		t.Run(filepath.Ext(path), func(t *testing.T) {
			before, err := os.ReadFile(path)
			require.NoError(t, err)

			accessor, err := ForPath(path, WithWriter(failingWriter))
			require.NoError(t, err)

			err = accessor.Write(path, Record{Title: "changed"})
			require.ErrorIs(t, err, docerr.ErrMetadataWrite)

			err = accessor.Clear(path)
			require.ErrorIs(t, err, docerr.ErrMetadataWrite)

			after, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, before, after, "原文件必须保持不变")

			entries, err := os.ReadDir(filepath.Dir(path))
			require.NoError(t, err)
			assert.Len(t, entries, len(paths), "不应残留临时文件")
		})
	}
}

func TestAccessors_ReadErrors(t *testing.T) {
	dir := t.TempDir()
	corrupt := map[string][]byte{
		"bad.docx": []byte("not a zip archive"),
		"bad.pdf":  []byte("not a pdf"),
		"bad.doc":  []byte("not a compound file"),
	}

	for name, data := range corrupt {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, data, 0644))

			accessor, err := ForPath(path)
			require.NoError(t, err)

			_, err = accessor.Read(path)
			assert.ErrorIs(t, err, docerr.ErrMetadataRead)

			_, err = accessor.Read(filepath.Join(dir, "missing"+filepath.Ext(name)))
			assert.ErrorIs(t, err, docerr.ErrMetadataRead)
		})
	}

	t.Run("不可读的源文件写入时报读取错误", func(t *testing.T) {
		for _, name := range []string{"bad.docx", "bad.pdf"} {
			path := filepath.Join(dir, name)
			accessor, err := ForPath(path)
			require.NoError(t, err)
			assert.ErrorIs(t, accessor.Write(path, Record{Title: "x"}), docerr.ErrMetadataRead, name)
		}
	})
}

func TestOLEAccessor_ReadOnly(t *testing.T) {
	accessor, err := ForPath("legacy.doc")
	require.NoError(t, err)

	assert.ErrorIs(t, accessor.Write("legacy.doc", Record{Title: "x"}), docerr.ErrMetadataWrite)
	assert.ErrorIs(t, accessor.Clear("legacy.doc"), docerr.ErrMetadataWrite)
}

func unicode(s string) types.UnicodeString {
	return types.UnicodeString(utf16.Encode([]rune(s + "\x00")))
}

func TestApplyOLEProperties(t *testing.T) {
	var rec Record
	applyOLEProperties(&rec, []*msoleps.Property{
		{Name: "Title", T: unicode("Legacy title")},
		{Name: "Author", T: unicode("Old author")},
		{Name: "Comments", T: unicode("Notes")},
		{Name: "Keywords", T: unicode("ignored")},
		{Name: "Category", T: unicode("Archive")},
		{Name: "Title", T: unicode("second title is ignored")},
		{Name: "Author", T: types.UnicodeString{'x'}},
		nil,
	})

	assert.Equal(t, Record{Title: "Legacy title", Creator: "Old author", Description: "Notes", Category: "Archive"}, rec)
}
