package docx

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

	docerr "github.com/allanpk716/docform/internal/errors"
	"github.com/allanpk716/docform/internal/fsutil"
	"github.com/allanpk716/docform/internal/testutil"
)

func welcomeFixture() testutil.DocxFixture {
	return testutil.DocxFixture{
		Body: testutil.Para(testutil.BoldRun("Dear {{NAME}}, "), testutil.Run("welcome to {{CITY}}.")) +
			testutil.TextPara("Role: {{ROLE}}") +
			testutil.Para(testutil.BoldRun("Untouched"), testutil.Run(" paragraph")) +
			testutil.Table([]string{
				testutil.Cell(testutil.TextPara("{{NAME}}")),
				testutil.Cell(testutil.TextPara("{{DATE}}")),
			}),
		HeaderParts: []string{testutil.TextPara("{{COMPANY}} header")},
		FooterParts: []string{testutil.TextPara("page footer")},
	}
}

func TestScanPlaceholders(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		fixture testutil.DocxFixture
		want    []string
	}{
		{
			name:    "无占位符",
			fixture: testutil.DocxFixture{Body: testutil.TextPara("plain text {{ not a token }} {NAME}")},
			want:    []string{},
		},
		{
			name: "正文与表格重复只出现一次",
			fixture: testutil.DocxFixture{
				Body: testutil.TextPara("{{NAME}}") + testutil.Table([]string{testutil.Cell(testutil.TextPara("{{NAME}}"))}),
			},
			want: []string{"NAME"},
		},
		{
			name:    "全部位置",
			fixture: welcomeFixture(),
			want:    []string{"CITY", "COMPANY", "DATE", "NAME", "ROLE"},
		},
		{
			name:    "大小写敏感",
			fixture: testutil.DocxFixture{Body: testutil.TextPara("{{name}} {{Name}} {{NAME}}")},
			want:    []string{"NAME", "Name", "name"},
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WriteDocx(t, dir, strings.Repeat("s", i+1)+".docx", tt.fixture)
			names, err := ScanPlaceholders(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestScanPlaceholders_Unreadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0644))

	_, err := ScanPlaceholders(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, docerr.ErrDocumentRead)
}

func TestFillTemplate(t *testing.T) {
	dir := t.TempDir()
	templatePath := testutil.WriteDocx(t, dir, "welcome.docx", welcomeFixture())
	before, err := os.ReadFile(templatePath)
	require.NoError(t, err)

	outputPath := filepath.Join(dir, "out", "welcome_filled.docx")
	result, err := FillTemplate(templatePath, map[string]string{
		"NAME":    "Ana",
		"CITY":    "Lisbon",
		"COMPANY": "Acme",
	}, outputPath)
	require.NoError(t, err)

	assert.Equal(t, outputPath, result.OutputPath)
	assert.Equal(t, []string{"CITY", "COMPANY", "DATE", "NAME", "ROLE"}, result.Placeholders)
	assert.Equal(t, []string{"DATE", "ROLE"}, result.Missing)
	assert.Equal(t, 3, result.ChangedParagraphs)

	doc, err := Open(outputPath)
	require.NoError(t, err)
	texts := doc.Texts()
	assert.Equal(t, "Dear Ana, welcome to Lisbon.", texts[0])
	assert.Equal(t, "Role: {{ROLE}}", texts[1])
	assert.Equal(t, "Untouched paragraph", texts[2])
	assert.Equal(t, "Ana", texts[3])
	assert.Equal(t, "{{DATE}}", texts[4])
	assert.Equal(t, "Acme header", texts[5])

	// 改变的段落只剩一个 run 并沿用第一个 run 的格式；未改变的段落保持原样
	paragraphs := doc.Paragraphs()
	require.Len(t, paragraphs[0].Runs(), 1)
	assert.NotNil(t, wordChild(paragraphs[0].Runs()[0], "rPr"))
	assert.Len(t, paragraphs[2].Runs(), 2)

	// 模板文件不被修改
	after, err := os.ReadFile(templatePath)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	// 未修改的部件按原字节写回
	assert.Equal(t,
		testutil.ReadPart(t, templatePath, "word/footer1.xml"),
		testutil.ReadPart(t, outputPath, "word/footer1.xml"))
}

func TestFillTemplate_EmptyMapKeepsText(t *testing.T) {
	dir := t.TempDir()
	templatePath := testutil.WriteDocx(t, dir, "t.docx", welcomeFixture())

	original, err := Open(templatePath)
	require.NoError(t, err)

	outputPath := filepath.Join(dir, "copy.docx")
	result, err := FillTemplate(templatePath, map[string]string{}, outputPath)
	require.NoError(t, err)
	assert.Zero(t, result.ChangedParagraphs)

	filled, err := Open(outputPath)
	require.NoError(t, err)
	assert.Equal(t, original.Texts(), filled.Texts())
}

func TestFillTemplate_NoRecursiveExpansion(t *testing.T) {
	dir := t.TempDir()
	templatePath := testutil.WriteDocx(t, dir, "t.docx", testutil.DocxFixture{
		Body: testutil.TextPara("{{A}} and {{B}}"),
	})

	outputPath := filepath.Join(dir, "o.docx")
	_, err := FillTemplate(templatePath, map[string]string{"A": "{{B}}", "B": "x"}, outputPath)
	require.NoError(t, err)

	doc, err := Open(outputPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"{{B}} and x"}, doc.Texts())
}

func TestFillTemplate_EmptyValue(t *testing.T) {
	dir := t.TempDir()
	templatePath := testutil.WriteDocx(t, dir, "t.docx", testutil.DocxFixture{
		Body: testutil.TextPara("[{{OPTIONAL}}]"),
	})

	outputPath := filepath.Join(dir, "o.docx")
	_, err := FillTemplate(templatePath, map[string]string{"OPTIONAL": ""}, outputPath)
	require.NoError(t, err)

	doc, err := Open(outputPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"[]"}, doc.Texts())
}

func TestFillTemplate_Errors(t *testing.T) {
	dir := t.TempDir()
	templatePath := testutil.WriteDocx(t, dir, "t.docx", welcomeFixture())

	t.Run("输出与模板相同", func(t *testing.T) {
		_, err := FillTemplate(templatePath, map[string]string{"NAME": "x"}, templatePath)
		assert.ErrorIs(t, err, docerr.ErrDocumentWrite)
	})

	t.Run("模板不可读", func(t *testing.T) {
		_, err := FillTemplate(filepath.Join(dir, "missing.docx"), nil, filepath.Join(dir, "o.docx"))
		assert.ErrorIs(t, err, docerr.ErrDocumentRead)
	})

	t.Run("写入中途失败", func(t *testing.T) {
		outputPath := filepath.Join(dir, "existing.docx")
		require.NoError(t, os.WriteFile(outputPath, []byte("previous"), 0644))

		failing := func(path string, r io.Reader) error {
			return fsutil.AtomicWriter(path, io.MultiReader(io.LimitReader(r, 64), iotest.ErrReader(errors.New("disk full"))))
		}
		_, err := FillTemplateWith(failing, templatePath, map[string]string{"NAME": "x"}, outputPath)
		require.ErrorIs(t, err, docerr.ErrDocumentWrite)

		data, err := os.ReadFile(outputPath)
		require.NoError(t, err)
		assert.Equal(t, "previous", string(data))
	})
}
