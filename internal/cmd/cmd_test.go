package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allanpk716/docform/internal/config"
	docerr "github.com/allanpk716/docform/internal/errors"
	"github.com/allanpk716/docform/internal/metadata"
	"github.com/allanpk716/docform/internal/testutil"
	"github.com/allanpk716/docform/pkg/docx"
)

// run 在隔离的工作目录中执行命令，返回标准输出
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.ConfigFileEnv, "")

	var out, errOut bytes.Buffer
	root := NewRootCommand(&out, &errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeWelcome(t *testing.T, dir string) string {
	t.Helper()
	return testutil.WriteDocx(t, dir, "welcome.docx", testutil.DocxFixture{
		Body: testutil.TextPara("Dear {{NAME}}, welcome to {{CITY}}.") +
			testutil.Table([]string{testutil.Cell(testutil.TextPara("{{ROLE}}"))}),
	})
}

func TestScanCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	tpl := writeWelcome(t, t.TempDir())

	out, err := run(t, "scan", tpl)
	require.NoError(t, err)
	assert.Equal(t, "CITY\nNAME\nROLE\n", out)

	out, err = run(t, "scan", "--json", tpl)
	require.NoError(t, err)
	var names []string
	require.NoError(t, json.Unmarshal([]byte(out), &names))
	assert.Equal(t, []string{"CITY", "NAME", "ROLE"}, names)
}

func TestFillCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	tpl := writeWelcome(t, dir)

	valuesFile := filepath.Join(dir, "values.yaml")
	require.NoError(t, os.WriteFile(valuesFile, []byte("NAME: Bo\nCITY: Lisbon\n"), 0644))

	out, err := run(t, "fill", tpl, "--values", valuesFile, "--set", "NAME=Ana", "--allow-empty")
	require.NoError(t, err)

	output := filepath.Join(dir, "welcome_processed.docx")
	assert.Contains(t, out, output)
	assert.Contains(t, out, "未提供取值: ROLE")

	texts, err := docx.ExtractText(output)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dear Ana, welcome to Lisbon.", "{{ROLE}}"}, texts)
}

func TestFillCommand_EmptyValues(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	tpl := writeWelcome(t, dir)
	output := filepath.Join(dir, "out.docx")

	_, err := run(t, "fill", tpl, "--set", "NAME=", "-o", output)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NAME")
	assert.NoFileExists(t, output)

	_, err = run(t, "fill", tpl, "--set", "NAME=", "--allow-empty", "-o", output)
	require.NoError(t, err)
	assert.FileExists(t, output)
}

func TestFillCommand_MissingValues(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	tpl := writeWelcome(t, dir)
	output := filepath.Join(dir, "out.docx")

	// 模板中的 ROLE 没有取值，与空取值同样需要 --allow-empty
	_, err := run(t, "fill", tpl, "--set", "NAME=Ana", "--set", "CITY=Lisbon", "-o", output)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ROLE")
	assert.NotContains(t, err.Error(), "NAME")
	assert.NoFileExists(t, output)

	out, err := run(t, "fill", tpl, "--set", "NAME=Ana", "--set", "CITY=Lisbon", "--set", "ROLE=editor", "-o", output)
	require.NoError(t, err)
	assert.NotContains(t, out, "未提供取值")
	assert.FileExists(t, output)
}

func TestFillCommand_Errors(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	tpl := writeWelcome(t, dir)

	tests := []struct {
		name string
		args []string
	}{
		{"no template", []string{"fill", "--set", "A=b"}},
		{"bad assignment", []string{"fill", tpl, "--set", "NAME"}},
		{"bad name", []string{"fill", tpl, "--set", "first name=x"}},
		{"output equals template", []string{"fill", tpl, "--set", "NAME=x", "--allow-empty", "-o", tpl}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestMetaCommands(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	path := testutil.WriteDocx(t, dir, "report.docx", testutil.DocxFixture{
		Body:    testutil.TextPara("body"),
		CoreXML: testutil.CoreXML("Draft", "Bo", "", "Reports"),
	})

	out, err := run(t, "meta", "read", path)
	require.NoError(t, err)
	assert.Equal(t, "DC:TITLE: Draft\nDC:CREATOR: Bo\nCP:DESCRIPTION: \nCP:CATEGORY: Reports\n", out)

	_, err = run(t, "meta", "write", path, "--title", "Final", "--description", "Q3")
	require.NoError(t, err)

	out, err = run(t, "meta", "read", "--json", path)
	require.NoError(t, err)
	var rec metadata.Record
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, metadata.Record{Title: "Final", Creator: "Bo", Description: "Q3", Category: "Reports"}, rec)

	_, err = run(t, "meta", "write", path)
	assert.Error(t, err, "没有字段参数时应报错")

	_, err = run(t, "meta", "clear", path)
	require.NoError(t, err)

	out, err = run(t, "meta", "read", path)
	require.NoError(t, err)
	assert.Equal(t, "DC:TITLE: \nDC:CREATOR: \nCP:DESCRIPTION: \nCP:CATEGORY: \n", out)
}

func TestMetaCommand_Unsupported(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	_, err := run(t, "meta", "read", path)
	assert.ErrorIs(t, err, docerr.ErrUnsupportedFormat)
}

func TestTextAndSampleCommands(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	sample := filepath.Join(dir, "sample.docx")

	out, err := run(t, "sample", sample)
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")

	out, err = run(t, "scan", sample)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(docx.SamplePlaceholders, "\n")+"\n", out)

	out, err = run(t, "text", "-n", sample)
	require.NoError(t, err)
	assert.Contains(t, out, ": {{COMPANY}}")
}

func TestRootCommand_InvalidSettings(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := run(t, "--log-level", "loud", "version")
	assert.Error(t, err)

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, AppName+" "))
}
