package docx

import (
	"fmt"
	"io"

	"github.com/allanpk716/docform/internal/domain"
	docerr "github.com/allanpk716/docform/internal/errors"
	"github.com/allanpk716/docform/internal/fsutil"
	"github.com/allanpk716/docform/internal/matcher"
)

// FillResult 模板填充结果
type FillResult = domain.ProcessResult

var placeholders = matcher.NewPlaceholderMatcher()

// Placeholders 返回文档中去重并排序后的占位符名称
func (d *Document) Placeholders() []string {
	var names []string
	for _, text := range d.Texts() {
		names = append(names, placeholders.FindNames(text)...)
	}
	return matcher.UniqueSorted(names)
}

// Fill 在每个段落中替换映射里出现的占位符，返回被重写的段落数
func (d *Document) Fill(values map[string]string) int {
	if len(values) == 0 {
		return 0
	}
	return d.Rewrite(func(text string) string {
		return matcher.Replace(placeholders, text, values)
	})
}

// ScanPlaceholders 扫描正文、表格单元格以及各节页眉页脚中的占位符，结果去重并排序
func ScanPlaceholders(templatePath string) ([]string, error) {
	doc, err := Open(templatePath)
	if err != nil {
		return nil, docerr.DocumentRead("scan", templatePath, err)
	}
	return doc.Placeholders(), nil
}

// ExtractText 按遍历顺序返回每个段落的可见文本
func ExtractText(filePath string) ([]string, error) {
	doc, err := Open(filePath)
	if err != nil {
		return nil, docerr.DocumentRead("text", filePath, err)
	}
	return doc.Texts(), nil
}

// FillTemplate 用 values 填充模板并写出到 outputPath，模板文件本身不被修改
func FillTemplate(templatePath string, values map[string]string, outputPath string) (*FillResult, error) {
	return FillTemplateWith(fsutil.AtomicWriter, templatePath, values, outputPath)
}

// FillTemplateWith 与 FillTemplate 相同，但由 write 负责落盘
func FillTemplateWith(write fsutil.WriterFunc, templatePath string, values map[string]string, outputPath string) (*FillResult, error) {
	if fsutil.SamePath(templatePath, outputPath) {
		return nil, docerr.DocumentWrite("fill", outputPath, fmt.Errorf("输出路径不能与模板相同"))
	}

	doc, err := Open(templatePath)
	if err != nil {
		return nil, docerr.DocumentRead("fill", templatePath, err)
	}

	found := doc.Placeholders()
	var missing []string
	for _, name := range found {
		if _, ok := values[name]; !ok {
			missing = append(missing, name)
		}
	}

	changed := doc.Fill(values)

	if err := fsutil.EnsureDir(outputPath); err != nil {
		return nil, docerr.DocumentWrite("fill", outputPath, err)
	}
	err = fsutil.WriteFile(write, outputPath, func(w io.Writer) error {
		_, err := doc.WriteTo(w)
		return err
	})
	if err != nil {
		return nil, docerr.DocumentWrite("fill", outputPath, err)
	}

	return &FillResult{
		OutputPath:        outputPath,
		Placeholders:      found,
		Missing:           missing,
		ChangedParagraphs: changed,
	}, nil
}
