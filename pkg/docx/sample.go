package docx

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gomutex/godocx"
)

// SamplePlaceholders 示例模板中出现的占位符
var SamplePlaceholders = []string{"CITY", "COMPANY", "DATE", "NAME", "ROLE"}

// CreateSample 生成一个包含占位符的示例模板：标题、正文段落以及一个两列表格
func CreateSample(outputPath string) error {
	// 确保输出目录存在
	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("创建目录失败: %w", err)
		}
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("创建文档失败: %w", err)
	}
	defer doc.Close()

	if _, err := doc.AddHeading("{{COMPANY}}", 1); err != nil {
		return fmt.Errorf("添加标题失败: %w", err)
	}
	doc.AddParagraph("Dear {{NAME}}, welcome to {{CITY}}.")
	doc.AddParagraph("Your role: {{ROLE}}")

	tbl := doc.AddTable()
	for _, row := range [][2]string{
		{"Name", "{{NAME}}"},
		{"Date", "{{DATE}}"},
	} {
		r := tbl.AddRow()
		r.AddCell().AddParagraph(row[0])
		r.AddCell().AddParagraph(row[1])
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("保存文档失败: %w", err)
	}
	return nil
}
