package docx

import (
	"fmt"
	"strings"

	ndocx "github.com/nguyenthenguyen/docx"
)

// ValidateDocument 快速检查文件是否为可读的DOCX：ZIP结构可打开且主文档部件存在并包含正文
func ValidateDocument(filePath string) error {
	reader, err := ndocx.ReadDocxFile(filePath)
	if err != nil {
		return fmt.Errorf("打开docx文件失败: %w", err)
	}
	defer reader.Close()

	content := reader.Editable().GetContent()
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("文档主体为空")
	}
	if !strings.Contains(content, "body") {
		return fmt.Errorf("文档缺少正文元素")
	}
	return nil
}
