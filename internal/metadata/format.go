package metadata

import (
	"path/filepath"
	"strings"

	docerr "github.com/allanpk716/docform/internal/errors"
)

// Format 支持的文档格式
type Format int

const (
	FormatUnknown Format = iota
	FormatDOCX
	FormatPDF
	// FormatDOC 旧版 Word 复合文档，只读
	FormatDOC
)

// String 返回格式名称
func (f Format) String() string {
	switch f {
	case FormatDOCX:
		return "docx"
	case FormatPDF:
		return "pdf"
	case FormatDOC:
		return "doc"
	default:
		return "unknown"
	}
}

// DetectFormat 按扩展名判断格式，大小写不敏感
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx", ".docm", ".dotx":
		return FormatDOCX, nil
	case ".pdf":
		return FormatPDF, nil
	case ".doc", ".dot":
		return FormatDOC, nil
	default:
		return FormatUnknown, docerr.UnsupportedFormat("detect", path)
	}
}
