package domain

import "context"

// TemplateProcessor 模板处理器接口
type TemplateProcessor interface {
	ScanDocument(ctx context.Context, inputPath string) ([]string, error)
	ProcessDocument(ctx context.Context, inputPath, outputPath string, replacements map[string]string) (*ProcessResult, error)
	ExtractText(ctx context.Context, inputPath string) ([]string, error)
	ValidateDocument(inputPath string) error
}

// PlaceholderMatcher 占位符匹配器接口
type PlaceholderMatcher interface {
	FindNames(content string) []string
	FindMatches(content string, replacements map[string]string) []Match
	ReplaceMatches(content string, matches []Match) string
}

// Match 表示一个匹配项
type Match struct {
	Name        string // 占位符名称 (如 NAME)
	Token       string // 原始占位符 (如 {{NAME}})
	Replacement string // 替换值
	StartPos    int    // 开始位置
	EndPos      int    // 结束位置
}

// ProcessResult 处理结果
type ProcessResult struct {
	OutputPath        string
	Placeholders      []string // 模板中检测到的占位符
	Missing           []string // 模板中存在但未提供值的占位符
	ChangedParagraphs int      // 被重写的段落数量
}
