package processor

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/allanpk716/docform/internal/domain"
	docerr "github.com/allanpk716/docform/internal/errors"
	"github.com/allanpk716/docform/internal/fsutil"
	"github.com/allanpk716/docform/internal/logging"
	"github.com/allanpk716/docform/pkg/docx"
)

// templateProcessor 模板处理器实现
type templateProcessor struct {
	logger *slog.Logger
	write  fsutil.WriterFunc
}

// Option 处理器选项
type Option func(*templateProcessor)

// WithWriter 替换落盘函数
func WithWriter(write fsutil.WriterFunc) Option {
	return func(tp *templateProcessor) {
		tp.write = write
	}
}

// NewTemplateProcessor 创建新的模板处理器
func NewTemplateProcessor(logger *slog.Logger, opts ...Option) domain.TemplateProcessor {
	tp := &templateProcessor{
		logger: logging.OrDiscard(logger),
		write:  fsutil.AtomicWriter,
	}
	for _, opt := range opts {
		opt(tp)
	}
	return tp
}

// ScanDocument 扫描模板中的占位符
func (tp *templateProcessor) ScanDocument(ctx context.Context, inputPath string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if inputPath == "" {
		return nil, docerr.DocumentRead("scan", inputPath, fmt.Errorf("输入路径不能为空"))
	}

	names, err := docx.ScanPlaceholders(inputPath)
	if err != nil {
		return nil, err
	}

	tp.logger.Debug("扫描完成", "path", inputPath, "placeholders", len(names))
	return names, nil
}

// ProcessDocument 用替换映射填充模板并写出新文档
func (tp *templateProcessor) ProcessDocument(ctx context.Context, inputPath, outputPath string, replacements map[string]string) (*domain.ProcessResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if inputPath == "" {
		return nil, docerr.DocumentRead("fill", inputPath, fmt.Errorf("输入路径不能为空"))
	}
	if outputPath == "" {
		return nil, docerr.DocumentWrite("fill", outputPath, fmt.Errorf("输出路径不能为空"))
	}

	tp.logger.Info("开始处理文档", "template", inputPath, "values", len(replacements))

	// 在最终替换之前检查取消，落盘过程不被打断
	write := func(path string, r io.Reader) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return tp.write(path, r)
	}

	result, err := docx.FillTemplateWith(write, inputPath, replacements, outputPath)
	if err != nil {
		tp.logger.Error("文档处理失败", "template", inputPath, "error", err)
		return nil, err
	}

	if len(result.Missing) > 0 {
		tp.logger.Warn("部分占位符未提供值", "missing", result.Missing)
	}
	tp.logger.Info("文档处理完成", "output", result.OutputPath, "changed_paragraphs", result.ChangedParagraphs)
	return result, nil
}

// ExtractText 按遍历顺序提取每个段落的文本
func (tp *templateProcessor) ExtractText(ctx context.Context, inputPath string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return docx.ExtractText(inputPath)
}

// ValidateDocument 验证文档是否有效
func (tp *templateProcessor) ValidateDocument(inputPath string) error {
	if inputPath == "" {
		return docerr.DocumentRead("validate", inputPath, fmt.Errorf("输入路径不能为空"))
	}

	if err := docx.ValidateDocument(inputPath); err != nil {
		return docerr.DocumentRead("validate", inputPath, err)
	}
	return nil
}
