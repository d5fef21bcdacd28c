// Package app 持有一次会话中的界面状态：当前模板及其占位符、当前编辑的文档。
package app

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/allanpk716/docform/internal/domain"
	"github.com/allanpk716/docform/internal/logging"
	"github.com/allanpk716/docform/internal/metadata"
)

var (
	// ErrNoTemplate 尚未选择模板
	ErrNoTemplate = errors.New("尚未选择模板")
	// ErrNoEditTarget 尚未选择要编辑元数据的文档
	ErrNoEditTarget = errors.New("尚未选择文档")
)

// Controller 表单界面背后的会话状态，非并发安全
type Controller struct {
	processor domain.TemplateProcessor
	metaOpts  []metadata.Option
	logger    *slog.Logger
	suffix    string

	templatePath string
	placeholders []string

	editPath string
	accessor metadata.Accessor
}

// NewController 创建控制器，outputSuffix 用于生成默认输出文件名
func NewController(processor domain.TemplateProcessor, logger *slog.Logger, outputSuffix string, opts ...metadata.Option) *Controller {
	logger = logging.OrDiscard(logger)
	return &Controller{
		processor: processor,
		metaOpts:  append([]metadata.Option{metadata.WithLogger(logger)}, opts...),
		logger:    logger,
		suffix:    outputSuffix,
	}
}

// SelectTemplate 选择模板并扫描其中的占位符。失败时保留之前的选择。
func (c *Controller) SelectTemplate(ctx context.Context, path string) ([]string, error) {
	names, err := c.processor.ScanDocument(ctx, path)
	if err != nil {
		return nil, err
	}
	c.templatePath = path
	c.placeholders = names
	c.logger.Debug("已选择模板", "path", path, "placeholders", len(names))
	return names, nil
}

// TemplatePath 当前模板路径
func (c *Controller) TemplatePath() string {
	return c.templatePath
}

// Placeholders 当前模板的占位符
func (c *Controller) Placeholders() []string {
	return c.placeholders
}

// DefaultOutputPath 当前模板的默认输出路径
func (c *Controller) DefaultOutputPath() string {
	if c.templatePath == "" {
		return ""
	}
	return OutputFileName(c.templatePath, c.suffix)
}

// EmptyValues 返回当前模板中取值为空白或未提供的占位符
func (c *Controller) EmptyValues(values map[string]string) []string {
	var empty []string
	for _, name := range c.placeholders {
		if strings.TrimSpace(values[name]) == "" {
			empty = append(empty, name)
		}
	}
	return empty
}

// Fill 用 values 填充当前模板，outputPath 为空时使用默认输出路径
func (c *Controller) Fill(ctx context.Context, values map[string]string, outputPath string) (*domain.ProcessResult, error) {
	if c.templatePath == "" {
		return nil, ErrNoTemplate
	}
	if outputPath == "" {
		outputPath = c.DefaultOutputPath()
	}
	return c.processor.ProcessDocument(ctx, c.templatePath, outputPath, values)
}

// SelectEditTarget 选择要编辑元数据的文档并读取当前值。失败时保留之前的选择。
func (c *Controller) SelectEditTarget(path string) (metadata.Record, error) {
	accessor, err := metadata.ForPath(path, c.metaOpts...)
	if err != nil {
		return metadata.Record{}, err
	}
	rec, err := accessor.Read(path)
	if err != nil {
		return metadata.Record{}, err
	}
	c.editPath = path
	c.accessor = accessor
	return rec, nil
}

// EditPath 当前编辑的文档
func (c *Controller) EditPath() string {
	return c.editPath
}

// ReadMetadata 重新读取当前文档的元数据
func (c *Controller) ReadMetadata() (metadata.Record, error) {
	if c.accessor == nil {
		return metadata.Record{}, ErrNoEditTarget
	}
	return c.accessor.Read(c.editPath)
}

// WriteMetadata 写入当前文档的元数据
func (c *Controller) WriteMetadata(rec metadata.Record) error {
	if c.accessor == nil {
		return ErrNoEditTarget
	}
	return c.accessor.Write(c.editPath, rec)
}

// ClearMetadata 清空当前文档的元数据
func (c *Controller) ClearMetadata() error {
	if c.accessor == nil {
		return ErrNoEditTarget
	}
	return c.accessor.Clear(c.editPath)
}

// OutputFileName 生成输出文件名：在扩展名前追加 suffix
func OutputFileName(inputFile, suffix string) string {
	ext := filepath.Ext(inputFile)
	base := strings.TrimSuffix(inputFile, ext)
	return base + suffix + ext
}
