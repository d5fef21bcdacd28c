// Package metadata 在DOCX与PDF之间统一读写四个描述性字段。
//
// 每种格式一个 Accessor 实现，由 ForPath 按扩展名选择。写入先渲染到内存，
// 再写入目标目录中的临时文件并原子替换，失败时原文件保持不变。
package metadata

import (
	"log/slog"

	"github.com/allanpk716/docform/internal/fsutil"
	"github.com/allanpk716/docform/internal/logging"
)

// Accessor 某种格式的元数据读写器
type Accessor interface {
	// Format 返回处理的格式
	Format() Format
	// Read 读取四个字段，缺失值为空字符串
	Read(path string) (Record, error)
	// Write 把元数据改写为 rec，空字符串删除对应字段
	Write(path string, rec Record) error
	// Clear 等价于写入全空记录
	Clear(path string) error
}

type options struct {
	logger *slog.Logger
	write  fsutil.WriterFunc
}

// Option 访问器选项
type Option func(*options)

// WithLogger 设置日志记录器
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithWriter 替换落盘函数
func WithWriter(write fsutil.WriterFunc) Option {
	return func(o *options) {
		o.write = write
	}
}

func buildOptions(opts []Option) options {
	o := options{write: fsutil.AtomicWriter}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = logging.OrDiscard(o.logger)
	if o.write == nil {
		o.write = fsutil.AtomicWriter
	}
	return o
}

// New 返回指定格式的访问器
func New(format Format, opts ...Option) (Accessor, bool) {
	o := buildOptions(opts)
	switch format {
	case FormatDOCX:
		return &docxAccessor{options: o}, true
	case FormatPDF:
		return &pdfAccessor{options: o}, true
	case FormatDOC:
		return &oleAccessor{options: o}, true
	default:
		return nil, false
	}
}

// ForPath 按文件扩展名选择访问器，不支持的扩展名返回 UnsupportedFormat 错误
func ForPath(path string, opts ...Option) (Accessor, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	accessor, _ := New(format, opts...)
	return accessor, nil
}
