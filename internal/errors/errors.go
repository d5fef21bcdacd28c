// Package errors 定义模板填充与元数据操作的错误分类。
//
// 所有失败都在离触发操作最近的边界被归类为一个 Kind，并以单条可读消息
// 返回给调用方，不做自动重试。
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind 错误类别
type Kind string

const (
	KindDocumentRead      Kind = "document_read"
	KindDocumentWrite     Kind = "document_write"
	KindMetadataRead      Kind = "metadata_read"
	KindMetadataWrite     Kind = "metadata_write"
	KindUnsupportedFormat Kind = "unsupported_format"
)

// String 返回类别的中文描述
func (k Kind) String() string {
	switch k {
	case KindDocumentRead:
		return "读取文档失败"
	case KindDocumentWrite:
		return "写入文档失败"
	case KindMetadataRead:
		return "读取元数据失败"
	case KindMetadataWrite:
		return "写入元数据失败"
	case KindUnsupportedFormat:
		return "不支持的文件格式"
	default:
		return "未知错误"
	}
}

// Error 带上下文的结构化错误
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

// Error 实现 error 接口
func (e *Error) Error() string {
	var parts []string
	if e.Op != "" {
		parts = append(parts, "["+e.Op+"]")
	}
	parts = append(parts, e.Kind.String())
	if e.Path != "" {
		parts = append(parts, e.Path)
	}

	result := strings.Join(parts, " ")
	if e.Err != nil {
		result += fmt.Sprintf(": %v", e.Err)
	}
	return result
}

// Unwrap 返回底层错误
func (e *Error) Unwrap() error {
	return e.Err
}

// Is 按类别比较，使哨兵错误可以配合 errors.Is 使用
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && t.Op == "" && t.Path == "" && t.Err == nil
}

// 哨兵错误，仅用于 errors.Is 比较
var (
	ErrDocumentRead      = &Error{Kind: KindDocumentRead}
	ErrDocumentWrite     = &Error{Kind: KindDocumentWrite}
	ErrMetadataRead      = &Error{Kind: KindMetadataRead}
	ErrMetadataWrite     = &Error{Kind: KindMetadataWrite}
	ErrUnsupportedFormat = &Error{Kind: KindUnsupportedFormat}
)

// New 创建结构化错误。已经分类过的错误不会被重复包装。
func New(kind Kind, op, path string, err error) error {
	var existing *Error
	if errors.As(err, &existing) {
		return err
	}
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// DocumentRead 模板或文档不可读、已损坏
func DocumentRead(op, path string, err error) error {
	return New(KindDocumentRead, op, path, err)
}

// DocumentWrite 输出路径不可写或替换失败
func DocumentWrite(op, path string, err error) error {
	return New(KindDocumentWrite, op, path, err)
}

// MetadataRead 元数据来源不可读
func MetadataRead(op, path string, err error) error {
	return New(KindMetadataRead, op, path, err)
}

// MetadataWrite 元数据临时文件写入或替换失败
func MetadataWrite(op, path string, err error) error {
	return New(KindMetadataWrite, op, path, err)
}

// UnsupportedFormat 扩展名既不是文字处理文档也不是 PDF
func UnsupportedFormat(op, path string) error {
	return &Error{Kind: KindUnsupportedFormat, Op: op, Path: path}
}

// KindOf 返回错误链中第一个结构化错误的类别
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Message 返回面向用户的单行消息
func Message(err error) string {
	if err == nil {
		return ""
	}
	return strings.ReplaceAll(err.Error(), "\n", " ")
}
