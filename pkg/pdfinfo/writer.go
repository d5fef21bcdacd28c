package pdfinfo

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Write 读取 src，把页面树挂到只保留 /Type 与 /Pages 的目录下，附上只含非空字段的
// 新信息字典，然后写入 w。表单、书签、XMP 与签名不会保留；加密文档返回 ErrEncrypted。
func Write(src string, w io.Writer, info Info) error {
	ctx, err := api.ReadContextFile(src)
	if err != nil {
		return &ReadError{Path: src, Err: err}
	}
	if err := api.ValidateContext(ctx); err != nil {
		return &ReadError{Path: src, Err: err}
	}

	if ctx.Encrypt != nil {
		return ErrEncrypted
	}

	catalog, err := ctx.Catalog()
	if err != nil {
		return &ReadError{Path: src, Err: err}
	}
	for key := range catalog {
		if key != "Type" && key != "Pages" {
			delete(catalog, key)
		}
	}

	dict := types.Dict{}
	for _, entry := range []struct{ key, value string }{
		{"Title", info.Title},
		{"Author", info.Author},
		{"Subject", info.Subject},
		{"Category", info.Category},
	} {
		if entry.value == "" {
			continue
		}
		obj, err := EncodeText(entry.value)
		if err != nil {
			return fmt.Errorf("编码%s失败: %w", entry.key, err)
		}
		dict[entry.key] = obj
	}

	ref, err := ctx.IndRefForNewObject(dict)
	if err != nil {
		return fmt.Errorf("创建信息字典失败: %w", err)
	}
	ctx.Info = ref
	ctx.Title, ctx.Author, ctx.Subject = info.Title, info.Author, info.Subject

	if err := api.WriteContext(ctx, w); err != nil {
		return fmt.Errorf("生成PDF失败: %w", err)
	}
	return nil
}

// ReadError 源文件无法解析
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("读取PDF失败 %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
