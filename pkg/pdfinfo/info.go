// Package pdfinfo 读写PDF文档信息字典中的描述性字段
package pdfinfo

import (
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// Info 文档信息字典中的字段，缺失的值为空字符串。Category 不是标准键，多数生成器不会写入。
type Info struct {
	Title    string
	Author   string
	Subject  string
	Category string
}

// IsEmpty 四个字段是否全为空
func (i Info) IsEmpty() bool {
	return i == Info{}
}

// Document 读取到的PDF概要
type Document struct {
	Info      Info
	Pages     int
	Encrypted bool
}

// ErrEncrypted 加密文档无法在保持内容的前提下重建
var ErrEncrypted = errors.New("PDF已加密，不支持改写元数据")

// Read 读取PDF的文档信息字典与页数
func Read(path string) (doc *Document, err error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开PDF失败: %w", err)
	}
	defer f.Close()

	// 解析器在遇到损坏的对象时会 panic
	defer func() {
		if p := recover(); p != nil {
			doc = nil
			err = fmt.Errorf("解析PDF失败: %v", p)
		}
	}()

	trailer := r.Trailer()
	info := trailer.Key("Info")

	doc = &Document{
		Info: Info{
			Title:    info.Key("Title").Text(),
			Author:   info.Key("Author").Text(),
			Subject:  info.Key("Subject").Text(),
			Category: info.Key("Category").Text(),
		},
		Pages:     r.NumPage(),
		Encrypted: !trailer.Key("Encrypt").IsNull(),
	}
	return doc, nil
}
