package docx

import (
	"fmt"
	"io"

	"github.com/beevik/etree"
)

// PartKind 内容部件类型
type PartKind int

const (
	PartBody PartKind = iota
	PartHeader
	PartFooter
)

// String 返回部件类型名称
func (k PartKind) String() string {
	switch k {
	case PartBody:
		return "body"
	case PartHeader:
		return "header"
	case PartFooter:
		return "footer"
	default:
		return "unknown"
	}
}

// xmlPart 已解析的内容部件
type xmlPart struct {
	name  string
	kind  PartKind
	doc   *etree.Document
	dirty bool
}

// Document 可扫描、可替换文本的DOCX文档：正文、表格单元格以及各节引用的页眉页脚
type Document struct {
	pkg   *Package
	parts []*xmlPart
}

// Open 打开DOCX文档并解析正文与页眉页脚部件
func Open(filePath string) (*Document, error) {
	pkg, err := OpenPackage(filePath)
	if err != nil {
		return nil, err
	}
	return NewDocument(pkg)
}

// NewDocument 基于已读取的包构造文档
func NewDocument(pkg *Package) (*Document, error) {
	body, err := parsePart(pkg, MainDocumentPart, PartBody)
	if err != nil {
		return nil, err
	}

	d := &Document{pkg: pkg, parts: []*xmlPart{body}}

	refs, err := sectionPartRefs(pkg, body.doc)
	if err != nil {
		return nil, err
	}
	for _, ref := range refs {
		part, err := parsePart(pkg, ref.name, ref.kind)
		if err != nil {
			return nil, err
		}
		d.parts = append(d.parts, part)
	}

	return d, nil
}

func parsePart(pkg *Package, name string, kind PartKind) (*xmlPart, error) {
	data, ok := pkg.Part(name)
	if !ok {
		return nil, fmt.Errorf("未找到%s文件", name)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("解析%s失败: %w", name, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("%s没有根元素", name)
	}

	return &xmlPart{name: name, kind: kind, doc: doc}, nil
}

// Package 返回底层包
func (d *Document) Package() *Package {
	return d.pkg
}

// Parts 按遍历顺序返回内容部件名
func (d *Document) Parts() []string {
	names := make([]string, 0, len(d.parts))
	for _, p := range d.parts {
		names = append(names, p.name)
	}
	return names
}

// Paragraphs 按固定顺序返回全部段落：正文（含表格单元格），然后逐节的页眉、页脚
func (d *Document) Paragraphs() []Paragraph {
	var paragraphs []Paragraph
	for _, part := range d.parts {
		container := part.doc.Root()
		if part.kind == PartBody {
			container = wordChild(container, "body")
			if container == nil {
				continue
			}
		}
		paragraphs = collectParagraphs(container, part, paragraphs)
	}
	return paragraphs
}

// Texts 返回每个段落的可见文本
func (d *Document) Texts() []string {
	paragraphs := d.Paragraphs()
	texts := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		texts = append(texts, p.Text())
	}
	return texts
}

// Rewrite 对每个段落的文本应用 fn，文本发生变化的段落才会被重写。返回重写的段落数。
func (d *Document) Rewrite(fn func(text string) string) int {
	changed := 0
	for _, p := range d.Paragraphs() {
		original := p.Text()
		updated := fn(original)
		if updated != original {
			p.SetText(updated)
			changed++
		}
	}
	return changed
}

// WriteTo 序列化被修改的部件并写出整个包，未修改的部件保持原始字节
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	for _, part := range d.parts {
		if !part.dirty {
			continue
		}
		data, err := part.doc.WriteToBytes()
		if err != nil {
			return 0, fmt.Errorf("生成%s失败: %w", part.name, err)
		}
		d.pkg.SetPart(part.name, data)
		part.dirty = false
	}
	return d.pkg.WriteTo(w)
}
