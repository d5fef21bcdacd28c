package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"time"
)

// 常用部件路径
const (
	ContentTypesPart = "[Content_Types].xml"
	PackageRelsPart  = "_rels/.rels"
	MainDocumentPart = "word/document.xml"
	DocumentRelsPart = "word/_rels/document.xml.rels"
	CorePropsPart    = "docProps/core.xml"
	CustomPropsPart  = "docProps/custom.xml"
)

// zipEntry ZIP 中的一个部件，保留原始文件头以便原样写回
type zipEntry struct {
	header zip.FileHeader
	data   []byte
}

// Package 基于ZIP文件结构的DOCX包
type Package struct {
	filePath string
	entries  []*zipEntry
	index    map[string]*zipEntry
}

// OpenPackage 读取DOCX文件中的全部部件
func OpenPackage(filePath string) (*Package, error) {
	reader, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, fmt.Errorf("打开DOCX文件失败: %w", err)
	}
	defer reader.Close()

	pkg := &Package{
		filePath: filePath,
		index:    make(map[string]*zipEntry, len(reader.File)),
	}

	// 遍历ZIP文件中的所有文件
	for _, file := range reader.File {
		fileReader, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("打开文件 %s 失败: %w", file.Name, err)
		}

		content, err := io.ReadAll(fileReader)
		fileReader.Close()
		if err != nil {
			return nil, fmt.Errorf("读取文件 %s 失败: %w", file.Name, err)
		}

		entry := &zipEntry{header: file.FileHeader, data: content}
		pkg.entries = append(pkg.entries, entry)
		pkg.index[file.Name] = entry
	}

	if _, ok := pkg.index[MainDocumentPart]; !ok {
		return nil, fmt.Errorf("未找到%s文件", MainDocumentPart)
	}

	return pkg, nil
}

// FilePath 返回包的来源路径
func (p *Package) FilePath() string {
	return p.filePath
}

// Part 返回部件内容
func (p *Package) Part(name string) ([]byte, bool) {
	entry, ok := p.index[name]
	if !ok {
		return nil, false
	}
	return entry.data, true
}

// HasPart 检查部件是否存在
func (p *Package) HasPart(name string) bool {
	_, ok := p.index[name]
	return ok
}

// SetPart 替换部件内容，不存在时追加新部件
func (p *Package) SetPart(name string, data []byte) {
	if entry, ok := p.index[name]; ok {
		entry.data = data
		return
	}

	entry := &zipEntry{
		header: zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: time.Now(),
		},
		data: data,
	}
	p.entries = append(p.entries, entry)
	p.index[name] = entry
}

// PartNames 按包内顺序返回部件名
func (p *Package) PartNames() []string {
	names := make([]string, 0, len(p.entries))
	for _, e := range p.entries {
		names = append(names, e.header.Name)
	}
	return names
}

// WriteTo 将包写入 w，部件顺序与原始文件一致
func (p *Package) WriteTo(w io.Writer) (int64, error) {
	counter := &countingWriter{w: w}
	zipWriter := zip.NewWriter(counter)

	for _, entry := range p.entries {
		header := entry.header
		writer, err := zipWriter.CreateHeader(&header)
		if err != nil {
			return counter.n, fmt.Errorf("创建ZIP文件头失败: %w", err)
		}

		if _, err := writer.Write(entry.data); err != nil {
			return counter.n, fmt.Errorf("写入文件内容失败: %w", err)
		}
	}

	if err := zipWriter.Close(); err != nil {
		return counter.n, fmt.Errorf("关闭ZIP写入器失败: %w", err)
	}
	return counter.n, nil
}

// Bytes 渲染整个包
func (p *Package) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := p.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}
