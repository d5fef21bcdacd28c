// Package testutil 构造测试用的DOCX与PDF文件
package testutil

import (
	"archive/zip"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`

// Section 一个节引用的页眉、页脚（HeaderParts/FooterParts 的下标）
type Section struct {
	Headers []int
	Footers []int
}

// DocxFixture 测试文档的内容
type DocxFixture struct {
	// Body w:body 内部的段落与表格XML，不含 sectPr
	Body string
	// HeaderParts/FooterParts 每个部件 w:hdr / w:ftr 内部的XML
	HeaderParts []string
	FooterParts []string
	// Sections 为空时只有一个节，引用全部页眉页脚
	Sections []Section
	// CoreXML/CustomXML 完整的属性部件，为空时不写入
	CoreXML   string
	CustomXML string
}

// Run 普通文本 run
func Run(text string) string {
	return `<w:r><w:t xml:space="preserve">` + html.EscapeString(text) + `</w:t></w:r>`
}

// BoldRun 加粗文本 run
func BoldRun(text string) string {
	return `<w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">` + html.EscapeString(text) + `</w:t></w:r>`
}

// Para 由若干 run 组成的段落
func Para(runs ...string) string {
	return "<w:p>" + strings.Join(runs, "") + "</w:p>"
}

// TextPara 单个 run 的段落
func TextPara(text string) string {
	return Para(Run(text))
}

// Cell 表格单元格
func Cell(paragraphs ...string) string {
	return "<w:tc><w:tcPr><w:tcW w:w=\"2000\" w:type=\"dxa\"/></w:tcPr>" + strings.Join(paragraphs, "") + "</w:tc>"
}

// Table 按行构造表格
func Table(rows ...[]string) string {
	var b strings.Builder
	b.WriteString("<w:tbl><w:tblPr/>")
	for _, row := range rows {
		b.WriteString("<w:tr>")
		for _, cell := range row {
			b.WriteString(cell)
		}
		b.WriteString("</w:tr>")
	}
	b.WriteString("</w:tbl>")
	return b.String()
}

// CoreXML 构造 docProps/core.xml，空字段不写入
func CoreXML(title, creator, description, category string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	for _, f := range []struct{ tag, value string }{
		{"dc:title", title},
		{"dc:creator", creator},
		{"dc:description", description},
		{"cp:category", category},
	} {
		if f.value != "" {
			fmt.Fprintf(&b, "<%s>%s</%s>", f.tag, html.EscapeString(f.value), f.tag)
		}
	}
	b.WriteString(`<dcterms:created xsi:type="dcterms:W3CDTF">2024-01-01T00:00:00Z</dcterms:created>`)
	b.WriteString(`</cp:coreProperties>`)
	return b.String()
}

// CustomXML 构造只含字符串属性的 docProps/custom.xml
func CustomXML(props map[string]string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/custom-properties" xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes">`)
	pid := 2
	for _, name := range sortedKeys(props) {
		fmt.Fprintf(&b, `<property fmtid="{D5CDD505-2E9C-101B-9397-08002B2CF9AE}" pid="%d" name="%s"><vt:lpwstr>%s</vt:lpwstr></property>`,
			pid, html.EscapeString(name), html.EscapeString(props[name]))
		pid++
	}
	b.WriteString(`</Properties>`)
	return b.String()
}

// WriteDocx 在 dir 下写出测试文档并返回路径
func WriteDocx(t testing.TB, dir, name string, f DocxFixture) string {
	t.Helper()

	parts := f.parts()
	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("创建测试文档失败: %v", err)
	}
	defer file.Close()

	zipWriter := zip.NewWriter(file)
	for _, p := range parts {
		writer, err := zipWriter.Create(p.name)
		if err != nil {
			t.Fatalf("创建部件 %s 失败: %v", p.name, err)
		}
		if _, err := io.WriteString(writer, p.content); err != nil {
			t.Fatalf("写入部件 %s 失败: %v", p.name, err)
		}
	}
	if err := zipWriter.Close(); err != nil {
		t.Fatalf("关闭ZIP写入器失败: %v", err)
	}
	return path
}

// ReadPart 读取DOCX中的一个部件，不存在时返回空字符串
func ReadPart(t testing.TB, path, name string) string {
	t.Helper()

	reader, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("打开DOCX失败: %v", err)
	}
	defer reader.Close()

	for _, f := range reader.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("打开部件 %s 失败: %v", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("读取部件 %s 失败: %v", name, err)
		}
		return string(data)
	}
	return ""
}

type fixturePart struct {
	name    string
	content string
}

func (f DocxFixture) parts() []fixturePart {
	var overrides, rels, pkgRels strings.Builder

	overrides.WriteString(`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>`)
	pkgRels.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>`)

	var parts []fixturePart
	headerIDs := make([]string, len(f.HeaderParts))
	for i, content := range f.HeaderParts {
		name := fmt.Sprintf("header%d.xml", i+1)
		headerIDs[i] = fmt.Sprintf("rIdH%d", i+1)
		fmt.Fprintf(&overrides, `<Override PartName="/word/%s" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml"/>`, name)
		fmt.Fprintf(&rels, `<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/header" Target="%s"/>`, headerIDs[i], name)
		parts = append(parts, fixturePart{"word/" + name, xmlHeader + "<w:hdr " + wordNS + ">" + content + "</w:hdr>"})
	}
	footerIDs := make([]string, len(f.FooterParts))
	for i, content := range f.FooterParts {
		name := fmt.Sprintf("footer%d.xml", i+1)
		footerIDs[i] = fmt.Sprintf("rIdF%d", i+1)
		fmt.Fprintf(&overrides, `<Override PartName="/word/%s" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"/>`, name)
		fmt.Fprintf(&rels, `<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer" Target="%s"/>`, footerIDs[i], name)
		parts = append(parts, fixturePart{"word/" + name, xmlHeader + "<w:ftr " + wordNS + ">" + content + "</w:ftr>"})
	}

	sections := f.Sections
	if len(sections) == 0 {
		var all Section
		for i := range f.HeaderParts {
			all.Headers = append(all.Headers, i)
		}
		for i := range f.FooterParts {
			all.Footers = append(all.Footers, i)
		}
		sections = []Section{all}
	}

	var body strings.Builder
	body.WriteString(f.Body)
	for i, s := range sections {
		sectPr := sectPrXML(s, headerIDs, footerIDs)
		if i < len(sections)-1 {
			body.WriteString("<w:p><w:pPr>" + sectPr + "</w:pPr></w:p>")
		} else {
			body.WriteString(sectPr)
		}
	}

	if f.CoreXML != "" {
		overrides.WriteString(`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>`)
		pkgRels.WriteString(`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>`)
		parts = append(parts, fixturePart{"docProps/core.xml", f.CoreXML})
	}
	if f.CustomXML != "" {
		overrides.WriteString(`<Override PartName="/docProps/custom.xml" ContentType="application/vnd.openxmlformats-officedocument.custom-properties+xml"/>`)
		pkgRels.WriteString(`<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/custom-properties" Target="docProps/custom.xml"/>`)
		parts = append(parts, fixturePart{"docProps/custom.xml", f.CustomXML})
	}

	head := []fixturePart{
		{"[Content_Types].xml", xmlHeader + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
			`<Default Extension="xml" ContentType="application/xml"/>` + overrides.String() + `</Types>`},
		{"_rels/.rels", xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` + pkgRels.String() + `</Relationships>`},
		{"word/document.xml", xmlHeader + "<w:document " + wordNS + "><w:body>" + body.String() + "</w:body></w:document>"},
		{"word/_rels/document.xml.rels", xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` + rels.String() + `</Relationships>`},
	}
	return append(head, parts...)
}

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`

var referenceTypes = []string{"default", "first", "even"}

func sectPrXML(s Section, headerIDs, footerIDs []string) string {
	var b strings.Builder
	b.WriteString("<w:sectPr>")
	for i, idx := range s.Headers {
		fmt.Fprintf(&b, `<w:headerReference w:type="%s" r:id="%s"/>`, referenceTypes[i%len(referenceTypes)], headerIDs[idx])
	}
	for i, idx := range s.Footers {
		fmt.Fprintf(&b, `<w:footerReference w:type="%s" r:id="%s"/>`, referenceTypes[i%len(referenceTypes)], footerIDs[idx])
	}
	b.WriteString(`<w:pgSz w:w="11906" w:h="16838"/></w:sectPr>`)
	return b.String()
}
