package docx

import "github.com/beevik/etree"

// collectParagraphs 按文档顺序收集容器（正文、页眉页脚、表格单元格）中的段落。
// 表格逐行、逐单元格展开，单元格内再按段落展开；嵌套表格同样处理。
func collectParagraphs(container *etree.Element, part *xmlPart, out []Paragraph) []Paragraph {
	for _, child := range container.ChildElements() {
		switch {
		case isWordElement(child, "p"):
			out = append(out, Paragraph{el: child, part: part})
		case isWordElement(child, "tbl"):
			out = collectTableParagraphs(child, part, out)
		}
	}
	return out
}

func collectTableParagraphs(tbl *etree.Element, part *xmlPart, out []Paragraph) []Paragraph {
	for _, row := range tbl.ChildElements() {
		if !isWordElement(row, "tr") {
			continue
		}
		for _, cell := range row.ChildElements() {
			if !isWordElement(cell, "tc") {
				continue
			}
			out = collectParagraphs(cell, part, out)
		}
	}
	return out
}

// TableCount 返回正文中顶层表格数量
func (d *Document) TableCount() int {
	body := wordChild(d.parts[0].doc.Root(), "body")
	if body == nil {
		return 0
	}
	count := 0
	for _, child := range body.ChildElements() {
		if isWordElement(child, "tbl") {
			count++
		}
	}
	return count
}
