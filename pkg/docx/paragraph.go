package docx

import (
	"strings"

	"github.com/beevik/etree"
)

// WordprocessingML 命名空间（过渡版与严格版）
const (
	nsWordML       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsWordMLStrict = "http://purl.oclc.org/ooxml/wordprocessingml/main"
)

// isWordElement 按本地名和命名空间判断 w:* 元素，命名空间缺失时退回到前缀判断
func isWordElement(el *etree.Element, local string) bool {
	if el == nil || el.Tag != local {
		return false
	}
	switch el.NamespaceURI() {
	case nsWordML, nsWordMLStrict:
		return true
	case "":
		return el.Space == "w"
	default:
		return false
	}
}

// wordChild 返回第一个指定本地名的 w:* 子元素
func wordChild(el *etree.Element, local string) *etree.Element {
	for _, child := range el.ChildElements() {
		if isWordElement(child, local) {
			return child
		}
	}
	return nil
}

// qualify 使用参照元素的前缀构造标签名
func qualify(ref *etree.Element, local string) string {
	if ref.Space == "" {
		return local
	}
	return ref.Space + ":" + local
}

// runContainers 段落内承载 run 的行内包装元素。w:del 中是已删除的修订文本，不计入。
var runContainers = []string{"hyperlink", "ins", "smartTag", "customXml", "fldSimple"}

func isRunContainer(el *etree.Element) bool {
	for _, local := range runContainers {
		if isWordElement(el, local) {
			return true
		}
	}
	return false
}

// Paragraph 包装一个 w:p 元素。段落可见文本是其 run 文本按文档顺序拼接的结果，
// 包括超链接、插入修订等行内包装元素中的 run。
type Paragraph struct {
	el   *etree.Element
	part *xmlPart
}

// Location 返回段落所在部件
func (p Paragraph) Location() string {
	return p.part.name
}

// Runs 按文档顺序返回段落中的 w:r 元素
func (p Paragraph) Runs() []*etree.Element {
	return collectRuns(p.el, nil)
}

func collectRuns(el *etree.Element, runs []*etree.Element) []*etree.Element {
	for _, child := range el.ChildElements() {
		switch {
		case isWordElement(child, "r"):
			runs = append(runs, child)
		case isRunContainer(child):
			runs = collectRuns(child, runs)
		}
	}
	return runs
}

// Text 返回段落可见文本
func (p Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs() {
		b.WriteString(runText(r))
	}
	return b.String()
}

// runText w:t 取文本，w:tab 记为制表符，w:br/w:cr 记为换行
func runText(run *etree.Element) string {
	var b strings.Builder
	for _, child := range run.ChildElements() {
		switch {
		case isWordElement(child, "t"):
			b.WriteString(child.Text())
		case isWordElement(child, "tab"):
			b.WriteString("\t")
		case isWordElement(child, "br"), isWordElement(child, "cr"):
			b.WriteString("\n")
		}
	}
	return b.String()
}

// SetText 丢弃段落原有的全部 run，用单个 run 承载新文本。
// 新 run 放在原第一个 run 的位置（可能位于超链接等包装元素内），并沿用其 w:rPr；
// 跨 run 的行内格式会因此合并为一种。run 移走后变空的包装元素一并删除。
func (p Paragraph) SetText(text string) {
	runs := p.Runs()

	parent := p.el
	insertAt := len(p.el.Child)
	var props *etree.Element
	if len(runs) > 0 {
		parent = runs[0].Parent()
		insertAt = runs[0].Index()
		if rPr := wordChild(runs[0], "rPr"); rPr != nil {
			props = rPr.Copy()
		}
	}

	for _, r := range runs {
		owner := r.Parent()
		owner.RemoveChild(r)
		p.pruneEmptyContainer(owner, parent)
	}

	run := etree.NewElement(qualify(p.el, "r"))
	if props != nil {
		run.AddChild(props)
	}
	appendRunText(run, p.el, text)

	parent.InsertChildAt(insertAt, run)
	p.part.dirty = true
}

// pruneEmptyContainer 自内向外删除没有子元素的包装元素，keep 为新 run 的插入位置
func (p Paragraph) pruneEmptyContainer(el, keep *etree.Element) {
	for el != nil && el != p.el && el != keep && len(el.ChildElements()) == 0 {
		owner := el.Parent()
		owner.RemoveChild(el)
		el = owner
	}
}

// appendRunText 按制表符与换行拆分文本，依次写入 w:t、w:tab、w:br
func appendRunText(run, ref *etree.Element, text string) {
	var pending strings.Builder
	flush := func() {
		if pending.Len() == 0 {
			return
		}
		t := run.CreateElement(qualify(ref, "t"))
		t.CreateAttr("xml:space", "preserve")
		t.SetText(pending.String())
		pending.Reset()
	}

	for _, ch := range text {
		switch ch {
		case '\t':
			flush()
			run.CreateElement(qualify(ref, "tab"))
		case '\n':
			flush()
			run.CreateElement(qualify(ref, "br"))
		case '\r':
		default:
			pending.WriteRune(ch)
		}
	}
	flush()
}
