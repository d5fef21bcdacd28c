package docx

import (
	"fmt"
	"path"
	"strings"

	"github.com/beevik/etree"
)

const (
	relTypeHeader   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/header"
	relTypeFooter   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer"
	nsRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

type partRef struct {
	name string
	kind PartKind
}

// relationship 关系部件中的一条关系
type relationship struct {
	ID     string
	Type   string
	Target string
}

// readRelationships 解析关系部件，部件不存在时返回空映射
func readRelationships(pkg *Package, relsPart string) (map[string]relationship, error) {
	rels := make(map[string]relationship)
	data, ok := pkg.Part(relsPart)
	if !ok {
		return rels, nil
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("解析%s失败: %w", relsPart, err)
	}
	if doc.Root() == nil {
		return rels, nil
	}

	for _, el := range doc.Root().ChildElements() {
		if el.Tag != "Relationship" {
			continue
		}
		rel := relationship{
			ID:     el.SelectAttrValue("Id", ""),
			Type:   el.SelectAttrValue("Type", ""),
			Target: el.SelectAttrValue("Target", ""),
		}
		if el.SelectAttrValue("TargetMode", "") == "External" {
			continue
		}
		rels[rel.ID] = rel
	}
	return rels, nil
}

// resolveTarget 把关系目标解析为包内路径
func resolveTarget(sourceDir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join(sourceDir, target))
}

// sectionPartRefs 按节的顺序找出每一节引用的页眉、页脚部件。
// 每节先页眉后页脚；多个节共用的部件只保留第一次出现。
func sectionPartRefs(pkg *Package, body *etree.Document) ([]partRef, error) {
	rels, err := readRelationships(pkg, DocumentRelsPart)
	if err != nil {
		return nil, err
	}

	var sections []*etree.Element
	collectSectPr(body.Root(), &sections)

	seen := make(map[string]bool)
	var refs []partRef

	for _, sectPr := range sections {
		for _, want := range []struct {
			local, relType string
			kind           PartKind
		}{
			{"headerReference", relTypeHeader, PartHeader},
			{"footerReference", relTypeFooter, PartFooter},
		} {
			for _, ref := range sectPr.ChildElements() {
				if !isWordElement(ref, want.local) {
					continue
				}
				rel, ok := rels[relationshipID(ref)]
				if !ok || rel.Type != want.relType {
					continue
				}
				name := resolveTarget("word", rel.Target)
				if seen[name] || !pkg.HasPart(name) {
					continue
				}
				seen[name] = true
				refs = append(refs, partRef{name: name, kind: want.kind})
			}
		}
	}

	return refs, nil
}

// collectSectPr 按文档顺序收集所有 w:sectPr（段落属性中的分节符以及正文末尾的节）
func collectSectPr(el *etree.Element, out *[]*etree.Element) {
	for _, child := range el.ChildElements() {
		if isWordElement(child, "sectPr") {
			*out = append(*out, child)
			continue
		}
		if isWordElement(child, "tbl") {
			continue
		}
		collectSectPr(child, out)
	}
}

// relationshipID 读取 r:id 属性，前缀不是 r 时按命名空间匹配
func relationshipID(el *etree.Element) string {
	for _, attr := range el.Attr {
		if attr.Key != "id" {
			continue
		}
		if attr.Space == "r" || attr.NamespaceURI() == nsRelationships {
			return attr.Value
		}
	}
	return ""
}
