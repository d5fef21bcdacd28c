package docx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// 包级关系类型与内容类型
const (
	relTypeCoreProps   = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relTypeCustomProps = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/custom-properties"

	contentTypeCoreProps   = "application/vnd.openxmlformats-package.core-properties+xml"
	contentTypeCustomProps = "application/vnd.openxmlformats-officedocument.custom-properties+xml"

	nsContentTypes = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsPackageRels  = "http://schemas.openxmlformats.org/package/2006/relationships"
	xmlDeclaration = `version="1.0" encoding="UTF-8" standalone="yes"`
)

// loadPart 读取并解析一个XML部件，不存在时用 newRoot 创建空文档
func (p *Package) loadPart(name string, newRoot func() *etree.Element) (*etree.Document, error) {
	doc := etree.NewDocument()
	data, ok := p.Part(name)
	if !ok {
		doc.CreateProcInst("xml", xmlDeclaration)
		doc.SetRoot(newRoot())
		return doc, nil
	}
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("解析%s失败: %w", name, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("%s没有根元素", name)
	}
	return doc, nil
}

// storePart 序列化并写回XML部件
func (p *Package) storePart(name string, doc *etree.Document) error {
	data, err := doc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("生成%s失败: %w", name, err)
	}
	p.SetPart(name, data)
	return nil
}

// ensureContentTypeOverride 保证 [Content_Types].xml 中有该部件的 Override 项
func (p *Package) ensureContentTypeOverride(partName, contentType string) error {
	doc, err := p.loadPart(ContentTypesPart, func() *etree.Element {
		root := etree.NewElement("Types")
		root.CreateAttr("xmlns", nsContentTypes)
		return root
	})
	if err != nil {
		return err
	}

	want := "/" + strings.TrimPrefix(partName, "/")
	for _, el := range doc.Root().ChildElements() {
		if el.Tag == "Override" && strings.EqualFold(el.SelectAttrValue("PartName", ""), want) {
			return nil
		}
	}

	override := doc.Root().CreateElement(qualify(doc.Root(), "Override"))
	override.CreateAttr("PartName", want)
	override.CreateAttr("ContentType", contentType)
	return p.storePart(ContentTypesPart, doc)
}

// ensurePackageRelationship 保证 _rels/.rels 中存在指定类型的关系
func (p *Package) ensurePackageRelationship(relType, target string) error {
	doc, err := p.loadPart(PackageRelsPart, func() *etree.Element {
		root := etree.NewElement("Relationships")
		root.CreateAttr("xmlns", nsPackageRels)
		return root
	})
	if err != nil {
		return err
	}

	used := make(map[string]bool)
	for _, el := range doc.Root().ChildElements() {
		if el.Tag != "Relationship" {
			continue
		}
		if el.SelectAttrValue("Type", "") == relType {
			return nil
		}
		used[el.SelectAttrValue("Id", "")] = true
	}

	id := 1
	for used["rId"+strconv.Itoa(id)] {
		id++
	}

	rel := doc.Root().CreateElement(qualify(doc.Root(), "Relationship"))
	rel.CreateAttr("Id", "rId"+strconv.Itoa(id))
	rel.CreateAttr("Type", relType)
	rel.CreateAttr("Target", target)
	return p.storePart(PackageRelsPart, doc)
}

// packagePartFor 按关系类型查找包级部件，找不到时返回默认位置
func (p *Package) packagePartFor(relType, fallback string) string {
	rels, err := readRelationships(p, PackageRelsPart)
	if err != nil {
		return fallback
	}
	for _, rel := range rels {
		if rel.Type == relType {
			return resolveTarget("", rel.Target)
		}
	}
	return fallback
}

// namespacePrefix 返回根元素上绑定到 uri 的前缀；未声明时以 preferred 声明
func namespacePrefix(root *etree.Element, uri, preferred string) string {
	for _, attr := range root.Attr {
		if attr.Value != uri {
			continue
		}
		if attr.Space == "xmlns" {
			return attr.Key
		}
		if attr.Space == "" && attr.Key == "xmlns" {
			return ""
		}
	}
	root.CreateAttr("xmlns:"+preferred, uri)
	return preferred
}

// childNS 按命名空间和本地名查找第一个子元素
func childNS(el *etree.Element, uri, local string) *etree.Element {
	for _, child := range el.ChildElements() {
		if child.Tag == local && child.NamespaceURI() == uri {
			return child
		}
	}
	return nil
}
