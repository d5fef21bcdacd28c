package docx

import (
	"fmt"

	"github.com/beevik/etree"
)

const (
	nsCoreProps = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsDC        = "http://purl.org/dc/elements/1.1/"
	nsDCTerms   = "http://purl.org/dc/terms/"

	// CreatorPropertyName 自定义属性中的创建者，dc:creator 缺失时作为后备
	CreatorPropertyName = "Creator"
)

// CoreProperties docProps/core.xml 中的描述性字段，缺失的字段为空字符串
type CoreProperties struct {
	Title       string
	Creator     string
	Description string
	Category    string
}

// coreField 字段与XML元素的对应关系
type coreField struct {
	ns, prefix, local string
	get               func(*CoreProperties) *string
}

var coreFields = []coreField{
	{nsDC, "dc", "title", func(c *CoreProperties) *string { return &c.Title }},
	{nsDC, "dc", "creator", func(c *CoreProperties) *string { return &c.Creator }},
	{nsDC, "dc", "description", func(c *CoreProperties) *string { return &c.Description }},
	{nsCoreProps, "cp", "category", func(c *CoreProperties) *string { return &c.Category }},
}

func newCorePropsRoot() *etree.Element {
	root := etree.NewElement("cp:coreProperties")
	root.CreateAttr("xmlns:cp", nsCoreProps)
	root.CreateAttr("xmlns:dc", nsDC)
	root.CreateAttr("xmlns:dcterms", nsDCTerms)
	return root
}

// CoreProperties 读取核心属性，文本原样返回。dc:creator 缺失或为空时退回到自定义属性 Creator。
func (p *Package) CoreProperties() (CoreProperties, error) {
	var props CoreProperties

	corePart := p.packagePartFor(relTypeCoreProps, CorePropsPart)
	if p.HasPart(corePart) {
		doc, err := p.loadPart(corePart, newCorePropsRoot)
		if err != nil {
			return props, err
		}
		root := doc.Root()
		for _, f := range coreFields {
			if el := childNS(root, f.ns, f.local); el != nil {
				*f.get(&props) = el.Text()
			}
		}
	}

	if props.Creator == "" {
		custom, err := p.CustomProperties()
		if err != nil {
			return props, err
		}
		if v, ok := custom.GetValue(CreatorPropertyName); ok {
			props.Creator = v
		}
	}

	return props, nil
}

// SetCoreProperties 把核心属性改写为给定值，空字符串删除对应元素。
// core.xml 不存在时连同内容类型和包关系一起创建；自定义属性 Creator 同步更新，
// 避免清空后的创建者从后备属性中重新出现。
func (p *Package) SetCoreProperties(props CoreProperties) error {
	corePart := p.packagePartFor(relTypeCoreProps, CorePropsPart)
	created := !p.HasPart(corePart)

	doc, err := p.loadPart(corePart, newCorePropsRoot)
	if err != nil {
		return err
	}
	root := doc.Root()

	for _, f := range coreFields {
		value := *f.get(&props)
		existing := childNS(root, f.ns, f.local)
		if value == "" {
			for existing != nil {
				root.RemoveChild(existing)
				existing = childNS(root, f.ns, f.local)
			}
			continue
		}
		if existing == nil {
			prefix := namespacePrefix(root, f.ns, f.prefix)
			tag := f.local
			if prefix != "" {
				tag = prefix + ":" + f.local
			}
			existing = root.CreateElement(tag)
		}
		existing.SetText(value)
	}

	if err := p.storePart(corePart, doc); err != nil {
		return err
	}

	if created {
		if err := p.ensureContentTypeOverride(corePart, contentTypeCoreProps); err != nil {
			return fmt.Errorf("登记核心属性内容类型失败: %w", err)
		}
		if err := p.ensurePackageRelationship(relTypeCoreProps, corePart); err != nil {
			return fmt.Errorf("登记核心属性关系失败: %w", err)
		}
	}

	return p.syncCustomCreator(props.Creator)
}

// syncCustomCreator 仅在自定义属性部件已存在时改写其中的 Creator
func (p *Package) syncCustomCreator(creator string) error {
	customPart := p.packagePartFor(relTypeCustomProps, CustomPropsPart)
	if !p.HasPart(customPart) {
		return nil
	}

	custom, err := p.CustomProperties()
	if err != nil {
		return err
	}
	if _, ok := custom.GetValue(CreatorPropertyName); !ok {
		return nil
	}

	if creator == "" {
		custom.Remove(CreatorPropertyName)
	} else {
		custom.SetValue(CreatorPropertyName, creator)
	}
	return p.SetCustomProperties(custom)
}
