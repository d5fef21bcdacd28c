package docx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

const (
	nsCustomProps = "http://schemas.openxmlformats.org/officeDocument/2006/custom-properties"
	nsVTypes      = "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes"

	// customPropertyFmtID 用户自定义属性固定使用的 FMTID
	customPropertyFmtID = "{D5CDD505-2E9C-101B-9397-08002B2CF9AE}"
)

// CustomPropertyManager 管理 docProps/custom.xml 中的自定义文档属性
type CustomPropertyManager struct {
	doc *etree.Document
}

// ParseCustomProperties 解析自定义属性XML，内容为空时创建空的属性集
func ParseCustomProperties(data []byte) (*CustomPropertyManager, error) {
	doc := etree.NewDocument()
	if len(strings.TrimSpace(string(data))) == 0 {
		doc.CreateProcInst("xml", xmlDeclaration)
		doc.SetRoot(newCustomPropsRoot())
		return &CustomPropertyManager{doc: doc}, nil
	}

	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("解析自定义属性XML失败: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("自定义属性XML没有根元素")
	}
	return &CustomPropertyManager{doc: doc}, nil
}

func newCustomPropsRoot() *etree.Element {
	root := etree.NewElement("Properties")
	root.CreateAttr("xmlns", nsCustomProps)
	root.CreateAttr("xmlns:vt", nsVTypes)
	return root
}

// properties 返回全部 property 元素
func (cpm *CustomPropertyManager) properties() []*etree.Element {
	var props []*etree.Element
	for _, el := range cpm.doc.Root().ChildElements() {
		if el.Tag == "property" {
			props = append(props, el)
		}
	}
	return props
}

func (cpm *CustomPropertyManager) find(name string) *etree.Element {
	for _, prop := range cpm.properties() {
		if prop.SelectAttrValue("name", "") == name {
			return prop
		}
	}
	return nil
}

// Names 按文档顺序返回属性名
func (cpm *CustomPropertyManager) Names() []string {
	var names []string
	for _, prop := range cpm.properties() {
		names = append(names, prop.SelectAttrValue("name", ""))
	}
	return names
}

// GetValue 获取属性的文本值（vt:* 子元素的文本）
func (cpm *CustomPropertyManager) GetValue(name string) (string, bool) {
	prop := cpm.find(name)
	if prop == nil {
		return "", false
	}
	if children := prop.ChildElements(); len(children) > 0 {
		return children[0].Text(), true
	}
	return "", true
}

// SetValue 设置字符串属性，不存在时以下一个可用 PID 新增
func (cpm *CustomPropertyManager) SetValue(name, value string) {
	root := cpm.doc.Root()
	prop := cpm.find(name)
	if prop == nil {
		prop = root.CreateElement(qualify(root, "property"))
		prop.CreateAttr("fmtid", customPropertyFmtID)
		prop.CreateAttr("pid", strconv.Itoa(cpm.getNextPID()))
		prop.CreateAttr("name", name)
	}

	for _, child := range prop.ChildElements() {
		prop.RemoveChild(child)
	}

	prefix := namespacePrefix(root, nsVTypes, "vt")
	tag := "lpwstr"
	if prefix != "" {
		tag = prefix + ":lpwstr"
	}
	prop.CreateElement(tag).SetText(value)
}

// Remove 删除属性，返回是否存在过
func (cpm *CustomPropertyManager) Remove(name string) bool {
	prop := cpm.find(name)
	if prop == nil {
		return false
	}
	cpm.doc.Root().RemoveChild(prop)
	return true
}

// getNextPID 获取下一个可用的PID，PID 0 和 1 保留
func (cpm *CustomPropertyManager) getNextPID() int {
	maxPID := 1
	for _, prop := range cpm.properties() {
		pid, err := strconv.Atoi(prop.SelectAttrValue("pid", ""))
		if err == nil && pid > maxPID {
			maxPID = pid
		}
	}
	return maxPID + 1
}

// Bytes 生成自定义属性XML
func (cpm *CustomPropertyManager) Bytes() ([]byte, error) {
	data, err := cpm.doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("生成自定义属性XML失败: %w", err)
	}
	return data, nil
}

// CustomProperties 读取包中的自定义属性，部件不存在时返回空属性集
func (p *Package) CustomProperties() (*CustomPropertyManager, error) {
	data, _ := p.Part(p.packagePartFor(relTypeCustomProps, CustomPropsPart))
	return ParseCustomProperties(data)
}

// SetCustomProperties 写回自定义属性，必要时登记内容类型与包关系
func (p *Package) SetCustomProperties(cpm *CustomPropertyManager) error {
	customPart := p.packagePartFor(relTypeCustomProps, CustomPropsPart)
	created := !p.HasPart(customPart)

	data, err := cpm.Bytes()
	if err != nil {
		return err
	}
	p.SetPart(customPart, data)

	if created {
		if err := p.ensureContentTypeOverride(customPart, contentTypeCustomProps); err != nil {
			return err
		}
		if err := p.ensurePackageRelationship(relTypeCustomProps, customPart); err != nil {
			return err
		}
	}
	return nil
}
