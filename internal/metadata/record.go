package metadata

import (
	"fmt"
	"strings"
)

// Record 四个描述性字段，与底层格式无关。空字符串表示未设置。
type Record struct {
	Title       string `json:"title" yaml:"title"`
	Creator     string `json:"creator" yaml:"creator"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`
}

// Field 字段的键与显示标签
type Field struct {
	Key   string
	Label string
	value func(*Record) *string
}

// Fields 固定顺序的四个字段
var Fields = []Field{
	{Key: "title", Label: "DC:TITLE", value: func(r *Record) *string { return &r.Title }},
	{Key: "creator", Label: "DC:CREATOR", value: func(r *Record) *string { return &r.Creator }},
	{Key: "description", Label: "CP:DESCRIPTION", value: func(r *Record) *string { return &r.Description }},
	{Key: "category", Label: "CP:CATEGORY", value: func(r *Record) *string { return &r.Category }},
}

// Get 按键读取字段
func (r Record) Get(key string) (string, bool) {
	for _, f := range Fields {
		if f.Key == key {
			return *f.value(&r), true
		}
	}
	return "", false
}

// Set 按键设置字段，键不区分大小写
func (r *Record) Set(key, value string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, f := range Fields {
		if f.Key == key {
			*f.value(r) = value
			return nil
		}
	}
	return fmt.Errorf("未知的元数据字段: %s", key)
}

// IsEmpty 四个字段是否全为空
func (r Record) IsEmpty() bool {
	return r == Record{}
}

// Lines 按 "标签: 值" 的形式输出四行
func (r Record) Lines() []string {
	lines := make([]string, 0, len(Fields))
	for _, f := range Fields {
		lines = append(lines, fmt.Sprintf("%s: %s", f.Label, *f.value(&r)))
	}
	return lines
}
