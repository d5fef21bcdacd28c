package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/allanpk716/docform/internal/matcher"
)

// Value 表示一个占位符取值
type Value struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Values 表示完整的取值文件结构
type Values struct {
	ProjectName string  `json:"project_name" yaml:"project_name"`
	Values      []Value `json:"values" yaml:"values"`
}

// LoadValues 从 JSON 或 YAML 文件加载取值。
// 除 {"project_name": ..., "values": [...]} 结构外，也接受扁平的 {"NAME": "Ana"} 映射。
func LoadValues(filePath string) (*Values, error) {
	if filePath == "" {
		return nil, fmt.Errorf("取值文件路径不能为空")
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("取值文件不存在: %s", filePath)
		}
		return nil, fmt.Errorf("读取取值文件失败: %w", err)
	}

	var values *Values
	switch ext := strings.ToLower(filepath.Ext(filePath)); ext {
	case ".json":
		values, err = parseJSONValues(data)
	case ".yaml", ".yml":
		values, err = parseYAMLValues(data)
	default:
		return nil, fmt.Errorf("取值文件必须是 JSON 或 YAML 格式，当前文件: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("解析取值文件失败: %w", err)
	}

	if err := ValidateValues(values); err != nil {
		return nil, fmt.Errorf("取值验证失败: %w", err)
	}
	return values, nil
}

func parseJSONValues(data []byte) (*Values, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	if _, structured := probe["values"]; structured {
		var values Values
		if err := json.Unmarshal(data, &values); err != nil {
			return nil, err
		}
		return &values, nil
	}

	var flat map[string]string
	if err := json.Unmarshal(data, &flat); err != nil {
		return nil, fmt.Errorf("扁平映射的值必须是字符串: %w", err)
	}
	return FromMap(flat), nil
}

func parseYAMLValues(data []byte) (*Values, error) {
	var probe map[string]yaml.Node
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	if _, structured := probe["values"]; structured {
		var values Values
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, err
		}
		return &values, nil
	}

	var flat map[string]string
	if err := yaml.Unmarshal(data, &flat); err != nil {
		return nil, fmt.Errorf("扁平映射的值必须是字符串: %w", err)
	}
	return FromMap(flat), nil
}

// FromMap 由映射构造取值，键按字母排序
func FromMap(m map[string]string) *Values {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := &Values{}
	for _, k := range keys {
		values.Values = append(values.Values, Value{Key: k, Value: m[k]})
	}
	return values
}

// ValidateValues 验证取值的有效性，空值是合法的
func ValidateValues(values *Values) error {
	if values == nil {
		return fmt.Errorf("取值不能为空")
	}

	keySet := make(map[string]bool)
	for i, v := range values.Values {
		if v.Key == "" {
			return fmt.Errorf("第 %d 个取值的 key 不能为空", i+1)
		}
		name := matcher.ExtractPlaceholderName(v.Key)
		if !matcher.ValidatePlaceholderName(name) {
			return fmt.Errorf("第 %d 个取值的 key 无效: %s", i+1, v.Key)
		}
		if keySet[name] {
			return fmt.Errorf("占位符重复: %s", name)
		}
		keySet[name] = true
	}
	return nil
}

// ToMap 转换为替换映射，key 为不带花括号的占位符名
func (v *Values) ToMap() map[string]string {
	if v == nil {
		return nil
	}
	m := make(map[string]string, len(v.Values))
	for _, item := range v.Values {
		m[matcher.ExtractPlaceholderName(item.Key)] = item.Value
	}
	return m
}

// EmptyKeys 返回值为空白的占位符名
func (v *Values) EmptyKeys() []string {
	var keys []string
	for name, value := range v.ToMap() {
		if strings.TrimSpace(value) == "" {
			keys = append(keys, name)
		}
	}
	sort.Strings(keys)
	return keys
}
