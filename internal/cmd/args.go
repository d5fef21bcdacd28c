package cmd

import (
	"fmt"
	"strings"

	"github.com/allanpk716/docform/internal/config"
	"github.com/allanpk716/docform/internal/matcher"
)

// parseAssignments 解析 --set KEY=VALUE 参数，值可以为空
func parseAssignments(assignments []string) (map[string]string, error) {
	values := make(map[string]string, len(assignments))
	for _, a := range assignments {
		key, value, ok := strings.Cut(a, "=")
		if !ok {
			return nil, fmt.Errorf("参数格式应为 KEY=VALUE: %s", a)
		}
		name := matcher.ExtractPlaceholderName(strings.TrimSpace(key))
		if !matcher.ValidatePlaceholderName(name) {
			return nil, fmt.Errorf("无效的占位符名称: %s", key)
		}
		values[name] = value
	}
	return values, nil
}

// loadFillValues 合并取值文件与 --set 参数，后者优先
func loadFillValues(valuesFile string, assignments []string) (map[string]string, error) {
	values := make(map[string]string)
	if valuesFile != "" {
		loaded, err := config.LoadValues(valuesFile)
		if err != nil {
			return nil, err
		}
		for k, v := range loaded.ToMap() {
			values[k] = v
		}
	}

	set, err := parseAssignments(assignments)
	if err != nil {
		return nil, err
	}
	for k, v := range set {
		values[k] = v
	}
	return values, nil
}
