package matcher

import (
	"regexp"
	"sort"
	"strings"

	"github.com/allanpk716/docform/internal/domain"
)

// PlaceholderPattern 模板作者使用的占位符语法: {{ 名称 }}，名称仅含字母、数字、下划线
var PlaceholderPattern = regexp.MustCompile(`\{\{([A-Za-z0-9_]+)\}\}`)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// placeholderMatcher 占位符匹配器实现
type placeholderMatcher struct{}

// NewPlaceholderMatcher 创建新的占位符匹配器
func NewPlaceholderMatcher() domain.PlaceholderMatcher {
	return &placeholderMatcher{}
}

// FindNames 按出现顺序返回内容中所有占位符名称（含重复）
func (pm *placeholderMatcher) FindNames(content string) []string {
	var names []string
	for _, m := range PlaceholderPattern.FindAllStringSubmatch(content, -1) {
		names = append(names, m[1])
	}
	return names
}

// FindMatches 在原始内容中查找每个键对应的字面占位符。
// 每个键单独做一次字面子串查找，位置都基于原始内容，因此替换值不会被再次扫描。
func (pm *placeholderMatcher) FindMatches(content string, replacements map[string]string) []domain.Match {
	var matches []domain.Match

	for name, replacement := range replacements {
		token := FormatPlaceholder(name)
		offset := 0
		for {
			idx := strings.Index(content[offset:], token)
			if idx < 0 {
				break
			}
			start := offset + idx
			matches = append(matches, domain.Match{
				Name:        name,
				Token:       token,
				Replacement: replacement,
				StartPos:    start,
				EndPos:      start + len(token),
			})
			offset = start + len(token)
		}
	}

	// 按位置排序，从后往前替换避免位置偏移
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].StartPos != matches[j].StartPos {
			return matches[i].StartPos > matches[j].StartPos
		}
		return matches[i].EndPos > matches[j].EndPos
	})

	// 丢弃互相重叠的匹配，保留靠后的一个
	kept := matches[:0]
	lastStart := len(content) + 1
	for _, m := range matches {
		if m.EndPos > lastStart {
			continue
		}
		kept = append(kept, m)
		lastStart = m.StartPos
	}

	return kept
}

// ReplaceMatches 根据匹配结果替换内容，matches 需按 FindMatches 的顺序（从后往前）
func (pm *placeholderMatcher) ReplaceMatches(content string, matches []domain.Match) string {
	result := content

	for _, match := range matches {
		if match.StartPos >= 0 && match.EndPos <= len(result) && match.StartPos <= match.EndPos {
			result = result[:match.StartPos] + match.Replacement + result[match.EndPos:]
		}
	}

	return result
}

// Replace 直接替换占位符的便捷方法
func Replace(m domain.PlaceholderMatcher, content string, replacements map[string]string) string {
	if len(replacements) == 0 {
		return content
	}
	return m.ReplaceMatches(content, m.FindMatches(content, replacements))
}

// UniqueSorted 去重并按字典序排序
func UniqueSorted(names []string) []string {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	result := make([]string, 0, len(set))
	for n := range set {
		result = append(result, n)
	}
	sort.Strings(result)
	return result
}

// ValidatePlaceholderName 验证占位符名称是否合法
func ValidatePlaceholderName(name string) bool {
	return namePattern.MatchString(name)
}

// ExtractPlaceholderName 从 {{key}} 格式中提取名称，非占位符格式原样返回
func ExtractPlaceholderName(token string) string {
	if m := PlaceholderPattern.FindStringSubmatch(token); m != nil && m[0] == token {
		return m[1]
	}
	return token
}

// FormatPlaceholder 将名称格式化为 {{key}} 格式
func FormatPlaceholder(name string) string {
	return "{{" + name + "}}"
}
