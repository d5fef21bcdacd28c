package pdfinfo

import (
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"golang.org/x/text/encoding/unicode"
)

var utf16BE = unicode.UTF16(unicode.BigEndian, unicode.UseBOM)

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`(`, `\(`,
	`)`, `\)`,
	"\r", `\r`,
	"\n", `\n`,
	"\t", `\t`,
)

// EncodeText 把UTF-8文本编码为PDF文本字符串：可打印ASCII用字面字符串，
// 其余用带BOM的UTF-16BE十六进制字符串。
func EncodeText(s string) (types.Object, error) {
	if isPlainASCII(s) {
		return types.StringLiteral(literalEscaper.Replace(s)), nil
	}

	encoded, err := utf16BE.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, err
	}
	return types.NewHexLiteral(encoded), nil
}

func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x7f || (c < 0x20 && c != '\t' && c != '\n' && c != '\r') {
			return false
		}
	}
	return true
}
