package metadata

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/richardlehane/mscfb"
	"github.com/richardlehane/msoleps"

	docerr "github.com/allanpk716/docform/internal/errors"
)

// errReadOnly 旧版复合文档只支持读取
var errReadOnly = errors.New("旧版 .doc 文档仅支持读取元数据，请先另存为 .docx")

// oleAccessor 从 SummaryInformation 与 DocumentSummaryInformation 属性集中读取字段
type oleAccessor struct {
	options
}

func (a *oleAccessor) Format() Format {
	return FormatDOC
}

func (a *oleAccessor) Read(path string) (Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return Record{}, docerr.MetadataRead("read", path, err)
	}
	defer file.Close()

	doc, err := mscfb.New(file)
	if err != nil {
		return Record{}, docerr.MetadataRead("read", path, fmt.Errorf("不是复合文档: %w", err))
	}

	var rec Record
	props := msoleps.New()
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		if !msoleps.IsMSOLEPS(entry.Initial) {
			continue
		}
		if perr := props.Reset(entry); perr != nil {
			a.logger.Debug("跳过无法解析的属性集", "stream", entry.Name, "error", perr)
			continue
		}
		applyOLEProperties(&rec, props.Property)
	}
	return rec, nil
}

// applyOLEProperties 把属性集中的字段映射到记录，已有值不被覆盖
func applyOLEProperties(rec *Record, properties []*msoleps.Property) {
	for _, prop := range properties {
		if prop == nil || prop.T == nil {
			continue
		}
		var target *string
		switch prop.Name {
		case "Title":
			target = &rec.Title
		case "Author":
			target = &rec.Creator
		case "Comments":
			target = &rec.Description
		case "Category":
			target = &rec.Category
		default:
			continue
		}
		if *target == "" {
			*target = propertyText(prop)
		}
	}
}

// propertyText 取属性的文本值；缺少结尾 NUL 的字符串会让 String 发生 panic
func propertyText(prop *msoleps.Property) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()
	return strings.TrimRight(prop.String(), "\x00")
}

func (a *oleAccessor) Write(path string, _ Record) error {
	return docerr.MetadataWrite("write", path, errReadOnly)
}

func (a *oleAccessor) Clear(path string) error {
	return docerr.MetadataWrite("clear", path, errReadOnly)
}
