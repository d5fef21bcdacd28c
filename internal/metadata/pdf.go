package metadata

import (
	"errors"
	"io"

	docerr "github.com/allanpk716/docform/internal/errors"
	"github.com/allanpk716/docform/internal/fsutil"
	"github.com/allanpk716/docform/pkg/pdfinfo"
)

// pdfAccessor 基于文档信息字典的访问器；Category 为非标准键
type pdfAccessor struct {
	options
}

func (a *pdfAccessor) Format() Format {
	return FormatPDF
}

func (a *pdfAccessor) Read(path string) (Record, error) {
	doc, err := pdfinfo.Read(path)
	if err != nil {
		return Record{}, docerr.MetadataRead("read", path, err)
	}

	a.logger.Debug("读取PDF", "path", path, "pages", doc.Pages, "encrypted", doc.Encrypted)
	return Record{
		Title:       doc.Info.Title,
		Creator:     doc.Info.Author,
		Description: doc.Info.Subject,
		Category:    doc.Info.Category,
	}, nil
}

func (a *pdfAccessor) Write(path string, rec Record) error {
	info := pdfinfo.Info{
		Title:    rec.Title,
		Author:   rec.Creator,
		Subject:  rec.Description,
		Category: rec.Category,
	}

	err := fsutil.WriteFile(a.write, path, func(w io.Writer) error {
		return pdfinfo.Write(path, w, info)
	})
	if err != nil {
		var readErr *pdfinfo.ReadError
		if errors.As(err, &readErr) {
			return docerr.MetadataRead("write", path, err)
		}
		return docerr.MetadataWrite("write", path, err)
	}

	a.logger.Info("元数据已写入", "path", path, "format", FormatPDF.String(), "cleared", rec.IsEmpty())
	return nil
}

func (a *pdfAccessor) Clear(path string) error {
	return a.Write(path, Record{})
}
