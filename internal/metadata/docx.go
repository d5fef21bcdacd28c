package metadata

import (
	"io"

	docerr "github.com/allanpk716/docform/internal/errors"
	"github.com/allanpk716/docform/internal/fsutil"
	"github.com/allanpk716/docform/pkg/docx"
)

// docxAccessor 基于 docProps/core.xml 的访问器
type docxAccessor struct {
	options
}

func (a *docxAccessor) Format() Format {
	return FormatDOCX
}

func (a *docxAccessor) Read(path string) (Record, error) {
	pkg, err := docx.OpenPackage(path)
	if err != nil {
		return Record{}, docerr.MetadataRead("read", path, err)
	}

	props, err := pkg.CoreProperties()
	if err != nil {
		return Record{}, docerr.MetadataRead("read", path, err)
	}

	return Record{
		Title:       props.Title,
		Creator:     props.Creator,
		Description: props.Description,
		Category:    props.Category,
	}, nil
}

func (a *docxAccessor) Write(path string, rec Record) error {
	pkg, err := docx.OpenPackage(path)
	if err != nil {
		return docerr.MetadataRead("write", path, err)
	}

	err = pkg.SetCoreProperties(docx.CoreProperties{
		Title:       rec.Title,
		Creator:     rec.Creator,
		Description: rec.Description,
		Category:    rec.Category,
	})
	if err != nil {
		return docerr.MetadataWrite("write", path, err)
	}

	err = fsutil.WriteFile(a.write, path, func(w io.Writer) error {
		_, err := pkg.WriteTo(w)
		return err
	})
	if err != nil {
		return docerr.MetadataWrite("write", path, err)
	}

	a.logger.Info("元数据已写入", "path", path, "format", FormatDOCX.String(), "cleared", rec.IsEmpty())
	return nil
}

func (a *docxAccessor) Clear(path string) error {
	return a.Write(path, Record{})
}
