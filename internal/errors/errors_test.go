package errors

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesKind(t *testing.T) {
	err := DocumentRead("scan", "a.docx", os.ErrNotExist)

	assert.True(t, errors.Is(err, ErrDocumentRead))
	assert.False(t, errors.Is(err, ErrDocumentWrite))
	assert.True(t, errors.Is(err, os.ErrNotExist), "底层错误应保留在错误链中")
}

func TestError_MessageFormat(t *testing.T) {
	err := MetadataWrite("write", "/tmp/cv.pdf", fmt.Errorf("磁盘已满"))
	assert.Equal(t, "[write] 写入元数据失败 /tmp/cv.pdf: 磁盘已满", err.Error())
}

func TestNew_DoesNotRewrapClassifiedErrors(t *testing.T) {
	inner := MetadataRead("read", "x.pdf", fmt.Errorf("bad xref"))
	outer := MetadataWrite("write", "x.pdf", fmt.Errorf("wrap: %w", inner))

	assert.Equal(t, KindMetadataRead, KindOf(outer))
	assert.True(t, errors.Is(outer, ErrMetadataRead))
}

func TestUnsupportedFormat(t *testing.T) {
	err := UnsupportedFormat("read", "notes.txt")

	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	assert.Equal(t, KindUnsupportedFormat, KindOf(err))
	assert.Contains(t, Message(err), "不支持的文件格式")
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(fmt.Errorf("plain")))
	assert.Equal(t, "", Message(nil))
}
