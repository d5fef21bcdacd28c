// Package fsutil 提供文件写入纪律：先写临时文件，成功后再原子替换目标文件。
package fsutil

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// WriterFunc 把 r 的全部内容写入 path；任何一步失败时 path 保持原状
type WriterFunc func(path string, r io.Reader) error

// AtomicWriter 在目标目录中创建临时文件，写完并同步后替换目标
var AtomicWriter WriterFunc = atomic.WriteFile

// WriteFile 先把内容渲染到内存，再通过 write 原子写入 path。
// 渲染失败时不会触碰磁盘。
func WriteFile(write WriterFunc, path string, render func(w io.Writer) error) error {
	if write == nil {
		write = AtomicWriter
	}

	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}

	if err := write(path, &buf); err != nil {
		return fmt.Errorf("写入文件失败: %w", err)
	}
	return nil
}

// SamePath 判断两个路径是否指向同一个文件。文件不存在时按绝对路径比较。
func SamePath(a, b string) bool {
	if infoA, errA := os.Stat(a); errA == nil {
		if infoB, errB := os.Stat(b); errB == nil {
			return os.SameFile(infoA, infoB)
		}
	}

	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// EnsureDir 确保文件所在目录存在
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	return nil
}
