package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// File 以目录下每个键一个 JSON 文件的方式保存
type File struct {
	dir string
	mu  sync.RWMutex
}

// NewFile 创建文件存储
// dir: 存储目录，首次写入时创建
func NewFile(dir string) *File {
	return &File{dir: dir}
}

// Dir 存储目录
func (f *File) Dir() string {
	return f.dir
}

func (f *File) path(key string) string {
	name := strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(key)
	return filepath.Join(f.dir, name+".json")
}

// Get 读取键
func (f *File) Get(ctx context.Context, key string, dst any) error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("读取存储文件失败: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("解析存储文件失败: %w", err)
	}
	return nil
}

// Set 写入键，目录权限 0700，文件权限 0600
func (f *File) Set(ctx context.Context, key string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化存储内容失败: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return fmt.Errorf("创建存储目录失败: %w", err)
	}
	// 先写临时文件再改名，避免读到半截内容
	tmp, err := os.CreateTemp(f.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("写入存储文件失败: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("设置存储文件权限失败: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("写入存储文件失败: %w", err)
	}
	if err := os.Rename(tmpName, f.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("替换存储文件失败: %w", err)
	}
	return nil
}

// Remove 删除键
func (f *File) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("删除存储文件失败: %w", err)
	}
	return nil
}
