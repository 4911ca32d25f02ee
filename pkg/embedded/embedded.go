// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量声明在 data 包（data/embed.go）。
// 本包提供包装函数，让布局加载等代码不关心资源来自磁盘还是二进制。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

var (
	dataFS      fs.FS
	initialized bool
)

// Init 初始化资源文件系统
// 必须在 main() 开始时、任何资源加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = true
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 标准化路径并去掉 "data/" 前缀
func normalize(path string) (string, error) {
	if !initialized {
		return "", fmt.Errorf("embedded package not initialized, call Init() first")
	}

	// embed.FS 使用正斜杠
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")

	if !strings.HasPrefix(path, "data/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return strings.TrimPrefix(path, "data/"), nil
}

// ReadFile 读取嵌入文件内容
// 路径必须以 "data/" 开头，如 "data/skb/qwerty.yaml"
func ReadFile(path string) ([]byte, error) {
	name, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, name)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	name, err := normalize(path)
	if err != nil {
		return false
	}
	_, err = fs.Stat(dataFS, name)
	return err == nil
}

// Glob 匹配嵌入文件，返回带 "data/" 前缀的路径
func Glob(pattern string) ([]string, error) {
	name, err := normalize(pattern)
	if err != nil {
		return nil, err
	}
	matches, err := fs.Glob(dataFS, name)
	if err != nil {
		return nil, err
	}
	for i, m := range matches {
		matches[i] = "data/" + m
	}
	return matches, nil
}
