//go:build android

package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 确保 Android 设置存储目录存在并可写
//
// gdata 库在 Android 上使用 /data/data/{package}/ 作为存储根目录，
// 但不会预先创建子目录。此函数在 gdata 初始化前调用。
func EnsureStorageDir(appName string) error {
	pkg, err := detectAndroidApp()
	if err != nil {
		return fmt.Errorf("failed to detect Android app: %w", err)
	}

	dir := filepath.Join("/data/data", pkg, appName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}

	// 验证目录可写
	testFile := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		return fmt.Errorf("storage directory %s is not writable: %w", dir, err)
	}
	os.Remove(testFile)

	return nil
}

// detectAndroidApp 从 /proc/self/cmdline 读取应用包名
func detectAndroidApp() (string, error) {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", err
	}

	copied := make([]byte, 0, len(data))
	for _, ch := range data {
		switch ch {
		case 0, '\n':
			continue
		}
		copied = append(copied, ch)
	}

	if len(copied) == 0 {
		return "", fmt.Errorf("got empty output from /proc/self/cmdline")
	}
	return string(copied), nil
}
