package path

import (
	"os"
	"path/filepath"
	"runtime"
)

// RootPath 相對設定檔路徑的基準目錄
// 原始碼樹存在時（go run / 測試）取專案根目錄，否則（編譯後部署）取工作目錄
func RootPath() string {
	if _, filename, _, ok := runtime.Caller(0); ok {
		// /project/utils/path/path.go → /project
		root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
		if ok, _ := Exists(filepath.Join(root, "go.mod")); ok {
			return root
		}
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// Exists 路徑是否存在
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
