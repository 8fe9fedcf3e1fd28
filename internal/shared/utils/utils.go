package utils

import (
	"os"
	"path/filepath"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword 密码加密
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword 验证密码
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GetAbsolutePath 转换为绝对路径
func GetAbsolutePath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	return filepath.Abs(path)
}

// FindWebPath 查找Web资源目录，依次尝试工作目录和可执行文件目录
func FindWebPath(relative string) string {
	if _, err := os.Stat(relative); err == nil {
		return relative
	}

	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), relative)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return relative
}
