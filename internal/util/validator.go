package util

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	usernameRe  = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,64}$`)
	tagPrefixRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]{0,31}$`)
)

// ValidateUsername 验证用户名（3-64 位字母、数字、下划线、点、连字符）
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username is empty")
	}
	if !usernameRe.MatchString(username) {
		return fmt.Errorf("username must be 3-64 letters, digits, '_', '.' or '-'")
	}
	return nil
}

// ValidateAssetTagPrefix 验证分类的资产标签前缀；空前缀表示不自动建议标签
func ValidateAssetTagPrefix(prefix string) error {
	if prefix == "" {
		return nil
	}
	if !tagPrefixRe.MatchString(prefix) {
		return fmt.Errorf("asset tag prefix must be 1-32 letters, digits or '-', not starting with '-'")
	}
	if strings.HasSuffix(prefix, "-") {
		return fmt.Errorf("asset tag prefix must not end with '-'")
	}
	return nil
}

// ValidateAssetTag 验证资产标签（不能为空且长度合理）
func ValidateAssetTag(tag string) error {
	if tag == "" {
		return fmt.Errorf("asset tag is empty")
	}
	if len(tag) > 64 {
		return fmt.Errorf("asset tag too long, max 64 characters")
	}
	if strings.ContainsAny(tag, " \t\r\n") {
		return fmt.Errorf("asset tag must not contain whitespace")
	}
	return nil
}
