package utils

import (
	"strings"

	"github.com/google/uuid"
)

// IsUUID 判断字符串是否为语法合法的 UUID
// 分类/设施的兜底数据用人类可读的 slug 当 ID，不能当成后端键写库
func IsUUID(s string) bool {
	if s == "" {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// Slugify 把显示名称转成 slug 形式的键
// 例: "Air Conditioning" -> "air-conditioning"
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true // 抑制开头的 '-'

	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
