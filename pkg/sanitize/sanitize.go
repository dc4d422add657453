package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugcPolicy    = bluemonday.UGCPolicy()
	strictPolicy = bluemonday.StrictPolicy()
)

// HTML 过滤用户提交的富文本，保留安全标签
func HTML(input string) string {
	if input == "" {
		return ""
	}
	return ugcPolicy.Sanitize(input)
}

// Text 去除全部标签，用于标题等纯文本字段
func Text(input string) string {
	if input == "" {
		return ""
	}
	return strings.TrimSpace(strictPolicy.Sanitize(input))
}

// URLs 过滤图片地址，丢弃空值和非 http(s) 地址
func URLs(inputs []string) []string {
	out := make([]string, 0, len(inputs))
	for _, raw := range inputs {
		u := strings.TrimSpace(raw)
		if u == "" {
			continue
		}
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			continue
		}
		out = append(out, u)
	}
	return out
}
