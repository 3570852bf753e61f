package processors

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/cloudwego/eino/schema"
)

// Processor 合并解析结果为一份文本：按顺序拼接，清洗非法字符，只对整体去首尾空白
func Processor(ctx context.Context, src []*schema.Document) string {
	var sb strings.Builder
	for _, doc := range src {
		if doc == nil {
			continue
		}
		sb.WriteString(clean(doc.Content))
	}
	return strings.TrimSpace(sb.String())
}

func clean(content string) string {
	// 移除 Null 字节 (常见 PDF 解析错误)
	content = strings.ReplaceAll(content, "\x00", "")

	// 移除无效的 UTF-8 字符
	if !utf8.ValidString(content) {
		v := make([]rune, 0, len(content))
		for i, r := range content {
			if r == utf8.RuneError {
				_, size := utf8.DecodeRuneInString(content[i:])
				if size == 1 {
					continue
				}
			}
			v = append(v, r)
		}
		content = string(v)
	}
	return content
}
