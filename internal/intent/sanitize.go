package intent

import (
	"regexp"
	"strings"
)

// MaxInputLength 用户输入最大字符数
const MaxInputLength = 500

var scriptTagPattern = regexp.MustCompile(`(?is)<script\b.*?</script>`)

// StripMarkup 去除 script 标签和尖括号并去掉首尾空白，不限制长度
func StripMarkup(input string) string {
	s := scriptTagPattern.ReplaceAllString(input, "")
	s = strings.NewReplacer("<", "", ">", "").Replace(s)
	return strings.TrimSpace(s)
}

// Sanitize 清洗聊天输入：StripMarkup 后截断到 MaxInputLength 个字符。
// 结果满足 Sanitize(Sanitize(x)) == Sanitize(x)。
func Sanitize(input string) string {
	s := StripMarkup(input)

	runes := []rune(s)
	if len(runes) > MaxInputLength {
		// 截断后可能露出尾部空白
		s = strings.TrimSpace(string(runes[:MaxInputLength]))
	}
	return s
}
