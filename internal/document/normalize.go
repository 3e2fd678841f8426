package document

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// punctReplacer 将各类Unicode引号和破折号替换为规范形式
var punctReplacer = strings.NewReplacer(
	"‘", "'", // 左单引号
	"’", "'", // 右单引号
	"‚", "'",
	"“", `"`, // 左双引号
	"”", `"`, // 右双引号
	"„", `"`,
	"–", "-", // en dash
	"—", "-", // em dash
	"…", "...", // 省略号
	" ", " ", // 不换行空格
)

// Normalize 规范化文档文本
// 1. Unicode NFC规范化
// 2. 引号、破折号等标点统一为规范形式
// 3. 去除不可见控制字符
// 4. 连续空白折叠为单个空格，并去除首尾空白
// 纯函数，无副作用，同样的输入总是返回同样的输出
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = norm.NFC.String(text)
	text = punctReplacer.Replace(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		// 保留换行和制表符供Fields折叠，丢弃其余控制字符
		if unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r' {
			continue
		}
		b.WriteRune(r)
	}

	// 折叠所有空白（包括换行）为单个空格
	return strings.Join(strings.Fields(b.String()), " ")
}
