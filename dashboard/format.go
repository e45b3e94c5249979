package dashboard

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ByLCY/inkboard/ha"
)

// capitalize 把首字符转为大写，用于状况码的展示形态
// （"partlycloudy" → "Partlycloudy"）。图标匹配仍用原始小写形态。
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// formatSpeed 渲染传输速率。读取出错与"实体正常但无值"使用不同占位，
// 面板上一眼可分辨是链路断了还是没在传输。
func formatSpeed(v ha.FieldValue) string {
	if v.Failed {
		return "ERR"
	}
	if v.IsAbsent() {
		return "-"
	}
	n := strings.TrimSuffix(fmt.Sprintf("%.1f", v.Num), ".0")
	if v.Unit == "" {
		return n
	}
	return n + " " + v.Unit
}

// formatNumber 渲染带单位的整数读数，缺值时返回占位符。
func formatNumber(v ha.FieldValue, suffix, placeholder string) string {
	if v.IsAbsent() {
		return placeholder
	}
	return fmt.Sprintf("%.0f%s", v.Num, suffix)
}

// formatTemp 渲染一位小数的温度读数。
func formatTemp(v ha.FieldValue, placeholder string) string {
	if v.IsAbsent() {
		return placeholder
	}
	return fmt.Sprintf("%.1f°", v.Num)
}

// formatStatus 渲染状态行的文本值。
func formatStatus(v ha.FieldValue) string {
	if v.Failed {
		return "ERR"
	}
	if v.IsAbsent() {
		return "—"
	}
	return v.Text
}
