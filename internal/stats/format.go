package stats

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// 超出该范围的浮点数不再按整数输出
const maxExactInt = 1 << 53

// FormatNumber：英文区域千分位格式化；整数无小数位，小数最多三位；NaN/Inf 返回 "0"
func FormatNumber(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return "0"
	}
	p := message.NewPrinter(language.English)
	if n == math.Trunc(n) && math.Abs(n) < maxExactInt {
		return p.Sprintf("%d", int64(n))
	}
	return p.Sprint(number.Decimal(n, number.MaxFractionDigits(3)))
}

// FormatInt：整数格式化
func FormatInt(n int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}
