/*
 * @module service/utils/numeric
 * @description 数值安全转换工具，对松散类型的输入做NaN/Inf安全的强制转换
 * @architecture 工具层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 任意输入 -> 类型强转 -> 有限值校验 -> 安全替换
 * @rules 任何离开核心的数值必须是有限值；除零必须显式防护
 * @dependencies github.com/spf13/cast
 * @refs service/analytics, service/insights, api/controllers
 */

package utils

import (
	"math"

	"github.com/spf13/cast"
)

// ToFiniteFloat 将任意值安全转换为有限float64，转换失败或非有限值时返回0
func ToFiniteFloat(value interface{}) float64 {
	f, err := cast.ToFloat64E(value)
	if err != nil {
		return 0
	}
	return Finite(f)
}

// ToFloatOr 将任意值转换为float64，失败时返回默认值
func ToFloatOr(value interface{}, fallback float64) float64 {
	f, err := cast.ToFloat64E(value)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	return f
}

// ToIntOr 将任意值转换为int，失败时返回默认值
func ToIntOr(value interface{}, fallback int) int {
	n, err := cast.ToIntE(value)
	if err != nil {
		return fallback
	}
	return n
}

// ToString 将任意值转换为字符串，失败时返回空串
func ToString(value interface{}) string {
	s, err := cast.ToStringE(value)
	if err != nil {
		return ""
	}
	return s
}

// Finite 将NaN/Inf替换为0
func Finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// SafeDiv 防护除零，分母为0时返回0
func SafeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return Finite(numerator / denominator)
}

// Round2 四舍五入到2位小数
func Round2(f float64) float64 {
	return math.Round(Finite(f)*100) / 100
}

// Round3 四舍五入到3位小数
func Round3(f float64) float64 {
	return math.Round(Finite(f)*1000) / 1000
}

// Clamp01 将值钳制到[0,1]
func Clamp01(f float64) float64 {
	f = Finite(f)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
