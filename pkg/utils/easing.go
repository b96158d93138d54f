package utils

import "math"

// Easing Functions (缓动函数)
//
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值。
// 参考：https://easings.net/

// EaseLinear 线性缓动（无缓动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 三次方缓出
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseOutQuad 二次方缓出
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInOutSine 正弦缓入缓出
// 用于船只、道具的上下浮动（yoyo）
// 公式：f(t) = -(cos(πt) - 1) / 2
func EaseInOutSine(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// EaseOutBounce 弹跳缓出
// 用于鱼钩落到目标深度时的回弹
func EaseOutBounce(t float64) float64 {
	const n1 = 7.5625
	const d1 = 2.75

	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}

// YoyoProgress 把持续增长的时间映射为往返进度
// 每个 halfPeriod 内从 0 到 1，下一个 halfPeriod 从 1 回到 0
//
// 参数：
//   - elapsed: 已经过的时间（秒）
//   - halfPeriod: 单程时长（秒），<= 0 时返回 0
//
// 返回：
//   - float64: 当前进度 [0, 1]
func YoyoProgress(elapsed, halfPeriod float64) float64 {
	if halfPeriod <= 0 {
		return 0
	}
	cycle := math.Mod(elapsed, 2*halfPeriod)
	if cycle < 0 {
		cycle += 2 * halfPeriod
	}
	if cycle <= halfPeriod {
		return cycle / halfPeriod
	}
	return 2 - cycle/halfPeriod
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp 将 v 限制在 [lo, hi] 范围内
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
