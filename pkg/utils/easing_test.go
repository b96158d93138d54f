package utils

import (
	"math"
	"math/rand"
	"testing"
)

// TestEasingEndpoints 所有缓动函数在端点处取 0 和 1
func TestEasingEndpoints(t *testing.T) {
	funcs := map[string]func(float64) float64{
		"EaseLinear":    EaseLinear,
		"EaseOutCubic":  EaseOutCubic,
		"EaseOutQuad":   EaseOutQuad,
		"EaseInOutSine": EaseInOutSine,
		"EaseOutBounce": EaseOutBounce,
	}

	for name, fn := range funcs {
		t.Run(name, func(t *testing.T) {
			if got := fn(0); math.Abs(got) > 0.001 {
				t.Errorf("%s(0) = %v, 期望 0", name, got)
			}
			if got := fn(1); math.Abs(got-1) > 0.001 {
				t.Errorf("%s(1) = %v, 期望 1", name, got)
			}
		})
	}
}

// TestEaseOutBounceStaysInRange 弹跳缓动不会越过终点
func TestEaseOutBounceStaysInRange(t *testing.T) {
	for p := 0.0; p <= 1.0; p += 0.01 {
		v := EaseOutBounce(p)
		if v < 0 || v > 1.0001 {
			t.Fatalf("EaseOutBounce(%.2f) = %v 超出 [0,1]", p, v)
		}
	}
}

func TestEaseInOutSineMidpoint(t *testing.T) {
	if got := EaseInOutSine(0.5); math.Abs(got-0.5) > 0.001 {
		t.Errorf("EaseInOutSine(0.5) = %v, 期望 0.5", got)
	}
}

// TestYoyoProgress 往返进度
func TestYoyoProgress(t *testing.T) {
	tests := []struct {
		name     string
		elapsed  float64
		expected float64
	}{
		{"起点", 0, 0},
		{"单程一半", 0.75, 0.5},
		{"单程终点", 1.5, 1},
		{"返程一半", 2.25, 0.5},
		{"回到起点", 3.0, 0},
		{"第二周期", 3.75, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := YoyoProgress(tt.elapsed, 1.5)
			if math.Abs(got-tt.expected) > 0.001 {
				t.Errorf("YoyoProgress(%v) = %v, 期望 %v", tt.elapsed, got, tt.expected)
			}
		})
	}

	if YoyoProgress(1, 0) != 0 {
		t.Error("非正周期应返回 0")
	}
}

func TestLerpAndClamp(t *testing.T) {
	if got := Lerp(100, 300, 0.25); got != 150 {
		t.Errorf("Lerp = %v, 期望 150", got)
	}
	if Clamp(-5, 0, 10) != 0 || Clamp(15, 0, 10) != 10 || Clamp(5, 0, 10) != 5 {
		t.Error("Clamp 结果错误")
	}
}

// TestRandRange 随机范围
func TestRandRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		v := RandRange(rng, 1, 3)
		if v < 1 || v >= 3 {
			t.Fatalf("RandRange 返回 %v，超出 [1,3)", v)
		}
	}
	if RandRange(rng, 2, 2) != 2 {
		t.Error("空区间应返回下限")
	}
	if s := RandSign(rng); s != 1 && s != -1 {
		t.Errorf("RandSign 返回 %v", s)
	}
	t.Logf("✓ 随机范围正确")
}
