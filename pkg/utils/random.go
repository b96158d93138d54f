package utils

import "math/rand"

// RandRange 返回 [min, max) 范围内的均匀随机数
// min == max 时直接返回 min
func RandRange(rng *rand.Rand, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rng.Float64()*(max-min)
}

// RandSign 以相同概率返回 1 或 -1
func RandSign(rng *rand.Rand) float64 {
	if rng.Intn(2) == 0 {
		return -1
	}
	return 1
}
