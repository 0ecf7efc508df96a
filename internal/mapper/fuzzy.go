package mapper

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// PartialRatio 部分匹配相似度，0-100
//
// 衡量短串在长串中"带编辑地包含"的程度：较短的串在较长的串上
// 逐位滑动等长窗口，对每个窗口算编辑距离，取最优窗口得分。
// 两侧先转小写，容忍大小写与首尾空白差异
func PartialRatio(a, b string) int {
	ra := []rune(strings.ToLower(strings.TrimSpace(a)))
	rb := []rune(strings.ToLower(strings.TrimSpace(b)))
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	short, long := ra, rb
	if len(short) > len(long) {
		short, long = long, short
	}

	best := 0
	for i := 0; i+len(short) <= len(long); i++ {
		window := long[i : i+len(short)]
		dist := levenshtein.ComputeDistance(string(short), string(window))
		score := (len(short) - dist) * 100 / len(short)
		if score > best {
			best = score
		}
		if best == 100 {
			break
		}
	}

	return best
}
