package parser

import "strings"

// Detector 列探测器
//
// 按关键字子串在列名中定位目标列：关键字按调用方给定的优先级顺序尝试，
// 列按文件中的自然顺序（从左到右）扫描，命中即返回。
// 子串匹配是启发式的，可能误判（如 "subsku_description" 含 "sku"），
// 语义为"先命中先得"，不做最优匹配。
type Detector struct {
	Keywords []string
}

// NewDetector 创建列探测器
func NewDetector(keywords ...string) Detector {
	return Detector{Keywords: keywords}
}

// Detect 定位目标列，返回列索引
// 未命中时返回 (0, false)，调用方自行决定是兜底还是报错
func (d Detector) Detect(columns []string) (int, bool) {
	normalized := make([]string, len(columns))
	for i, col := range columns {
		normalized[i] = NormalizeColumnName(col)
	}

	for _, kw := range d.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		for idx, col := range normalized {
			if col == "" {
				continue
			}
			if strings.Contains(col, kw) {
				return idx, true
			}
		}
	}

	return 0, false
}

// DetectOrFirst 定位目标列，未命中时兜底返回第一列
// 用于 SKU 类查找；要求列表非空
func (d Detector) DetectOrFirst(columns []string) int {
	if idx, ok := d.Detect(columns); ok {
		return idx
	}
	return 0
}

// NormalizeColumnName 规范化列名：去首尾空白并转小写
func NormalizeColumnName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
