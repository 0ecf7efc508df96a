package mapper

import (
	"fmt"
	"regexp"
)

// DefaultMarketplace 未知渠道统一回退的校验口径
const DefaultMarketplace = "default"

// Validator SKU 格式校验器
// 每个渠道一条正则，表从配置加载；校验失败的 SKU 直接按未映射处理，不进入匹配
type Validator struct {
	patterns map[string]*regexp.Regexp
}

// NewValidator 编译各渠道的校验正则
// patterns 必须包含 default 项，未知渠道回退到该项
func NewValidator(patterns map[string]string) (*Validator, error) {
	if _, ok := patterns[DefaultMarketplace]; !ok {
		return nil, fmt.Errorf("validator patterns missing %q entry", DefaultMarketplace)
	}

	compiled := make(map[string]*regexp.Regexp, len(patterns))
	for marketplace, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern for marketplace %q: %w", marketplace, err)
		}
		compiled[marketplace] = re
	}

	return &Validator{patterns: compiled}, nil
}

// Validate 校验 SKU 是否符合渠道格式
func (v *Validator) Validate(sku, marketplace string) bool {
	re, ok := v.patterns[marketplace]
	if !ok {
		re = v.patterns[DefaultMarketplace]
	}
	return re.MatchString(sku)
}
