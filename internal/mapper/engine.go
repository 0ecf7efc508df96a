package mapper

import "strings"

// DefaultFuzzyThreshold 模糊匹配默认阈值（0-100）
const DefaultFuzzyThreshold = 80

// MatchMethod 匹配结果的产生方式
type MatchMethod string

const (
	MatchExact   MatchMethod = "exact"   // 精确命中主映射表
	MatchCombo   MatchMethod = "combo"   // 组合装命中
	MatchFuzzy   MatchMethod = "fuzzy"   // 模糊匹配命中
	MatchInvalid MatchMethod = "invalid" // 格式校验不通过，未进入匹配
	MatchNone    MatchMethod = "none"    // 各级均未命中
)

// Engine SKU 匹配引擎
// 持有主映射表、组合装注册表与校验器；批处理期间对三者只读
type Engine struct {
	master    *MasterTable
	combos    *ComboRegistry
	validator *Validator
	threshold int
}

// NewEngine 创建匹配引擎
// threshold <= 0 时使用默认阈值
func NewEngine(master *MasterTable, combos *ComboRegistry, validator *Validator, threshold int) *Engine {
	if threshold <= 0 {
		threshold = DefaultFuzzyThreshold
	}
	if combos == nil {
		combos = NewComboRegistry("")
	}
	return &Engine{
		master:    master,
		combos:    combos,
		validator: validator,
		threshold: threshold,
	}
}

// Match 执行匹配级联：校验 -> 精确 -> 组合 -> 模糊，首个命中即返回
//
// 空输入不匹配任何级别。组合输入（含分隔符）按拆分后的各个 SKU 分别校验，
// 整串不会通过渠道正则。模糊级在主表为空时直接跳过；
// 得分并列时取主表中先出现的记录（严格大于才替换当前最优）
func (e *Engine) Match(inputSKU, marketplace string) (string, MatchMethod) {
	sku := strings.TrimSpace(inputSKU)
	if sku == "" {
		return "", MatchNone
	}

	// 1. 格式校验
	if !e.validate(sku, marketplace) {
		return "", MatchInvalid
	}

	// 2. 精确匹配（大小写不敏感，重复 SKU 第一条生效）
	if msku, ok := e.master.Lookup(sku); ok {
		return msku, MatchExact
	}

	// 3. 组合装
	if e.combos.Contains(sku) {
		if msku, ok := e.combos.Resolve(e.combos.Split(sku)); ok {
			return msku, MatchCombo
		}
	}

	// 4. 模糊匹配
	if e.master.Len() > 0 {
		bestScore := 0
		bestMSKU := ""
		for _, record := range e.master.Records() {
			score := PartialRatio(sku, record.SKU)
			if score >= e.threshold && score > bestScore {
				bestScore = score
				bestMSKU = record.MSKU
			}
		}
		if bestScore > 0 {
			return bestMSKU, MatchFuzzy
		}
	}

	return "", MatchNone
}

// validate 校验输入格式
// 组合输入整体不会通过渠道正则（分隔符不在字符集内），改为逐段校验
func (e *Engine) validate(sku, marketplace string) bool {
	if e.combos.Contains(sku) {
		parts := e.combos.Split(sku)
		if len(parts) == 0 {
			return false
		}
		for _, part := range parts {
			if !e.validator.Validate(part, marketplace) {
				return false
			}
		}
		return true
	}
	return e.validator.Validate(sku, marketplace)
}
