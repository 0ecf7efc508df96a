package mapper

import (
	"sort"
	"strings"
	"sync"
)

// DefaultComboDelimiter 组合装输入的默认分隔符
const DefaultComboDelimiter = "+"

// ComboRecord 组合装记录，用于持久化与展示
type ComboRecord struct {
	Key  string `json:"key"`  // 排序规范化后的组合键
	MSKU string `json:"msku"`
}

// ComboRegistry 组合装（多 SKU 捆绑销售）注册表
//
// 组合键按 SKU 排序后规范化，查询不受输入顺序影响。
// 注册是唯一的写操作，由外部调用方触发；批处理期间只读，
// 读写锁保证并发批次下注册互斥、查询共享。
type ComboRegistry struct {
	mu        sync.RWMutex
	combos    map[string]string
	delimiter string
}

// NewComboRegistry 创建组合装注册表
func NewComboRegistry(delimiter string) *ComboRegistry {
	if delimiter == "" {
		delimiter = DefaultComboDelimiter
	}
	return &ComboRegistry{
		combos:    make(map[string]string),
		delimiter: delimiter,
	}
}

// Register 注册组合装
// 相同规范化键重复注册时静默覆盖
func (r *ComboRegistry) Register(skus []string, msku string) {
	key := r.comboKey(skus)
	if key == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.combos[key] = msku
}

// Resolve 查询组合装对应的 MSKU
func (r *ComboRegistry) Resolve(skus []string) (string, bool) {
	key := r.comboKey(skus)

	r.mu.RLock()
	defer r.mu.RUnlock()
	msku, ok := r.combos[key]
	return msku, ok
}

// Contains 输入是否含组合分隔符
func (r *ComboRegistry) Contains(input string) bool {
	return strings.Contains(input, r.delimiter)
}

// Split 按分隔符拆分组合输入，去除各部分首尾空白，丢弃空段
func (r *ComboRegistry) Split(input string) []string {
	var parts []string
	for _, p := range strings.Split(input, r.delimiter) {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// All 导出全部组合装记录，按键排序
func (r *ComboRegistry) All() []ComboRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]ComboRecord, 0, len(r.combos))
	for key, msku := range r.combos {
		records = append(records, ComboRecord{Key: key, MSKU: msku})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Key < records[j].Key })
	return records
}

// comboKey 排序规范化组合键
func (r *ComboRegistry) comboKey(skus []string) string {
	if len(skus) == 0 {
		return ""
	}
	sorted := make([]string, len(skus))
	copy(sorted, skus)
	sort.Strings(sorted)
	return strings.Join(sorted, r.delimiter)
}
