package model

// MasterRecord 主 SKU 映射记录
// SKU 在表中允许重复，匹配时以第一条为准
type MasterRecord struct {
	SKU  string `json:"sku"`
	MSKU string `json:"msku"`
}
