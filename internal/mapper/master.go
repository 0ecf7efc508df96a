package mapper

import (
	"fmt"
	"strings"

	"skumap/internal/model"
	"skumap/internal/parser"
)

// MasterTable 主 SKU 映射表
// 记录保持加载顺序；精确查找大小写不敏感，SKU 重复时第一条生效。
// 加载完成后只读，刷新通过整表重建
type MasterTable struct {
	records []model.MasterRecord
	index   map[string]string // 小写 SKU -> MSKU，先到先得
}

// NewMasterTable 从记录构建映射表
func NewMasterTable(records []model.MasterRecord) *MasterTable {
	index := make(map[string]string, len(records))
	for _, r := range records {
		key := strings.ToLower(r.SKU)
		if _, ok := index[key]; !ok {
			index[key] = r.MSKU
		}
	}
	return &MasterTable{records: records, index: index}
}

// LoadMasterTable 从参照文件加载主映射表
// SKU / MSKU 两列按关键字自动探测；两者探测到同一列时报错，
// 不沿用"回退到第一列"的口径以免悄悄装入错误映射
func LoadMasterTable(path string, skuDetector, mskuDetector parser.Detector) (*MasterTable, error) {
	ds, err := parser.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load master file: %w", err)
	}
	if len(ds.Columns) == 0 {
		return nil, fmt.Errorf("master file %s: %w", ds.SourceFile, parser.ErrEmptyDataset)
	}

	skuIdx := skuDetector.DetectOrFirst(ds.Columns)
	mskuIdx, ok := mskuDetector.Detect(ds.Columns)
	if !ok {
		return nil, fmt.Errorf("master file %s: msku %w", ds.SourceFile, parser.ErrColumnNotFound)
	}
	if skuIdx == mskuIdx {
		return nil, fmt.Errorf("master file %s: sku and msku detected as the same column %q", ds.SourceFile, ds.Columns[skuIdx])
	}

	skuCol, mskuCol := ds.Columns[skuIdx], ds.Columns[mskuIdx]

	records := make([]model.MasterRecord, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		sku := strings.TrimSpace(row[skuCol])
		if sku == "" {
			continue
		}
		records = append(records, model.MasterRecord{
			SKU:  sku,
			MSKU: strings.TrimSpace(row[mskuCol]),
		})
	}

	return NewMasterTable(records), nil
}

// Len 记录条数
func (t *MasterTable) Len() int {
	return len(t.records)
}

// Records 按加载顺序返回全部记录
func (t *MasterTable) Records() []model.MasterRecord {
	return t.records
}

// Lookup 大小写不敏感的精确查找
func (t *MasterTable) Lookup(sku string) (string, bool) {
	msku, ok := t.index[strings.ToLower(sku)]
	return msku, ok
}
