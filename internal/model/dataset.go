package model

// ColumnMSKU 批处理写入的主 SKU 列名
const ColumnMSKU = "MSKU"

// Row 一行数据，列名 -> 单元格文本
// 上传文件的列结构不固定，各渠道导出的列名互不相同，统一按文本保存
type Row map[string]string

// Dataset 表格数据集
type Dataset struct {
	Columns    []string `json:"columns"`    // 列名，保持文件中的从左到右顺序
	Rows       []Row    `json:"rows"`       // 数据行
	SourceFile string   `json:"sourceFile"` // 来源文件名
}

// Concat 按输入顺序拼接多个数据集
// 列取并集（按首次出现顺序），行不去重；nil 数据集跳过
func Concat(datasets ...*Dataset) *Dataset {
	combined := &Dataset{}
	seen := make(map[string]bool)

	for _, ds := range datasets {
		if ds == nil {
			continue
		}
		for _, col := range ds.Columns {
			if !seen[col] {
				seen[col] = true
				combined.Columns = append(combined.Columns, col)
			}
		}
		combined.Rows = append(combined.Rows, ds.Rows...)
	}

	return combined
}
