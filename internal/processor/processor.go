package processor

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"skumap/internal/mapper"
	"skumap/internal/model"
	"skumap/internal/parser"
)

// 诊断级别
const (
	LevelInfo    = "info"
	LevelWarning = "warning"
)

// Diagnostic 诊断事件
// 批处理不挂全局日志，逐行问题以事件形式随结果返回，由调用方决定如何呈现
type Diagnostic struct {
	Level     string    `json:"level"`         // info/warning
	Message   string    `json:"message"`       // 事件消息
	SKU       string    `json:"sku,omitempty"` // 涉及的 SKU
	Row       int       `json:"row,omitempty"` // 文件行号（表头为第 1 行）
	Timestamp time.Time `json:"timestamp"`
}

// Result 批处理结果
type Result struct {
	BatchID     string         `json:"batchId"`
	SourceFile  string         `json:"sourceFile"`
	Marketplace string         `json:"marketplace"`
	Dataset     *model.Dataset `json:"dataset"` // 标注后的数据集，新增 MSKU 列
	TotalRows   int            `json:"totalRows"`
	Unmapped    int            `json:"unmapped"`
	Diagnostics []Diagnostic   `json:"diagnostics,omitempty"`
	Duration    time.Duration  `json:"duration"`
}

// Processor 批处理器
// 对整个上传数据集逐行应用匹配引擎，产出标注数据集与诊断信息
type Processor struct {
	engine      *mapper.Engine
	skuDetector parser.Detector
}

// NewProcessor 创建批处理器
func NewProcessor(engine *mapper.Engine, skuDetector parser.Detector) *Processor {
	return &Processor{
		engine:      engine,
		skuDetector: skuDetector,
	}
}

// ProcessFile 加载并处理一个销售文件
// 文件无法解析时整体失败，不返回部分结果
func (p *Processor) ProcessFile(path, marketplace string) (*Result, error) {
	ds, err := parser.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return p.Process(ds, marketplace)
}

// Process 处理一个已加载的数据集
//
// SKU 列按关键字自动探测，未命中时兜底取第一列；源 SKU 为空的行
// 直接按未映射标注，不进入匹配引擎。逐行失败不会中断批次，
// 结束后以警告事件汇总未映射行数
func (p *Processor) Process(ds *model.Dataset, marketplace string) (*Result, error) {
	start := time.Now()

	if ds == nil || len(ds.Columns) == 0 {
		return nil, fmt.Errorf("dataset: %w", parser.ErrEmptyDataset)
	}

	skuCol := ds.Columns[p.skuDetector.DetectOrFirst(ds.Columns)]

	result := &Result{
		BatchID:     uuid.NewString(),
		SourceFile:  ds.SourceFile,
		Marketplace: marketplace,
		TotalRows:   len(ds.Rows),
	}

	annotated := &model.Dataset{
		Columns:    annotatedColumns(ds.Columns),
		Rows:       make([]model.Row, 0, len(ds.Rows)),
		SourceFile: ds.SourceFile,
	}

	for i, row := range ds.Rows {
		rowNo := i + 2 // 表头为第 1 行

		out := make(model.Row, len(row)+1)
		for k, v := range row {
			out[k] = v
		}

		sku := strings.TrimSpace(row[skuCol])
		if sku == "" {
			out[model.ColumnMSKU] = ""
			result.Unmapped++
			annotated.Rows = append(annotated.Rows, out)
			continue
		}

		msku, method := p.engine.Match(sku, marketplace)
		out[model.ColumnMSKU] = msku
		annotated.Rows = append(annotated.Rows, out)

		switch method {
		case mapper.MatchInvalid:
			result.Unmapped++
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Level:     LevelWarning,
				Message:   "SKU 格式不合法",
				SKU:       sku,
				Row:       rowNo,
				Timestamp: time.Now(),
			})
		case mapper.MatchNone:
			result.Unmapped++
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Level:     LevelWarning,
				Message:   "未找到匹配的 MSKU",
				SKU:       sku,
				Row:       rowNo,
				Timestamp: time.Now(),
			})
		}
	}

	if result.Unmapped > 0 {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Level:     LevelWarning,
			Message:   fmt.Sprintf("%d 行未能映射", result.Unmapped),
			Timestamp: time.Now(),
		})
	}

	result.Dataset = annotated
	result.Duration = time.Since(start)
	return result, nil
}

// annotatedColumns 在列尾追加 MSKU 列；源数据已有同名列时不重复
func annotatedColumns(columns []string) []string {
	out := make([]string, 0, len(columns)+1)
	hasMSKU := false
	for _, col := range columns {
		if col == model.ColumnMSKU {
			hasMSKU = true
		}
		out = append(out, col)
	}
	if !hasMSKU {
		out = append(out, model.ColumnMSKU)
	}
	return out
}
