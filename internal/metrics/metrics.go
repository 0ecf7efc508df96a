package metrics

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"skumap/internal/model"
	"skumap/internal/parser"
)

var (
	// ErrNoOrderColumn 未能定位订单号列
	ErrNoOrderColumn = errors.New("order column not found")
	// ErrNoPriceColumn 未能定位金额列
	ErrNoPriceColumn = errors.New("price column not found")
)

// Record 汇总指标
// 每次聚合重新计算，核心不落盘
type Record struct {
	TotalOrders    int             `json:"total_orders"`    // 去重订单数
	TotalRevenue   decimal.Decimal `json:"total_revenue"`   // 金额列求和
	UniqueProducts int             `json:"unique_products"` // 去重 MSKU 数，未映射行不计入
	AvgOrderValue  decimal.Decimal `json:"avg_order_value"` // 客单价，订单数为 0 时恒为 0
}

// Aggregator 指标聚合器
// 订单号列与金额列按关键字探测，探测不到时显式报错而非默认为零
type Aggregator struct {
	orderDetector parser.Detector
	priceDetector parser.Detector
}

// NewAggregator 创建聚合器
func NewAggregator(orderDetector, priceDetector parser.Detector) *Aggregator {
	return &Aggregator{
		orderDetector: orderDetector,
		priceDetector: priceDetector,
	}
}

// Aggregate 聚合一个或多个标注数据集
//
// 数据集按输入顺序拼接，跨文件不去重。完全没有数据行时返回全零指标；
// 非空数据集上订单号列或金额列探测失败按错误返回。
// 金额单元格解析失败的行不计入营收（与空单元格同）；
// 未映射（MSKU 为空）的行在去重产品数中整体不计，不作为一个产品
func (a *Aggregator) Aggregate(datasets ...*model.Dataset) (*Record, error) {
	combined := model.Concat(datasets...)

	record := &Record{
		TotalRevenue:  decimal.Zero,
		AvgOrderValue: decimal.Zero,
	}
	if len(combined.Rows) == 0 {
		return record, nil
	}

	orderIdx, ok := a.orderDetector.Detect(combined.Columns)
	if !ok {
		return nil, fmt.Errorf("aggregate: %w", ErrNoOrderColumn)
	}
	priceIdx, ok := a.priceDetector.Detect(combined.Columns)
	if !ok {
		return nil, fmt.Errorf("aggregate: %w", ErrNoPriceColumn)
	}
	orderCol, priceCol := combined.Columns[orderIdx], combined.Columns[priceIdx]

	orders := make(map[string]struct{})
	products := make(map[string]struct{})
	revenue := decimal.Zero

	for _, row := range combined.Rows {
		if id := strings.TrimSpace(row[orderCol]); id != "" {
			orders[id] = struct{}{}
		}

		if cell := strings.TrimSpace(row[priceCol]); cell != "" {
			if amount, err := decimal.NewFromString(cell); err == nil {
				revenue = revenue.Add(amount)
			}
		}

		if msku := strings.TrimSpace(row[model.ColumnMSKU]); msku != "" {
			products[msku] = struct{}{}
		}
	}

	record.TotalOrders = len(orders)
	record.TotalRevenue = revenue
	record.UniqueProducts = len(products)
	if record.TotalOrders > 0 {
		record.AvgOrderValue = revenue.Div(decimal.NewFromInt(int64(record.TotalOrders)))
	}

	return record, nil
}
