package processor

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"skumap/internal/config"
	"skumap/internal/mapper"
	"skumap/internal/model"
	"skumap/internal/parser"
)

func newTestProcessor(t *testing.T, records []model.MasterRecord) *Processor {
	t.Helper()
	cfg := config.DefaultConfig()
	validator, err := mapper.NewValidator(cfg.Marketplaces)
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	engine := mapper.NewEngine(
		mapper.NewMasterTable(records),
		mapper.NewComboRegistry(cfg.Matching.ComboDelimiter),
		validator,
		cfg.Matching.FuzzyThreshold,
	)
	return NewProcessor(engine, parser.NewDetector(cfg.Detect.SKUKeywords...))
}

func writeSalesCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write sales: %v", err)
	}
	return path
}

func TestProcessFile(t *testing.T) {
	t.Parallel()

	proc := newTestProcessor(t, []model.MasterRecord{{SKU: "ABC123", MSKU: "M1"}})
	path := writeSalesCSV(t,
		"order_id,item_sku,price\n"+
			"1,abc123,10\n"+ // 精确（大小写不敏感）
			"2,ABC124,20\n"+ // 模糊
			"3,!!,5\n"+ // 校验不通过
			"4,,5\n"+ // 源 SKU 为空
			"5,ZZZ999,5\n") // 未命中

	result, err := proc.ProcessFile(path, "")
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if result.TotalRows != 5 {
		t.Fatalf("want 5 rows got %d", result.TotalRows)
	}
	if result.Unmapped != 3 {
		t.Fatalf("want 3 unmapped got %d", result.Unmapped)
	}
	if result.BatchID == "" {
		t.Fatalf("expected batch id")
	}

	rows := result.Dataset.Rows
	if rows[0][model.ColumnMSKU] != "M1" {
		t.Fatalf("exact row want=M1 got=%q", rows[0][model.ColumnMSKU])
	}
	if rows[1][model.ColumnMSKU] != "M1" {
		t.Fatalf("fuzzy row want=M1 got=%q", rows[1][model.ColumnMSKU])
	}
	for _, i := range []int{2, 3, 4} {
		if rows[i][model.ColumnMSKU] != "" {
			t.Fatalf("row %d should be unmapped, got %q", i, rows[i][model.ColumnMSKU])
		}
	}

	cols := result.Dataset.Columns
	if cols[len(cols)-1] != model.ColumnMSKU {
		t.Fatalf("MSKU column should be appended last: %v", cols)
	}

	// 逐行警告（校验 1 + 未命中 1）+ 批次汇总 1；空 SKU 行不产生事件
	if len(result.Diagnostics) != 3 {
		t.Fatalf("want 3 diagnostics got %d: %+v", len(result.Diagnostics), result.Diagnostics)
	}
}

func TestProcessFile_Idempotent(t *testing.T) {
	t.Parallel()

	proc := newTestProcessor(t, []model.MasterRecord{{SKU: "ABC123", MSKU: "M1"}})
	path := writeSalesCSV(t, "order_id,item_sku,price\n1,ABC123,10\n2,ABC124,20\n")

	first, err := proc.ProcessFile(path, "")
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := proc.ProcessFile(path, "")
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if !reflect.DeepEqual(first.Dataset, second.Dataset) {
		t.Fatalf("annotated datasets differ between runs")
	}
	if first.Unmapped != second.Unmapped {
		t.Fatalf("unmapped counts differ: %d vs %d", first.Unmapped, second.Unmapped)
	}
}

func TestProcess_SKUColumnFallback(t *testing.T) {
	t.Parallel()

	// 没有任何关键字命中时兜底取第一列
	proc := newTestProcessor(t, []model.MasterRecord{{SKU: "ABC123", MSKU: "M1"}})
	ds := &model.Dataset{
		Columns: []string{"code", "amount"},
		Rows:    []model.Row{{"code": "ABC123", "amount": "10"}},
	}

	result, err := proc.Process(ds, "")
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if result.Dataset.Rows[0][model.ColumnMSKU] != "M1" {
		t.Fatalf("fallback column not used: %+v", result.Dataset.Rows[0])
	}
}

func TestProcess_EmptyDataset(t *testing.T) {
	t.Parallel()

	proc := newTestProcessor(t, nil)
	if _, err := proc.Process(nil, ""); !errors.Is(err, parser.ErrEmptyDataset) {
		t.Fatalf("nil dataset want ErrEmptyDataset got %v", err)
	}
	if _, err := proc.Process(&model.Dataset{}, ""); !errors.Is(err, parser.ErrEmptyDataset) {
		t.Fatalf("no columns want ErrEmptyDataset got %v", err)
	}
}

func TestProcessFile_BadFile(t *testing.T) {
	t.Parallel()

	proc := newTestProcessor(t, nil)
	if _, err := proc.ProcessFile("sales.pdf", ""); !errors.Is(err, parser.ErrUnsupportedFormat) {
		t.Fatalf("want ErrUnsupportedFormat got %v", err)
	}
	if _, err := proc.ProcessFile(filepath.Join(t.TempDir(), "missing.csv"), ""); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
