package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"skumap/internal/model"
)

var (
	// ErrUnsupportedFormat 不支持的文件格式
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrEmptyDataset 文件没有表头行
	ErrEmptyDataset = errors.New("dataset has no header row")
	// ErrColumnNotFound 未能定位必需列
	ErrColumnNotFound = errors.New("column not found")
)

// LoadFile 加载表格文件为数据集
// 按扩展名区分 CSV 与 Excel；表头以外全为空白的行会被跳过
func LoadFile(path string) (*model.Dataset, error) {
	var (
		ds  *model.Dataset
		err error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		ds, err = loadCSV(path)
	case ".xlsx", ".xlsm":
		ds, err = loadXLSX(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
	if err != nil {
		return nil, err
	}

	ds.SourceFile = filepath.Base(path)
	return ds, nil
}

// loadCSV 加载 CSV 文件
func loadCSV(path string) (*model.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	// 渠道导出的 CSV 行宽经常不齐，逐行自适应
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}

	return buildDataset(records)
}

// loadXLSX 加载 Excel 文件，取第一个 Sheet
func loadXLSX(path string) (*model.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyDataset
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	return buildDataset(rows)
}

// buildDataset 第一行为表头，其余为数据行
func buildDataset(records [][]string) (*model.Dataset, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	ds := &model.Dataset{Columns: headers}

	for _, record := range records[1:] {
		if isBlankRow(record) {
			continue
		}
		row := make(model.Row, len(headers))
		for i, col := range headers {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		ds.Rows = append(ds.Rows, row)
	}

	return ds, nil
}

func isBlankRow(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
