package exporter

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

// ErrUnsupportedFormat 不支持的导出格式
var ErrUnsupportedFormat = errors.New("unsupported export format")

// WriteFile 按目标路径扩展名导出标注数据集
func WriteFile(ds *model.Dataset, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return WriteCSV(ds, path)
	case ".xlsx":
		return WriteXLSX(ds, path)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
}

// WriteCSV 导出为 CSV，列顺序与数据集一致
func WriteCSV(ds *model.Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(ds.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, len(ds.Columns))
	for _, row := range ds.Rows {
		for i, col := range ds.Columns {
			record[i] = row[col]
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// WriteXLSX 导出为 Excel
func WriteXLSX(ds *model.Dataset, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(ds.Columns))
	for i, col := range ds.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for rowIdx, row := range ds.Rows {
		cells := make([]interface{}, len(ds.Columns))
		for i, col := range ds.Columns {
			cells[i] = row[col]
		}
		cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return fmt.Errorf("failed to build cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
