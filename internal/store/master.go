package store

import (
	"fmt"

	"skumap/internal/model"
)

// ReplaceMaster 整表替换主映射快照
func (s *Store) ReplaceMaster(records []model.MasterRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM master_mappings`); err != nil {
		return fmt.Errorf("failed to clear master mappings: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO master_mappings (position, sku, msku)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.Exec(i, r.SKU, r.MSKU); err != nil {
			return fmt.Errorf("failed to insert master mapping: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// LoadMaster 按加载顺序读取主映射快照
func (s *Store) LoadMaster() ([]model.MasterRecord, error) {
	rows, err := s.db.Query(`SELECT sku, msku FROM master_mappings ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to load master mappings: %w", err)
	}
	defer rows.Close()

	var records []model.MasterRecord
	for rows.Next() {
		var r model.MasterRecord
		if err := rows.Scan(&r.SKU, &r.MSKU); err != nil {
			return nil, fmt.Errorf("failed to scan master mapping: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate master mappings: %w", err)
	}
	return records, nil
}
