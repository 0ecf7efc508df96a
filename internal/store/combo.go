package store

import (
	"fmt"

	"skumap/internal/mapper"
)

// SaveCombo 保存组合装，同键覆盖
func (s *Store) SaveCombo(key, msku string) error {
	_, err := s.db.Exec(`
		INSERT INTO combo_products (combo_key, msku)
		VALUES (?, ?)
		ON CONFLICT(combo_key) DO UPDATE SET msku = excluded.msku
	`, key, msku)
	if err != nil {
		return fmt.Errorf("failed to save combo: %w", err)
	}
	return nil
}

// LoadCombos 按键序加载全部组合装
func (s *Store) LoadCombos() ([]mapper.ComboRecord, error) {
	rows, err := s.db.Query(`SELECT combo_key, msku FROM combo_products ORDER BY combo_key`)
	if err != nil {
		return nil, fmt.Errorf("failed to load combos: %w", err)
	}
	defer rows.Close()

	var records []mapper.ComboRecord
	for rows.Next() {
		var r mapper.ComboRecord
		if err := rows.Scan(&r.Key, &r.MSKU); err != nil {
			return nil, fmt.Errorf("failed to scan combo: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate combos: %w", err)
	}
	return records, nil
}
