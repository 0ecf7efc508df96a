package store

import (
	"fmt"
	"time"
)

// InsertBatchLog 记录一次批处理
func (s *Store) InsertBatchLog(id, filename, marketplace string, totalRows, unmappedRows int, duration time.Duration) error {
	_, err := s.db.Exec(`
		INSERT INTO batch_logs (id, filename, marketplace, total_rows, unmapped_rows, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, filename, marketplace, totalRows, unmappedRows, duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("failed to insert batch log: %w", err)
	}
	return nil
}
