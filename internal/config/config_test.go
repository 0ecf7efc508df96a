package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Matching.FuzzyThreshold != 80 || cfg.Matching.ComboDelimiter != "+" {
		t.Fatalf("unexpected defaults: %+v", cfg.Matching)
	}
	if _, ok := cfg.Marketplaces["default"]; !ok {
		t.Fatalf("default marketplace pattern missing")
	}
}

func TestLoadConfig_Override(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[matching]
fuzzy_threshold = 90

[detect]
sku_keywords = ["seller_sku"]

[marketplaces]
ebay = '^[A-Za-z0-9]{6,}$'
default = '^[\w\-]{3,}$'
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Matching.FuzzyThreshold != 90 {
		t.Fatalf("threshold want=90 got=%d", cfg.Matching.FuzzyThreshold)
	}
	// 文件未覆盖的字段保持默认
	if cfg.Matching.ComboDelimiter != "+" {
		t.Fatalf("delimiter want=+ got=%q", cfg.Matching.ComboDelimiter)
	}
	if len(cfg.Detect.SKUKeywords) != 1 || cfg.Detect.SKUKeywords[0] != "seller_sku" {
		t.Fatalf("unexpected sku keywords: %v", cfg.Detect.SKUKeywords)
	}
	if len(cfg.Detect.OrderKeywords) == 0 {
		t.Fatalf("untouched detect keywords should keep defaults")
	}
	if _, ok := cfg.Marketplaces["ebay"]; !ok {
		t.Fatalf("ebay pattern missing after override")
	}
}

func TestLoadConfig_BadTOML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("matching = ["), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
