package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 应用配置
type AppConfig struct {
	Data         DataConfig        `toml:"data"`
	Matching     MatchingConfig    `toml:"matching"`
	Detect       DetectConfig      `toml:"detect"`
	Marketplaces map[string]string `toml:"marketplaces"` // 渠道 -> SKU 校验正则
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// MatchingConfig 匹配配置
type MatchingConfig struct {
	FuzzyThreshold int    `toml:"fuzzy_threshold"` // 模糊匹配阈值，0-100
	ComboDelimiter string `toml:"combo_delimiter"` // 组合装分隔符
}

// DetectConfig 列探测关键字，按优先级排列
// 默认关键字覆盖常见渠道导出；列名特殊的渠道在此覆盖
type DetectConfig struct {
	SKUKeywords   []string `toml:"sku_keywords"`
	MSKUKeywords  []string `toml:"msku_keywords"`
	OrderKeywords []string `toml:"order_keywords"`
	PriceKeywords []string `toml:"price_keywords"`
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Data: DataConfig{
			DataDir: "data",
		},
		Matching: MatchingConfig{
			FuzzyThreshold: 80,
			ComboDelimiter: "+",
		},
		Detect: DetectConfig{
			SKUKeywords:   []string{"sku", "stock", "product_id"},
			MSKUKeywords:  []string{"msku", "master_sku", "parent_sku", "base_product"},
			OrderKeywords: []string{"order", "id"},
			PriceKeywords: []string{"price", "amount", "revenue"},
		},
		Marketplaces: map[string]string{
			"amazon":  `^[A-Z0-9]{10}$`,
			"shopify": `^[a-zA-Z0-9_\-]{5,}$`,
			"default": `^[\w\-]{3,}$`,
		},
	}
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig 加载配置
// path 为空时读取可执行文件同目录下的 config.toml；
// 文件不存在时返回默认配置
func LoadConfig(path string) (*AppConfig, error) {
	config := DefaultConfig()

	if path == "" {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		path = filepath.Join(exeDir, "config.toml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// 文件中给出的关键字列表整项覆盖默认值，先清掉对应默认项
	clearSpecifiedKeywordDefaults(config, data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// clearSpecifiedKeywordDefaults 清除文件中显式给出的探测关键字默认值
func clearSpecifiedKeywordDefaults(config *AppConfig, data []byte) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return
	}
	detect, ok := raw["detect"].(map[string]any)
	if !ok {
		return
	}

	if _, ok := detect["sku_keywords"]; ok {
		config.Detect.SKUKeywords = nil
	}
	if _, ok := detect["msku_keywords"]; ok {
		config.Detect.MSKUKeywords = nil
	}
	if _, ok := detect["order_keywords"]; ok {
		config.Detect.OrderKeywords = nil
	}
	if _, ok := detect["price_keywords"]; ok {
		config.Detect.PriceKeywords = nil
	}
}

// EnsureDataDir 确保数据目录存在，返回绝对路径
func EnsureDataDir(cfg *AppConfig) (string, error) {
	dir := cfg.Data.DataDir
	if dir == "" {
		dir = "data"
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return "", err
	}
	return abs, nil
}
