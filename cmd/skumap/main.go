package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"skumap/internal/config"
	"skumap/internal/exporter"
	"skumap/internal/mapper"
	"skumap/internal/metrics"
	"skumap/internal/model"
	"skumap/internal/parser"
	"skumap/internal/processor"
	"skumap/internal/store"
)

var (
	configPath  = flag.String("config", "", "配置文件路径 (默认读取可执行文件同目录 config.toml)")
	masterPath  = flag.String("master", "", "主 SKU 映射文件 (csv/xlsx，必填)")
	marketplace = flag.String("marketplace", "", "销售渠道 (amazon/shopify，留空用 default 口径)")
	threshold   = flag.Int("threshold", 0, "模糊匹配阈值 0-100 (覆盖配置文件)")
	outPath     = flag.String("out", "", "标注结果导出路径 (.csv/.xlsx)")
	dbPath      = flag.String("db", "", "SQLite 数据库路径 (留空不持久化)")
	verbose     = flag.Bool("v", false, "输出逐行诊断信息")
)

// comboArg 命令行注册的组合装
type comboArg struct {
	skus []string
	msku string
}

func main() {
	var combos []comboArg
	flag.Func("combo", `注册组合装: "SKU1,SKU2=MSKU" (可重复)`, func(s string) error {
		arg, err := parseComboArg(s)
		if err != nil {
			return err
		}
		combos = append(combos, arg)
		return nil
	})
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  skumap - 多渠道 SKU 映射与汇总工具")
	fmt.Println("==========================================")

	if *masterPath == "" {
		fmt.Println("用法: skumap -master master.csv [选项] 销售文件...")
		flag.PrintDefaults()
		os.Exit(2)
	}
	salesFiles := flag.Args()

	// 加载配置
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Printf("加载配置失败，使用默认配置: %v", err)
		cfg = config.DefaultConfig()
	}
	if *threshold > 0 {
		cfg.Matching.FuzzyThreshold = *threshold
	}

	validator, err := mapper.NewValidator(cfg.Marketplaces)
	if err != nil {
		log.Fatalf("校验规则无效: %v", err)
	}
	registry := mapper.NewComboRegistry(cfg.Matching.ComboDelimiter)

	// 打开数据库（可选）
	var db *store.Store
	if *dbPath != "" {
		db, err = store.New(*dbPath)
		if err != nil {
			log.Fatalf("打开数据库失败: %v", err)
		}
		defer db.Close()

		// 恢复历史注册的组合装
		saved, err := db.LoadCombos()
		if err != nil {
			log.Fatalf("加载组合装失败: %v", err)
		}
		for _, c := range saved {
			registry.Register(registry.Split(c.Key), c.MSKU)
		}
		if len(saved) > 0 {
			fmt.Printf("已加载 %d 个组合装\n", len(saved))
		}
	}

	// 注册命令行指定的组合装
	for _, c := range combos {
		registry.Register(c.skus, c.msku)
	}

	// 加载主映射表
	skuDetector := parser.NewDetector(cfg.Detect.SKUKeywords...)
	mskuDetector := parser.NewDetector(cfg.Detect.MSKUKeywords...)
	master, err := mapper.LoadMasterTable(*masterPath, skuDetector, mskuDetector)
	if err != nil {
		log.Fatalf("加载主映射表失败: %v", err)
	}
	fmt.Printf("主映射表: %d 条记录\n", master.Len())

	if db != nil {
		if err := db.ReplaceMaster(master.Records()); err != nil {
			log.Printf("保存主映射快照失败: %v", err)
		}
		for _, c := range registry.All() {
			if err := db.SaveCombo(c.Key, c.MSKU); err != nil {
				log.Printf("保存组合装失败: %v", err)
			}
		}
	}

	if len(salesFiles) == 0 {
		fmt.Println("未指定销售文件，仅完成映射表加载")
		return
	}

	// 逐文件批处理
	engine := mapper.NewEngine(master, registry, validator, cfg.Matching.FuzzyThreshold)
	proc := processor.NewProcessor(engine, skuDetector)

	var annotated []*model.Dataset
	for _, path := range salesFiles {
		result, err := proc.ProcessFile(path, *marketplace)
		if err != nil {
			log.Fatalf("处理 %s 失败: %v", path, err)
		}

		fmt.Printf("%s: %d 行，未映射 %d 行 (批次 %s)\n",
			result.SourceFile, result.TotalRows, result.Unmapped, result.BatchID)
		if *verbose {
			for _, d := range result.Diagnostics {
				if d.SKU == "" {
					continue
				}
				fmt.Printf("  [%s] 第 %d 行 %s: %s\n", d.Level, d.Row, d.SKU, d.Message)
			}
		}

		if db != nil {
			if err := db.InsertBatchLog(result.BatchID, result.SourceFile,
				result.Marketplace, result.TotalRows, result.Unmapped, result.Duration); err != nil {
				log.Printf("记录批处理日志失败: %v", err)
			}
		}

		annotated = append(annotated, result.Dataset)
	}

	// 汇总指标
	aggregator := metrics.NewAggregator(
		parser.NewDetector(cfg.Detect.OrderKeywords...),
		parser.NewDetector(cfg.Detect.PriceKeywords...),
	)
	record, err := aggregator.Aggregate(annotated...)
	if err != nil {
		log.Fatalf("汇总失败: %v", err)
	}

	fmt.Println("------------------------------------------")
	fmt.Printf("订单总数:   %d\n", record.TotalOrders)
	fmt.Printf("营收合计:   %s\n", record.TotalRevenue.String())
	fmt.Printf("去重产品数: %d\n", record.UniqueProducts)
	fmt.Printf("平均客单价: %s\n", record.AvgOrderValue.String())

	// 导出标注结果
	if *outPath != "" {
		combined := model.Concat(annotated...)
		if err := exporter.WriteFile(combined, *outPath); err != nil {
			log.Fatalf("导出失败: %v", err)
		}
		fmt.Printf("标注结果已导出: %s\n", *outPath)
	}
}

// parseComboArg 解析 "SKU1,SKU2=MSKU" 形式的组合装参数
func parseComboArg(s string) (comboArg, error) {
	left, msku, found := strings.Cut(s, "=")
	msku = strings.TrimSpace(msku)
	if !found || msku == "" {
		return comboArg{}, fmt.Errorf("组合装格式应为 \"SKU1,SKU2=MSKU\": %q", s)
	}

	var skus []string
	for _, p := range strings.Split(left, ",") {
		if p = strings.TrimSpace(p); p != "" {
			skus = append(skus, p)
		}
	}
	if len(skus) < 2 {
		return comboArg{}, fmt.Errorf("组合装至少需要两个 SKU: %q", s)
	}

	return comboArg{skus: skus, msku: msku}, nil
}
