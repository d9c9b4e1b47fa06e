//go:build ignore

// validate_yaml 校验花园配置文件
//
// 用法:
//
//	go run tools/validate_yaml.go [data/garden.yaml]
package main

import (
	"fmt"
	"os"

	"github.com/decker502/plantation/pkg/config"
)

func main() {
	path := config.DefaultGardenConfigPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.LoadGardenConfig(path)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ %s 格式正确\n", path)
	fmt.Printf("✅ 地块网格: %dx%d, 浇水 %.1fs\n", cfg.Layout.Rows, cfg.Layout.Columns, cfg.Watering.EffectDuration)
	fmt.Printf("✅ 分数上限 %d, 每 %d 分解锁一种作物\n", cfg.Progress.MaxScore, cfg.Progress.UnlockScoreStep)
	for _, def := range cfg.Plantations {
		fmt.Printf("   - %-10s 层级 %d, %d 步 x %.1fs = %.1fs, 窗口 %.1fs, %d 分\n",
			def.ID, def.UnlockTier, def.GrowthStepCount(), def.StepDuration, def.TotalGrowthDuration(), def.HarvestWindow, def.ScoreValue)
	}
}
