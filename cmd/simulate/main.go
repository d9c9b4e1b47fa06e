// simulate 在无界面的情况下运行花园核心，用于验证计时和计分规则
//
// 模拟玩家按固定策略操作：每帧在空地块上播种、对已播种地块浇水、
// 收获所有成熟作物（或在 idle 策略下什么都不收获），并打印事件记录。
//
// 用法:
//
//	go run ./cmd/simulate --config data/garden.yaml --duration 300
//	go run ./cmd/simulate --strategy idle --duration 60 --yaml
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/plantation/pkg/components"
	"github.com/decker502/plantation/pkg/config"
	"github.com/decker502/plantation/pkg/ecs"
	"github.com/decker502/plantation/pkg/game"
	"github.com/decker502/plantation/pkg/systems"
	"gopkg.in/yaml.v3"
)

var (
	configPath = flag.String("config", "data/garden.yaml", "花园配置文件路径")
	duration   = flag.Float64("duration", 300, "最长模拟时间（秒）")
	tps        = flag.Int("tps", 60, "每秒更新次数")
	strategy   = flag.String("strategy", "greedy", "玩家策略: greedy（收获所有成熟作物）| idle（从不收获）")
	yamlOut    = flag.Bool("yaml", false, "以 YAML 输出结果摘要")
	verbose    = flag.Bool("verbose", false, "显示核心系统日志")
)

// Summary 模拟结果摘要
type Summary struct {
	Strategy   string         `yaml:"strategy"`
	Score      int            `yaml:"score"`
	UnlockTier int            `yaml:"unlockTier"`
	GameOver   bool           `yaml:"gameOver"`
	Elapsed    float64        `yaml:"elapsed"`
	Events     map[string]int `yaml:"events"`
}

// eventLog 记录核心发出的音效事件，作为事件轨迹
type eventLog struct {
	clock  *systems.Scheduler
	out    io.Writer
	counts map[string]int
}

func (e *eventLog) Notify(event game.SoundEvent) {
	e.counts[event.String()]++
	fmt.Fprintf(e.out, "[%7.2fs] %s\n", e.clock.Now(), event)
}

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}
	if *strategy != "greedy" && *strategy != "idle" {
		fmt.Fprintf(os.Stderr, "unknown strategy %q\n", *strategy)
		os.Exit(2)
	}
	if *tps <= 0 {
		fmt.Fprintln(os.Stderr, "tps must be positive")
		os.Exit(2)
	}

	cfg, err := config.LoadGardenConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	summary, err := run(cfg, *strategy, *duration, *tps, os.Stdout, *yamlOut)
	if err != nil {
		fmt.Fprintf(os.Stderr, "simulate: %v\n", err)
		os.Exit(1)
	}

	if *yamlOut {
		out, err := yaml.Marshal(summary)
		if err != nil {
			fmt.Fprintf(os.Stderr, "marshal summary: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(out)
		return
	}

	fmt.Printf("\nstrategy=%s score=%d tier=%d gameOver=%v elapsed=%.2fs\n",
		summary.Strategy, summary.Score, summary.UnlockTier, summary.GameOver, summary.Elapsed)
}

// run 按策略推进花园直到游戏结束或达到时长上限
func run(cfg *config.GardenConfig, strategy string, maxSeconds float64, tps int, out io.Writer, quiet bool) (*Summary, error) {
	events := &eventLog{out: out, counts: make(map[string]int)}
	if quiet {
		events.out = io.Discard
	}

	g, err := systems.NewGarden(cfg, systems.GardenDeps{Audio: events})
	if err != nil {
		return nil, err
	}
	events.clock = g.Scheduler

	dt := 1.0 / float64(tps)
	for tick := 0; float64(tick)*dt < maxSeconds && !g.Progress.IsGameOver(); tick++ {
		act(g, strategy)
		g.Update(dt)
		if err := g.Registry.Validate(); err != nil {
			return nil, fmt.Errorf("tick %d: %w", tick, err)
		}
	}

	return &Summary{
		Strategy:   strategy,
		Score:      g.Progress.GetScore(),
		UnlockTier: g.Progress.UnlockTier(),
		GameOver:   g.Progress.IsGameOver(),
		Elapsed:    g.Progress.Elapsed(),
		Events:     events.counts,
	}, nil
}

// act 一帧的玩家操作
func act(g *systems.Garden, strategy string) {
	// 优先选择最新解锁的作物
	for g.Selector.Active() != lastUnlocked(g) {
		if !g.Selector.Cycle() {
			break
		}
	}

	for _, slot := range g.Registry.Slots() {
		tag, _ := g.Registry.Tag(slot)
		switch tag {
		case components.SlotEmpty:
			plant(g, slot, g.Selector.Active())
		default:
			if g.Registry.IsWatered(slot) {
				if strategy == "greedy" {
					harvest(g, slot)
				}
				continue
			}
			g.Water(slot)
		}
	}
}

func plant(g *systems.Garden, slot ecs.EntityID, def *config.PlantationDefinition) {
	if err := g.Planting.RequestPlant(slot, def); err != nil {
		log.Printf("[simulate] plant slot %d: %v", slot, err)
	}
}

func harvest(g *systems.Garden, slot ecs.EntityID) {
	if _, err := g.Harvest(slot); err != nil {
		log.Printf("[simulate] harvest slot %d: %v", slot, err)
	}
}

func lastUnlocked(g *systems.Garden) *config.PlantationDefinition {
	unlocked := g.Selector.Unlocked()
	return unlocked[len(unlocked)-1]
}
