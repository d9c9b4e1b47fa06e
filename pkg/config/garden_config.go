package config

import (
	"fmt"
	"os"

	"github.com/decker502/plantation/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultGardenConfigPath 嵌入的默认花园配置路径
const DefaultGardenConfigPath = "data/garden.yaml"

// GardenConfig 花园配置数据结构
// 包含地块布局、浇水时长、进度规则和全部作物定义
type GardenConfig struct {
	Layout      LayoutConfig           `yaml:"layout"`      // 地块网格布局
	Watering    WateringConfig         `yaml:"watering"`    // 浇水设置
	Progress    ProgressConfig         `yaml:"progress"`    // 分数与解锁规则
	Plantations []PlantationDefinition `yaml:"plantations"` // 作物定义表（按解锁顺序）
}

// LayoutConfig 地块网格布局
type LayoutConfig struct {
	Rows         int     `yaml:"rows"`         // 行数
	Columns      int     `yaml:"columns"`      // 列数
	OriginX      float64 `yaml:"originX"`      // 左上角地块中心X（像素）
	OriginY      float64 `yaml:"originY"`      // 左上角地块中心Y（像素）
	SlotSpacing  float64 `yaml:"slotSpacing"`  // 相邻地块中心间距（像素）
	GrowthOffset float64 `yaml:"growthOffset"` // 种子/生长实例相对地块的竖直偏移（像素）
}

// WateringConfig 浇水设置
type WateringConfig struct {
	// EffectDuration 浇水特效时长（秒），期间拒绝其它浇水请求
	EffectDuration float64 `yaml:"effectDuration"`
}

// ProgressConfig 分数与解锁规则
type ProgressConfig struct {
	MaxScore        int `yaml:"maxScore"`        // 达到该分数即游戏结束
	UnlockScoreStep int `yaml:"unlockScoreStep"` // 每解锁一种作物所需的分数步长
}

// PlantationDefinition 作物定义（只读内容配置）
// 多个种植记录共享同一定义的指针，运行时不得修改
type PlantationDefinition struct {
	ID                    string   `yaml:"id"`                    // 作物ID，如 "carrot"
	Name                  string   `yaml:"name"`                  // 显示名称
	Stages                []string `yaml:"stages"`                // 各生长阶段的可视资源ID（按顺序）
	StepDuration          float64  `yaml:"stepDuration"`          // 每个生长步骤时长（秒）
	HarvestWindow         float64  `yaml:"harvestWindow"`         // 成熟后到爆炸前的可收获时长（秒）
	ScoreValue            int      `yaml:"scoreValue"`            // 收获得分
	UnlockTier            int      `yaml:"unlockTier"`            // 解锁层级（0 表示初始可用）
	LivingClip            string   `yaml:"livingClip"`            // 成熟后播放的动画片段
	ExplosionClip         string   `yaml:"explosionClip"`         // 爆炸动画片段
	ExplosionClipDuration float64  `yaml:"explosionClipDuration"` // 爆炸动画时长（秒）

	unlockTierSet bool // YAML 中是否显式写出了 unlockTier
}

// UnmarshalYAML 解析作物定义，并记录 unlockTier 是否显式配置
// 显式的 0 与缺省值需要区分：缺省时按定义表顺序解锁
func (d *PlantationDefinition) UnmarshalYAML(value *yaml.Node) error {
	type plain PlantationDefinition
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*d = PlantationDefinition(p)
	d.unlockTierSet = hasMappingKey(value, "unlockTier")
	return nil
}

// hasMappingKey 检查 YAML 映射节点是否包含指定键
func hasMappingKey(node *yaml.Node, key string) bool {
	if node.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}

// GrowthStepCount 返回生长步骤数量
func (d *PlantationDefinition) GrowthStepCount() int {
	return len(d.Stages)
}

// TotalGrowthDuration 返回从浇水完成到可收获的总时长（秒）
func (d *PlantationDefinition) TotalGrowthDuration() float64 {
	return float64(len(d.Stages)) * d.StepDuration
}

// Definition 按ID查找作物定义
func (c *GardenConfig) Definition(id string) (*PlantationDefinition, bool) {
	for i := range c.Plantations {
		if c.Plantations[i].ID == id {
			return &c.Plantations[i], true
		}
	}
	return nil, false
}

// Definitions 返回全部作物定义的指针列表（与配置顺序一致）
func (c *GardenConfig) Definitions() []*PlantationDefinition {
	defs := make([]*PlantationDefinition, 0, len(c.Plantations))
	for i := range c.Plantations {
		defs = append(defs, &c.Plantations[i])
	}
	return defs
}

// LoadGardenConfig 从磁盘上的YAML文件加载花园配置
// 参数：
//
//	path - 配置文件的路径（相对或绝对路径）
//
// 返回：
//
//	*GardenConfig - 解析后的配置对象
//	error - 如果文件读取、解析或校验失败，返回错误信息
func LoadGardenConfig(path string) (*GardenConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read garden config file %s: %w", path, err)
	}

	cfg, err := ParseGardenConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefaultGardenConfig 从嵌入资源加载默认花园配置
// 调用前必须先调用 embedded.Init()
func LoadDefaultGardenConfig() (*GardenConfig, error) {
	data, err := embedded.ReadFile(DefaultGardenConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded garden config: %w", err)
	}
	return ParseGardenConfig(data)
}

// ParseGardenConfig 解析YAML数据，应用默认值并校验
func ParseGardenConfig(data []byte) (*GardenConfig, error) {
	var cfg GardenConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse garden config YAML: %w", err)
	}

	applyGardenDefaults(&cfg)

	if err := validateGardenConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid garden config: %w", err)
	}

	return &cfg, nil
}

// applyGardenDefaults 为缺失的可选字段设置默认值
func applyGardenDefaults(cfg *GardenConfig) {
	if cfg.Layout.Rows == 0 {
		cfg.Layout.Rows = DefaultRows
	}
	if cfg.Layout.Columns == 0 {
		cfg.Layout.Columns = DefaultColumns
	}
	if cfg.Layout.SlotSpacing == 0 {
		cfg.Layout.SlotSpacing = DefaultSlotSpacing
	}
	if cfg.Layout.OriginX == 0 && cfg.Layout.OriginY == 0 {
		cfg.Layout.OriginX = DefaultOriginX
		cfg.Layout.OriginY = DefaultOriginY
	}
	if cfg.Progress.UnlockScoreStep == 0 {
		cfg.Progress.UnlockScoreStep = DefaultUnlockScoreStep
	}

	for i := range cfg.Plantations {
		def := &cfg.Plantations[i]
		if def.Name == "" {
			def.Name = def.ID
		}
		// 未显式配置解锁层级时，按定义表顺序解锁
		if !def.unlockTierSet {
			def.UnlockTier = i
		}
	}

	// MaxScore、Watering.EffectDuration 为 0 是合法值（立即结束/立即浇水），无需处理
}

// validateGardenConfig 验证花园配置的完整性和合法性
func validateGardenConfig(cfg *GardenConfig) error {
	if cfg.Layout.Rows < 1 || cfg.Layout.Columns < 1 {
		return fmt.Errorf("layout must have at least one row and one column, got %dx%d", cfg.Layout.Rows, cfg.Layout.Columns)
	}
	if cfg.Layout.SlotSpacing < 0 {
		return fmt.Errorf("layout.slotSpacing cannot be negative")
	}
	if cfg.Watering.EffectDuration < 0 {
		return fmt.Errorf("watering.effectDuration cannot be negative")
	}
	if cfg.Progress.MaxScore < 1 {
		return fmt.Errorf("progress.maxScore must be at least 1, got %d", cfg.Progress.MaxScore)
	}
	if cfg.Progress.UnlockScoreStep < 1 {
		return fmt.Errorf("progress.unlockScoreStep must be at least 1, got %d", cfg.Progress.UnlockScoreStep)
	}
	if len(cfg.Plantations) == 0 {
		return fmt.Errorf("at least one plantation definition is required")
	}

	seen := make(map[string]bool, len(cfg.Plantations))
	for i, def := range cfg.Plantations {
		if def.ID == "" {
			return fmt.Errorf("plantation %d: id is required", i)
		}
		if seen[def.ID] {
			return fmt.Errorf("plantation %d: duplicate id %q", i, def.ID)
		}
		seen[def.ID] = true

		if len(def.Stages) == 0 {
			return fmt.Errorf("plantation %s: at least one growth stage is required", def.ID)
		}
		for j, stage := range def.Stages {
			if stage == "" {
				return fmt.Errorf("plantation %s: stage %d has an empty visual id", def.ID, j)
			}
		}
		if def.StepDuration < 0 || def.HarvestWindow < 0 || def.ExplosionClipDuration < 0 {
			return fmt.Errorf("plantation %s: durations cannot be negative", def.ID)
		}
		if def.ScoreValue < 0 {
			return fmt.Errorf("plantation %s: scoreValue cannot be negative, got %d", def.ID, def.ScoreValue)
		}
		if def.UnlockTier < 0 {
			return fmt.Errorf("plantation %s: unlockTier cannot be negative, got %d", def.ID, def.UnlockTier)
		}
		// 解锁层级最多提升到作物数量，超出的层级永远无法解锁
		if def.UnlockTier >= len(cfg.Plantations) {
			return fmt.Errorf("plantation %s: unlockTier %d is unreachable with %d plantations", def.ID, def.UnlockTier, len(cfg.Plantations))
		}
		if def.LivingClip == "" || def.ExplosionClip == "" {
			return fmt.Errorf("plantation %s: livingClip and explosionClip are required", def.ID)
		}
	}

	// 初始层级必须至少有一种作物可用
	if cfg.Plantations[0].UnlockTier != 0 {
		return fmt.Errorf("plantation %s: the first plantation must have unlockTier 0", cfg.Plantations[0].ID)
	}

	return nil
}
