package components

import "github.com/decker502/plantation/pkg/ecs"

// GrowthStageComponent 生长阶段的可视实例
// 每次生长步骤完成时，旧实例被销毁并由下一阶段的实例替换
type GrowthStageComponent struct {
	Slot     ecs.EntityID // 所属地块
	Stage    int          // 阶段索引（0-based）
	VisualID string       // 阶段可视资源ID，如 "carrot_sprout"

	// 当前播放的动画片段（"living"/"explosion" 终态片段），空表示静止
	Clip string
	// ClipTime 当前片段已播放时间（秒），由渲染侧推进
	ClipTime float64
}
