package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// GardenSettings 花园的音效设置
type GardenSettings struct {
	Volume       float64  `yaml:"volume"`       // 音效音量 0.0 ~ 1.0
	SoundEnabled bool     `yaml:"soundEnabled"` // 音效总开关
	MutedEvents  []string `yaml:"mutedEvents"`  // 单独静音的事件名（SoundEvent.String()）
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GardenSettings {
	return &GardenSettings{
		Volume:       0.5,
		SoundEnabled: true,
	}
}

// isMuted 检查事件是否被单独静音
func (s *GardenSettings) isMuted(event SoundEvent) bool {
	name := event.String()
	for _, muted := range s.MutedEvents {
		if muted == name {
			return true
		}
	}
	return false
}

// SettingsManager 设置管理器
// 负责音效设置的加载、保存；AudioManager 每次播放前读取
type SettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存）
	settings     *GardenSettings
}

const (
	settingsObject   = "settings"
	settingsProperty = "audio"
)

// NewSettingsManager 创建设置管理器，加载失败时记录警告并使用默认设置
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.Volume = clampVolume(loaded.Volume)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded (volume=%.2f, muted=%v)", loaded.Volume, loaded.MutedEvents)
	return nil
}

// Save 保存设置到 gdata，降级模式下直接返回 nil
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *GardenSettings {
	return sm.settings
}

// SetVolume 设置音效音量（限制在 0.0 ~ 1.0），需调用 Save() 持久化
func (sm *SettingsManager) SetVolume(volume float64) {
	sm.settings.Volume = clampVolume(volume)
}

// SetSoundEnabled 设置音效总开关
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}

// SetEventMuted 单独静音或恢复某个事件的音效
func (sm *SettingsManager) SetEventMuted(event SoundEvent, muted bool) {
	name := event.String()
	kept := sm.settings.MutedEvents[:0]
	for _, existing := range sm.settings.MutedEvents {
		if existing != name {
			kept = append(kept, existing)
		}
	}
	if muted {
		kept = append(kept, name)
	}
	sm.settings.MutedEvents = kept
}

// EventVolume 返回事件实际播放的音量
// 总开关关闭或事件被静音时返回 0
func (sm *SettingsManager) EventVolume(event SoundEvent) float64 {
	if !sm.settings.SoundEnabled || sm.settings.isMuted(event) {
		return 0
	}
	return sm.settings.Volume
}

// clampVolume 将音量值限制在 0.0 ~ 1.0 范围内
func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
