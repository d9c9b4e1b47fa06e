package game

import (
	"encoding/binary"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// toneSpec 音效合成参数
type toneSpec struct {
	Frequency float64 // 起始频率（Hz）
	Slide     float64 // 结束频率相对起始频率的倍数（1 表示不变）
	Duration  float64 // 时长（秒）
}

// soundTones 每种事件对应的合成音
// 游戏不携带音频资源，音效由正弦波即时合成
var soundTones = map[SoundEvent]toneSpec{
	SoundPlant:           {Frequency: 440, Slide: 1.2, Duration: 0.12},
	SoundWater:           {Frequency: 300, Slide: 0.7, Duration: 0.40},
	SoundHarvest:         {Frequency: 660, Slide: 1.5, Duration: 0.20},
	SoundReady:           {Frequency: 880, Slide: 1.0, Duration: 0.08},
	SoundExplosion:       {Frequency: 120, Slide: 0.4, Duration: 0.50},
	SoundChangeInventory: {Frequency: 520, Slide: 1.0, Duration: 0.06},
	SoundFinish:          {Frequency: 523, Slide: 2.0, Duration: 0.80},
}

// AudioManager 音频管理器
// 职责：
//   - 实现 AudioNotifier，把核心逻辑的事件转成音效
//   - 按 SettingsManager 给出的事件音量播放（总开关、单事件静音）
//
// audio.Context 为 nil 时（测试、无音频设备）只记录日志
type AudioManager struct {
	context         *audio.Context
	settingsManager *SettingsManager
	soundPlayers    map[SoundEvent]*audio.Player // 音效播放器缓存
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文，可为 nil
//   - sm: 设置管理器，可为 nil（使用默认音量）
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		context:         ctx,
		settingsManager: sm,
		soundPlayers:    make(map[SoundEvent]*audio.Player),
	}
}

// Notify 实现 AudioNotifier：播放事件对应的音效
func (am *AudioManager) Notify(event SoundEvent) {
	volume := am.eventVolume(event)
	if volume <= 0 {
		return
	}

	if am.context == nil {
		log.Printf("[AudioManager] %s", event)
		return
	}

	player := am.getSoundPlayer(event)
	if player == nil {
		return
	}

	player.SetVolume(volume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", event, err)
	}
	player.Play()
}

// getSoundPlayer 获取或创建事件的播放器
func (am *AudioManager) getSoundPlayer(event SoundEvent) *audio.Player {
	if player, ok := am.soundPlayers[event]; ok {
		return player
	}

	spec, ok := soundTones[event]
	if !ok {
		log.Printf("[AudioManager] Warning: No tone configured for %s", event)
		return nil
	}

	player := am.context.NewPlayerFromBytes(synthesizeTone(spec, am.context.SampleRate()))
	am.soundPlayers[event] = player
	return player
}

// eventVolume 获取事件的播放音量，没有设置管理器时使用默认音量
func (am *AudioManager) eventVolume(event SoundEvent) float64 {
	if am.settingsManager == nil {
		return DefaultSettings().Volume
	}
	return am.settingsManager.EventVolume(event)
}

// synthesizeTone 生成 16 位小端立体声 PCM 数据（ebiten audio 的默认格式）
// 频率从 Frequency 线性滑向 Frequency*Slide，并带有线性衰减包络
func synthesizeTone(spec toneSpec, sampleRate int) []byte {
	samples := int(spec.Duration * float64(sampleRate))
	if samples <= 0 {
		return nil
	}

	buf := make([]byte, samples*4)
	phase := 0.0
	for i := 0; i < samples; i++ {
		progress := float64(i) / float64(samples)
		freq := spec.Frequency * (1 + (spec.Slide-1)*progress)
		phase += 2 * math.Pi * freq / float64(sampleRate)

		envelope := 1 - progress
		value := int16(math.Sin(phase) * envelope * 0.3 * math.MaxInt16)

		binary.LittleEndian.PutUint16(buf[i*4:], uint16(value))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(value))
	}
	return buf
}
