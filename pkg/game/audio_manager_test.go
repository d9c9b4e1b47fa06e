package game

import (
	"encoding/binary"
	"testing"
)

// TestSynthesizeTone 测试合成音的长度和格式
func TestSynthesizeTone(t *testing.T) {
	const sampleRate = 48000
	spec := toneSpec{Frequency: 440, Slide: 1, Duration: 0.1}

	pcm := synthesizeTone(spec, sampleRate)

	// 16 位立体声：每个采样 4 字节
	if want := 4800 * 4; len(pcm) != want {
		t.Fatalf("len(pcm) = %d, want %d", len(pcm), want)
	}

	// 左右声道相同
	for i := 0; i < len(pcm); i += 4 {
		left := binary.LittleEndian.Uint16(pcm[i:])
		right := binary.LittleEndian.Uint16(pcm[i+2:])
		if left != right {
			t.Fatalf("sample %d: left %d != right %d", i/4, left, right)
		}
	}

	if synthesizeTone(toneSpec{Duration: 0}, sampleRate) != nil {
		t.Error("Zero duration should produce no data")
	}
}

// TestSoundTonesCoverAllEvents 每种事件都有合成参数
func TestSoundTonesCoverAllEvents(t *testing.T) {
	for event := SoundPlant; event <= SoundFinish; event++ {
		if _, ok := soundTones[event]; !ok {
			t.Errorf("No tone configured for %s", event)
		}
	}
}

// TestAudioManagerWithoutContext 没有音频上下文时 Notify 不应 panic
func TestAudioManagerWithoutContext(t *testing.T) {
	am := NewAudioManager(nil, NewSettingsManager(nil))
	for event := SoundPlant; event <= SoundFinish; event++ {
		am.Notify(event)
	}

	// 音效关闭时直接返回
	sm := NewSettingsManager(nil)
	sm.SetSoundEnabled(false)
	NewAudioManager(nil, sm).Notify(SoundPlant)
}

// TestAudioManagerEventVolume 播放音量来自设置管理器
func TestAudioManagerEventVolume(t *testing.T) {
	if got := NewAudioManager(nil, nil).eventVolume(SoundPlant); got != DefaultSettings().Volume {
		t.Errorf("eventVolume without settings = %v, want default %v", got, DefaultSettings().Volume)
	}

	sm := NewSettingsManager(nil)
	sm.SetEventMuted(SoundWater, true)
	am := NewAudioManager(nil, sm)
	if got := am.eventVolume(SoundWater); got != 0 {
		t.Errorf("eventVolume(water) = %v, want 0", got)
	}
	if got := am.eventVolume(SoundHarvest); got != DefaultSettings().Volume {
		t.Errorf("eventVolume(harvest) = %v, want %v", got, DefaultSettings().Volume)
	}
}
