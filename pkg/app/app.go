// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，
// main.go 只负责解析参数、初始化嵌入资源并启动 ebiten 游戏循环。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/plantation/pkg/config"
	"github.com/decker502/plantation/pkg/game"
	"github.com/decker502/plantation/pkg/scenes"
	"github.com/decker502/plantation/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储使用的应用名
const AppName = "plantation"

// SampleRate 音频采样率
const SampleRate = 48000

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// GardenConfigPath 花园配置文件路径，为空时使用嵌入的默认配置
	GardenConfigPath string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settings                 *game.SettingsManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 使用嵌入的默认配置时，调用此函数前必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gardenConfig, err := LoadGardenConfig(cfg.GardenConfigPath)
	if err != nil {
		return nil, err
	}

	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	// gdata 不可用时降级为仅内存（不保存设置和最佳时间）
	gdataManager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable, settings will not persist: %v", err)
		gdataManager = nil
	}
	settings := game.NewSettingsManager(gdataManager)
	bestTimes := game.NewBestTimeStore(gdataManager)

	audioContext := audio.NewContext(SampleRate)
	audioManager := game.NewAudioManager(audioContext, settings)
	log.Printf("[App] AudioManager initialized")

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func() game.Scene {
		scene, err := scenes.NewGardenScene(gardenConfig, scenes.GardenSceneDeps{
			SceneManager: sceneManager,
			Input:        nil, // 默认使用 ebiten 输入
			Audio:        audioManager,
			Settings:     settings,
			BestTimes:    bestTimes,
		})
		if err != nil {
			log.Printf("[App] Failed to create garden scene: %v", err)
			return nil
		}
		return scene
	})

	sceneManager.StartNewGame()
	if sceneManager.GetCurrentScene() == nil {
		return nil, fmt.Errorf("failed to create the first garden scene")
	}

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		verbose:      cfg.Verbose,
	}, nil
}

// LoadGardenConfig 按路径加载花园配置，路径为空时加载嵌入的默认配置
func LoadGardenConfig(path string) (*config.GardenConfig, error) {
	if path == "" {
		cfg, err := config.LoadDefaultGardenConfig()
		if err != nil {
			return nil, fmt.Errorf("默认花园配置加载失败: %w", err)
		}
		log.Printf("[Config] Loaded embedded garden config (%d plantations)", len(cfg.Plantations))
		return cfg, nil
	}

	cfg, err := config.LoadGardenConfig(path)
	if err != nil {
		return nil, fmt.Errorf("花园配置加载失败: %w", err)
	}
	log.Printf("[Config] Loaded garden config %s (%d plantations)", path, len(cfg.Plantations))
	return cfg, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Shutdown 退出前保存设置
func (a *App) Shutdown() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save settings: %v", err)
	}
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
