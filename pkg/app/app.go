// Package app 提供软键盘应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"sort"

	"github.com/decker502/softkeyboard/pkg/components"
	"github.com/decker502/softkeyboard/pkg/config"
	"github.com/decker502/softkeyboard/pkg/embedded"
	"github.com/decker502/softkeyboard/pkg/entities"
	"github.com/decker502/softkeyboard/pkg/game"
	"github.com/decker502/softkeyboard/pkg/scenes"
	"github.com/decker502/softkeyboard/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

const (
	appName            = "softkeyboard"
	baseLayoutPath     = "data/skb/qwerty.yaml"
	environmentPath    = "data/skb/environment.yaml"
	layoutGlobPattern  = "data/skb/*.yaml"
	audioSampleRate    = 48000
	defaultMaxTextSize = 256
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// LayoutPath 磁盘上的基础布局文件，为空时使用内置 qwerty 布局
	LayoutPath string
	// Watch 监视 LayoutPath 并热加载
	Watch bool
	// Dim 启动时让键盘变暗
	Dim bool
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 设置持久化，失败时降级为内存设置
	var gdataManager *gdata.Manager
	if err := utils.EnsureStorageDir(appName); err != nil {
		log.Printf("[App] Warning: storage dir not ready: %v", err)
	}
	if m, err := gdata.Open(gdata.Config{AppName: appName}); err != nil {
		log.Printf("[App] Warning: gdata unavailable, settings will not persist: %v", err)
	} else {
		gdataManager = m
	}
	settingsManager, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("设置初始化失败: %w", err)
	}

	// 初始化音频上下文（每个进程只能创建一次）
	audioContext := audio.NewContext(audioSampleRate)
	soundManager := game.NewSoundManager(audioContext, settingsManager)
	log.Printf("[App] SoundManager initialized")

	fonts, err := game.NewFontCache()
	if err != nil {
		return nil, fmt.Errorf("字体加载失败: %w", err)
	}

	env, err := loadEnvironment()
	if err != nil {
		return nil, err
	}

	layouts, err := loadLayouts(cfg.LayoutPath)
	if err != nil {
		return nil, err
	}

	var watcher *config.LayoutWatcher
	if cfg.Watch {
		if cfg.LayoutPath == "" {
			log.Printf("[App] Warning: -watch requires -layout, hot reload disabled")
		} else if watcher, err = config.NewLayoutWatcher(cfg.LayoutPath); err != nil {
			log.Printf("[App] Warning: hot reload disabled: %v", err)
			watcher = nil
		}
	}

	scene, err := scenes.NewSkbContainerScene(scenes.SkbContainerConfig{
		ScreenWidth:   config.GameWindowWidth,
		ScreenHeight:  config.GameWindowHeight,
		Layouts:       layouts,
		Environment:   env,
		Fonts:         fonts,
		Sound:         soundManager,
		Vibrator:      game.SharedVibrator(),
		Settings:      settingsManager,
		Saver:         settingsManager,
		Watcher:       watcher,
		Dim:           cfg.Dim,
		MaxTextLength: defaultMaxTextSize,
	})
	if err != nil {
		if watcher != nil {
			watcher.Stop()
		}
		return nil, fmt.Errorf("场景创建失败: %w", err)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scene)

	return &App{
		sceneManager: sceneManager,
		verbose:      cfg.Verbose,
	}, nil
}

// loadEnvironment 加载内置尺寸比例，缺失时使用默认值
func loadEnvironment() (*config.Environment, error) {
	if !embedded.Exists(environmentPath) {
		log.Printf("[App] %s not found, using default environment", environmentPath)
		return config.NewEnvironment(config.DefaultEnvironmentRatios(), config.GameWindowWidth, config.GameWindowHeight), nil
	}
	data, err := embedded.ReadFile(environmentPath)
	if err != nil {
		return nil, fmt.Errorf("环境配置读取失败: %w", err)
	}
	env, err := config.ParseEnvironment(data, config.GameWindowWidth, config.GameWindowHeight)
	if err != nil {
		return nil, fmt.Errorf("环境配置解析失败: %w", err)
	}
	return env, nil
}

// loadLayouts 加载所有内置布局，基础布局排在第一位
//
// layoutPath 非空时用磁盘文件替换同 ID 的内置布局并作为基础布局。
func loadLayouts(layoutPath string) ([]*components.SoftKeyboard, error) {
	paths, err := embedded.Glob(layoutGlobPattern)
	if err != nil {
		return nil, fmt.Errorf("布局列表读取失败: %w", err)
	}
	sort.Strings(paths)

	byID := make(map[int]*components.SoftKeyboard)
	var ids []int
	add := func(skb *components.SoftKeyboard) {
		if _, ok := byID[skb.SkbID]; !ok {
			ids = append(ids, skb.SkbID)
		}
		byID[skb.SkbID] = skb
	}

	baseID := 0
	for _, p := range paths {
		if p == environmentPath {
			continue
		}
		skb, err := entities.LoadSoftKeyboard(p)
		if err != nil {
			return nil, fmt.Errorf("布局加载失败: %w", err)
		}
		add(skb)
		if p == baseLayoutPath {
			baseID = skb.SkbID
		}
	}

	if layoutPath != "" {
		layoutCfg, err := config.LoadSkbLayoutConfig(layoutPath)
		if err != nil {
			return nil, fmt.Errorf("布局加载失败: %w", err)
		}
		skb, err := entities.NewSoftKeyboard(layoutCfg)
		if err != nil {
			return nil, fmt.Errorf("布局创建失败: %w", err)
		}
		add(skb)
		baseID = skb.SkbID
		log.Printf("[App] Using layout file %s as base layout (id=%d)", layoutPath, skb.SkbID)
	}

	base, ok := byID[baseID]
	if !ok {
		return nil, fmt.Errorf("base layout %s not found", baseLayoutPath)
	}
	layouts := []*components.SoftKeyboard{base}
	for _, id := range ids {
		if id != baseID {
			layouts = append(layouts, byID[id])
		}
	}
	log.Printf("[App] Loaded %d layouts", len(layouts))
	return layouts, nil
}

// Update 更新应用逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 窗口关闭前保存设置
	if ebiten.IsWindowBeingClosed() {
		a.sceneManager.SaveOnExit()
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
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

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
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

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
