package main

import (
	"flag"
	"log"

	"github.com/decker502/softkeyboard/data"
	"github.com/decker502/softkeyboard/pkg/app"
	"github.com/decker502/softkeyboard/pkg/config"
	"github.com/decker502/softkeyboard/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志")
	layoutPath := flag.String("layout", "", "基础布局 YAML 文件（默认使用内置 qwerty）")
	watch := flag.Bool("watch", false, "监视 -layout 文件并热加载")
	dim := flag.Bool("dim", false, "启动时让键盘变暗")
	flag.Parse()

	// 初始化嵌入资源
	embedded.Init(data.FS)

	softKeyboardApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		LayoutPath: *layoutPath,
		Watch:      *watch,
		Dim:        *dim,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Soft Keyboard")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(softKeyboardApp); err != nil {
		log.Fatal(err)
	}
}
