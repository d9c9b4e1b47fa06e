package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/decker502/plantation/pkg/app"
	"github.com/decker502/plantation/pkg/config"
	"github.com/decker502/plantation/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试日志")
	configPath = flag.String("config", "", "花园配置文件路径（默认使用内置配置）")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	a, err := app.NewApp(app.Config{
		Verbose:          *verbose,
		GardenConfigPath: *configPath,
	})
	if err != nil {
		// 非 verbose 模式下日志已被丢弃，错误直接输出到 stderr
		fmt.Fprintf(os.Stderr, "启动失败: %v\n", err)
		os.Exit(1)
	}
	defer a.Shutdown()

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Plantation")

	if err := ebiten.RunGame(a); err != nil {
		log.Fatal(err)
	}
}
