package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/pomodoro/pkg/app"
	"github.com/decker502/pomodoro/pkg/embedded"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	configPath := flag.String("config", "", "外部配置文件路径，覆盖内置的 data/pomodoro.yaml")
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	pomodoro, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
	})
	if err != nil {
		// 非 verbose 模式下 log 已被静默
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := pomodoro.Close(); err != nil {
			log.Printf("[Main] Warning: %v", err)
		}
	}()

	window := pomodoro.WindowConfig()
	ebiten.SetWindowSize(window.Width, window.Height)
	ebiten.SetWindowTitle(window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(window.TPS)

	if err := ebiten.RunGame(pomodoro); err != nil {
		fmt.Fprintf(os.Stderr, "运行失败: %v\n", err)
	}
}
