package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/fishy-escape/internal/launch"
	"github.com/gonewx/fishy-escape/pkg/app"
	"github.com/gonewx/fishy-escape/pkg/config"
	"github.com/gonewx/fishy-escape/pkg/embedded"
)

func main() {
	opts, err := launch.ParseOS("fishy-escape")
	if err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		log.Fatalf("启动参数错误: %v", err)
	}

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameConfig, err := opts.LoadGameConfig()
	if err != nil {
		log.Fatalf("游戏配置加载失败: %v", err)
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:    opts.Verbose,
		GameConfig: gameConfig,
		Seed:       opts.Seed,
		EventsAddr: opts.EventsAddr,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}
	defer gameApp.Close()

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Fishy Escape")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if opts.Fullscreen || gameApp.Settings().GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
