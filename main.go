package main

import (
	"context"
	"log"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/LihanCai/Desktop-Pet/config"
	"github.com/LihanCai/Desktop-Pet/internal/game"
	"github.com/LihanCai/Desktop-Pet/internal/monitor"
	"github.com/LihanCai/Desktop-Pet/internal/tray"
)

func main() {
	// 1. 读配置，找不到就用默认的
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. 基础窗口设置
	ebiten.SetWindowDecorated(false) // 无边框
	ebiten.SetWindowFloating(true)   // 始终置顶
	ebiten.SetWindowTitle("Desktop Pet")
	ebiten.SetScreenClearedEveryFrame(false)
	ebiten.SetTPS(cfg.IdleTPS)

	// 3. 后台消息：托盘点击、配置热更新、系统监控
	actions := make(chan tray.Action, 4)
	reloads := make(chan *config.Config, 1)
	stats := make(chan monitor.Stats, 1)

	t, err := tray.New(cfg.IconPath, actions)
	if err != nil {
		log.Fatal(err)
	}

	if err := config.Watch(ctx, config.DefaultPath, reloads); err != nil {
		log.Printf("config: hot reload disabled: %v", err)
	}
	go monitor.Run(ctx, 2*time.Second, stats)

	// 4. 初始化宠物 (这里面会计算并设置窗口大小)
	seed := uint64(time.Now().UnixNano())
	mgr := game.NewManager(cfg, rand.New(rand.NewPCG(seed, seed>>1)), game.Channels{
		Tray:    actions,
		Reloads: reloads,
		Stats:   stats,
	})
	if err := mgr.Init(); err != nil {
		log.Fatal(err)
	}

	// 5. 启动
	t.Start()
	err = ebiten.RunGameWithOptions(mgr, &ebiten.RunGameOptions{
		ScreenTransparent: true, // 透明背景
		SkipTaskbar:       true,
	})
	t.Stop()
	if err != nil {
		log.Fatal(err)
	}

	// 6. 记住退出时的位置
	if cfg.RememberPosition {
		pos := mgr.FinalPosition()
		cfg.WindowX, cfg.WindowY = pos.X, pos.Y
		if err := config.Save(cfg, config.DefaultPath); err != nil {
			log.Printf("config: save position: %v", err)
		}
	}
}
