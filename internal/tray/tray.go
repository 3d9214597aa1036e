package tray

import (
	"context"
	"fmt"
	"os"

	"fyne.io/systray"
)

// Action 托盘菜单被点了哪一项
type Action int

const (
	ActionExit Action = iota
	ActionShow
)

func (a Action) String() string {
	switch a {
	case ActionExit:
		return "exit"
	case ActionShow:
		return "show"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Tray 系统托盘图标 + 菜单（退出 / 显示）
type Tray struct {
	icon    []byte
	actions chan<- Action
	end     func()
	cancel  context.CancelFunc
}

// New 读取图标文件。图标不存在是启动时的致命错误，交给调用方处理
func New(iconPath string, actions chan<- Action) (*Tray, error) {
	icon, err := os.ReadFile(iconPath)
	if err != nil {
		return nil, fmt.Errorf("read tray icon: %w", err)
	}
	return &Tray{icon: icon, actions: actions}, nil
}

// Start 在 ebiten 的主循环之外挂上托盘
// systray 的点击事件从它自己的 goroutine 过来，这里只负责转发到 actions
func (t *Tray) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel

	start, end := systray.RunWithExternalLoop(func() {
		systray.SetIcon(t.icon)
		systray.SetTooltip("Desktop Pet")

		quit := systray.AddMenuItem("Exit", "Quit the pet")
		quit.SetIcon(t.icon)
		show := systray.AddMenuItem("Show", "Show the pet again")

		go Forward(ctx, quit.ClickedCh, show.ClickedCh, t.actions)
	}, func() {})

	t.end = end
	start()
}

// Stop 拆掉托盘图标
func (t *Tray) Stop() {
	if t.cancel != nil {
		t.cancel()
	}
	if t.end != nil {
		t.end()
	}
}

// Forward 把两个菜单项的点击转成 Action，直到 ctx 结束
func Forward(ctx context.Context, exit, show <-chan struct{}, out chan<- Action) {
	for {
		var a Action
		select {
		case <-ctx.Done():
			return
		case <-exit:
			a = ActionExit
		case <-show:
			a = ActionShow
		}

		select {
		case out <- a:
		case <-ctx.Done():
			return
		}
	}
}
