package game

import (
	"fmt"
	"image"
	"image/color"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/LihanCai/Desktop-Pet/config"
	"github.com/LihanCai/Desktop-Pet/internal/ascii"
	"github.com/LihanCai/Desktop-Pet/internal/entity"
	"github.com/LihanCai/Desktop-Pet/internal/monitor"
	"github.com/LihanCai/Desktop-Pet/internal/sprite"
	"github.com/LihanCai/Desktop-Pet/internal/tray"
)

// basicfont.Face7x13 的特性：每个字宽 7 像素，高 13 像素，基线在 11
const (
	fontW      = 7
	fontH      = 13
	fontAscent = 11

	bubblePad   = 4
	speechBand  = fontH + 6 // 顶部留给对白
	monitorBand = fontH + 4 // 底部留给 CPU/内存
	minWidth    = 64
	activeTPS   = 60
)

// 监控文字最长的样子，用来算窗口宽度
const widestStats = "CPU 100% MEM 100%"

// Channels 其他 goroutine 送进来的东西，都在 Update 里统一处理
type Channels struct {
	Tray    <-chan tray.Action
	Reloads <-chan *config.Config
	Stats   <-chan monitor.Stats
}

// Manager 实现 ebiten.Game，把 ebiten 的输入翻译成宠物的事件
type Manager struct {
	cfg  *config.Config
	win  window
	pet  *entity.Pet
	menu *contextMenu
	rnd  *rand.Rand
	poll func() inputFrame
	now  func() time.Time

	anim    *sprite.Animation
	frames  map[int]*ebiten.Image // 每一帧只转换一次
	art     [][]string            // 字符画模式下每一帧的字符
	spriteW int
	spriteH int
	width   int
	height  int

	trayActions <-chan tray.Action
	reloads     <-chan *config.Config
	samples     <-chan monitor.Stats

	stats    monitor.Stats
	hasStats bool

	hovering   bool
	lastGlobal image.Point
	lastTick   time.Time
	dirty      bool
	quitting   bool
	finalPos   image.Point
}

// NewManager 创建游戏对象，窗口用 ebiten 的全局窗口
func NewManager(cfg *config.Config, rnd *rand.Rand, ch Channels) *Manager {
	return newManager(cfg, &ebitenWindow{}, rnd, ch, pollInput)
}

func newManager(cfg *config.Config, win window, rnd *rand.Rand, ch Channels, poll func() inputFrame) *Manager {
	m := &Manager{
		cfg:         cfg,
		win:         win,
		rnd:         rnd,
		poll:        poll,
		now:         time.Now,
		frames:      map[int]*ebiten.Image{},
		trayActions: ch.Tray,
		reloads:     ch.Reloads,
		samples:     ch.Stats,
		dirty:       true,
	}
	m.pet = entity.New(win, rnd, m.quit)
	m.pet.SetLines(cfg.Lines)
	m.menu = newContextMenu(
		menuItem{label: "Exit", onSelect: m.pet.Exit},
		menuItem{label: "Hide", onSelect: m.pet.Hide},
	)
	m.fit()
	return m
}

// Init 随机挑一个动图加载，再按动图大小设置窗口
// 资源加载失败直接返回错误，由 main 决定退出
func (m *Manager) Init() error {
	// 1. 读取动图
	path := sprite.Choose(m.rnd, m.cfg.Sprites)
	anim, err := sprite.Load(path)
	if err != nil {
		return err
	}
	m.setSprite(anim)

	// 2. 设置窗口：窗口大小 = 动图 + 对白 + 监控
	m.win.SetSize(m.width, m.height)
	ebiten.SetWindowPosition(m.cfg.WindowX, m.cfg.WindowY)
	return nil
}

func (m *Manager) setSprite(anim *sprite.Animation) {
	m.anim = anim
	m.frames = map[int]*ebiten.Image{}
	m.art = nil

	if m.cfg.ASCIIMode {
		// 每一帧提前转成字符，尺寸取所有帧里最大的
		m.spriteW, m.spriteH = 0, 0
		for i := 0; i < anim.Len(); i++ {
			lines := ascii.Convert(anim.FrameAt(i), m.cfg.ASCIIWidth)
			m.art = append(m.art, lines)
			w, h := ascii.Size(lines, fontW, fontH)
			m.spriteW = max(m.spriteW, w)
			m.spriteH = max(m.spriteH, h)
		}
	} else {
		b := anim.Bounds()
		m.spriteW, m.spriteH = b.Dx(), b.Dy()
	}

	m.fit()
	m.dirty = true
}

// fit 量体裁衣：算出窗口需要多大
func (m *Manager) fit() {
	w := max(m.spriteW, minWidth)
	h := speechBand + m.spriteH
	// 监控文字只在打开时占位置
	if m.cfg.ShowMonitor {
		w = max(w, len(widestStats)*fontW)
		h += monitorBand
	}
	for _, line := range m.pet.Lines() {
		w = max(w, len(line)*fontW+2*bubblePad)
	}
	mw, mh := m.menu.Size()

	m.width = max(w, mw)
	m.height = max(h, mh)
}

func (m *Manager) quit() {
	m.finalPos = m.win.Position()
	m.quitting = true
}

// FinalPosition 退出那一刻窗口的位置
func (m *Manager) FinalPosition() image.Point {
	return m.finalPos
}

func (m *Manager) Update() error {
	// 1. 先处理托盘、配置、监控送来的消息
	m.drain()

	// 2. 鼠标事件
	if !m.quitting {
		m.dispatch(m.poll())
	}

	// 3. 推进动画，帧变了就需要重画
	m.advance()

	// 4. 动态调整 TPS
	// 如果正在交互（拖拽或鼠标指着它），开启 60 帧丝滑模式，否则省电
	if m.hovering || m.pet.Following() || m.menu.IsOpen() {
		m.win.SetTPS(activeTPS)
	} else {
		m.win.SetTPS(m.cfg.IdleTPS)
	}

	if m.quitting {
		return ebiten.Termination
	}
	return nil
}

func (m *Manager) drain() {
	for {
		select {
		case a := <-m.trayActions:
			switch a {
			case tray.ActionExit:
				m.pet.Exit()
			case tray.ActionShow:
				m.pet.Show()
			}
		case cfg := <-m.reloads:
			m.applyConfig(cfg)
		case s := <-m.samples:
			m.stats = s
			m.hasStats = true
		default:
			return
		}
		m.dirty = true
	}
}

// applyConfig 配置文件被改了：对白、监控开关、TPS 马上生效
func (m *Manager) applyConfig(cfg *config.Config) {
	m.cfg.Lines = cfg.Lines
	m.cfg.ShowMonitor = cfg.ShowMonitor
	m.cfg.IdleTPS = cfg.IdleTPS
	m.pet.SetLines(cfg.Lines)

	// 对白变长、监控开关变了，窗口都要重新量体裁衣
	m.fit()
	m.win.SetSize(m.width, m.height)
	if m.menu.IsOpen() {
		m.menu.Close()
	}
	m.dirty = true
}

// dispatch 按顺序处理一帧里的事件：进入 -> 按下 -> 移动 -> 松开
func (m *Manager) dispatch(in inputFrame) {
	// 隐藏时鼠标是穿透的，不会收到事件
	if m.pet.Opacity() == 0 {
		m.hovering = false
		return
	}

	// 1. 鼠标进入窗口
	inside := in.Local.In(image.Rect(0, 0, m.width, m.height))
	if inside && !m.hovering {
		m.pet.Enter()
	}
	m.hovering = inside

	if m.menu.IsOpen() {
		if m.menu.Hover(in.Local) {
			m.dirty = true
		}
		if in.Escape {
			m.menu.Close()
			m.dirty = true
		}
	}

	// 2. 按下
	for _, b := range in.Pressed {
		m.dirty = true
		// 菜单开着时，点击都交给菜单：左键选中，其他键关掉
		if m.menu.IsOpen() {
			if b == entity.ButtonLeft {
				m.menu.Click(in.Local)
			} else {
				m.menu.Close()
			}
			continue
		}
		if !inside {
			continue
		}
		m.pet.Press(b, in.Global)
		if b == entity.ButtonRight {
			m.menu.Open(in.Local, m.width, m.height)
		}
	}

	// 3. 移动
	if in.Global != m.lastGlobal {
		m.pet.Move(in.Global)
		m.lastGlobal = in.Global
	}

	// 4. 松开
	if len(in.Released) > 0 {
		m.pet.Release()
		m.dirty = true
	}
}

func (m *Manager) advance() {
	now := m.now()
	if m.anim != nil && !m.lastTick.IsZero() {
		if m.anim.Advance(now.Sub(m.lastTick)) {
			m.dirty = true
		}
	}
	m.lastTick = now
}

// Draw 屏幕不会每帧清空，没有变化就什么都不画
func (m *Manager) Draw(screen *ebiten.Image) {
	if !m.dirty {
		return
	}
	m.dirty = false
	screen.Clear()

	alpha := float32(m.win.Opacity())
	if alpha == 0 {
		return
	}

	m.drawSprite(screen, alpha)
	if m.pet.Talking() {
		m.drawSpeech(screen, alpha)
	}
	if m.cfg.ShowMonitor && m.hasStats {
		m.drawStats(screen, alpha)
	}
	m.menu.Draw(screen, alpha)
}

func (m *Manager) drawSprite(screen *ebiten.Image, alpha float32) {
	if m.anim == nil {
		return
	}
	x := (m.width - m.spriteW) / 2
	idx := m.anim.Index()

	if m.art != nil {
		// 文字是从基线开始画的，往下挪一点防止头被切掉
		text.Draw(screen, strings.Join(m.art[idx], "\n"), basicfont.Face7x13,
			x, speechBand+fontAscent, scaleAlpha(color.RGBA{0, 255, 0, 255}, alpha))
		return
	}

	img, ok := m.frames[idx]
	if !ok {
		img = ebiten.NewImageFromImage(m.anim.Frame())
		m.frames[idx] = img
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), speechBand)
	op.ColorScale.ScaleAlpha(alpha)
	screen.DrawImage(img, op)
}

func (m *Manager) drawSpeech(screen *ebiten.Image, alpha float32) {
	line := m.pet.Line()
	w := len(line)*fontW + 2*bubblePad
	x := (m.width - w) / 2

	vector.DrawFilledRect(screen, float32(x), 1, float32(w), fontH+4,
		scaleAlpha(color.RGBA{220, 220, 220, 220}, alpha), true)
	text.Draw(screen, line, basicfont.Face7x13, x+bubblePad, 3+fontAscent,
		scaleAlpha(color.RGBA{0, 0, 0, 255}, alpha))
}

func (m *Manager) drawStats(screen *ebiten.Image, alpha float32) {
	clr := color.RGBA{0, 255, 0, 255}
	if m.stats.Stressed {
		clr = color.RGBA{255, 0, 0, 255}
	}
	s := fmt.Sprintf("CPU %.0f%% MEM %.0f%%", m.stats.CPU, m.stats.Mem)
	text.Draw(screen, s, basicfont.Face7x13, 0, speechBand+m.spriteH+2+fontAscent, scaleAlpha(clr, alpha))
}

func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	// 告诉 Ebiten 画布大小就是窗口大小
	return m.width, m.height
}

// scaleAlpha color.RGBA 是预乘过的，四个通道一起乘
func scaleAlpha(c color.RGBA, a float32) color.RGBA {
	return color.RGBA{
		R: uint8(float32(c.R) * a),
		G: uint8(float32(c.G) * a),
		B: uint8(float32(c.B) * a),
		A: uint8(float32(c.A) * a),
	}
}
