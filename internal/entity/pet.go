package entity

import (
	"image"
	"math/rand/v2"
)

// Button 鼠标按键
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// Cursor 鼠标形状 (由 Surface 映射成具体平台的光标)
type Cursor int

const (
	CursorArrow Cursor = iota
	CursorOpenHand
	CursorClosedHand
)

// State 交互状态
type State int

const (
	Idle     State = iota // 没有跟随鼠标
	Dragging              // 左键按住，窗口跟着鼠标走
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// DefaultLines 宠物默认会说的话
var DefaultLines = []string{"Hello", "I am your desktop pet!", "I can do many things."}

// Surface 宠物窗口的能力集合：位置、光标、透明度
// 用组合代替继承，真实实现在 game 包里包着 ebiten 的窗口函数
type Surface interface {
	Position() image.Point
	SetPosition(p image.Point)
	SetCursor(c Cursor)
	SetOpacity(o float64)
}

// Pet 宠物窗口的交互状态机
// 所有方法都只在 ebiten 的 Update 线程里调用，不需要加锁
type Pet struct {
	surface Surface
	rnd     *rand.Rand
	quit    func()
	lines   []string

	following bool        // 是否正在跟随鼠标
	anchor    image.Point // 按下时：鼠标屏幕坐标 - 窗口左上角
	clicked   int         // 被点过 (0/1)
	talk      int         // 是否显示对白 (0/1)
	line      string      // 当前对白
	opacity   float64     // 1 可见，0 隐藏
}

// New 创建宠物。quit 是退出进程的回调，rnd 用来挑对白 (测试时传固定种子)
func New(surface Surface, rnd *rand.Rand, quit func()) *Pet {
	p := &Pet{
		surface: surface,
		rnd:     rnd,
		quit:    quit,
		opacity: 1,
	}
	p.SetLines(nil)
	surface.SetOpacity(1)
	return p
}

// SetLines 替换对白列表，传空就恢复默认
func (p *Pet) SetLines(lines []string) {
	if len(lines) == 0 {
		lines = DefaultLines
	}
	p.lines = append([]string(nil), lines...)
}

// Lines 返回当前对白列表的拷贝
func (p *Pet) Lines() []string {
	return append([]string(nil), p.lines...)
}

// Press 任意按键按下。所有按键都会触发对白，只有左键会开始拖拽
func (p *Pet) Press(b Button, global image.Point) {
	// 1. 点击 & 对白状态
	p.clicked = 1
	p.talk = 1
	p.say()

	// 2. 只有左键进入跟随模式
	if b == ButtonLeft {
		p.following = true
	}

	// 3. 记录偏移量：鼠标屏幕坐标 - 窗口左上角
	p.anchor = global.Sub(p.surface.Position())
	p.surface.SetCursor(CursorOpenHand)
}

// Move 鼠标移动。不在拖拽中就什么都不做
func (p *Pet) Move(global image.Point) {
	if !p.following {
		return
	}
	// 新窗口位置 = 鼠标屏幕坐标 - 偏移量
	p.surface.SetPosition(global.Sub(p.anchor))
}

// Release 松开鼠标，取消跟随
func (p *Pet) Release() {
	p.following = false
	p.surface.SetCursor(CursorArrow)
}

// Enter 鼠标进入窗口范围
func (p *Pet) Enter() {
	p.surface.SetCursor(CursorClosedHand)
}

// Hide 右键菜单的“隐藏”：窗口还活着，只是看不见
func (p *Pet) Hide() {
	p.setOpacity(0)
}

// Show 托盘菜单的“显示”
func (p *Pet) Show() {
	p.setOpacity(1)
}

// Exit 不管当前是否可见，直接退出
func (p *Pet) Exit() {
	if p.quit != nil {
		p.quit()
	}
}

func (p *Pet) setOpacity(o float64) {
	p.opacity = o
	p.surface.SetOpacity(o)
}

func (p *Pet) say() {
	p.line = p.lines[p.rnd.IntN(len(p.lines))]
}

func (p *Pet) State() State {
	if p.following {
		return Dragging
	}
	return Idle
}

func (p *Pet) Following() bool { return p.following }
func (p *Pet) Anchor() image.Point { return p.anchor }
func (p *Pet) Clicked() int { return p.clicked }
func (p *Pet) Talking() bool { return p.talk == 1 }
func (p *Pet) Line() string { return p.line }
func (p *Pet) Opacity() float64 { return p.opacity }
