package game

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/LihanCai/Desktop-Pet/internal/entity"
)

// window 宠物需要的窗口能力，外加 Manager 自己用的 TPS 和透明度
type window interface {
	entity.Surface
	Opacity() float64
	SetTPS(tps int)
	SetSize(width, height int)
}

// ebitenWindow 用 ebiten 的全局窗口函数实现 window
type ebitenWindow struct {
	opacity float64
	tps     int
}

func (w *ebitenWindow) Position() image.Point {
	x, y := ebiten.WindowPosition()
	return image.Pt(x, y)
}

func (w *ebitenWindow) SetPosition(p image.Point) {
	ebiten.SetWindowPosition(p.X, p.Y)
}

// SetCursor ebiten 没有“张开的手/握住的手”，用最接近的形状代替
func (w *ebitenWindow) SetCursor(c entity.Cursor) {
	switch c {
	case entity.CursorOpenHand:
		ebiten.SetCursorShape(ebiten.CursorShapeMove)
	case entity.CursorClosedHand:
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	default:
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

// SetOpacity 窗口本身没有透明度接口，画的时候乘上 alpha
// 完全隐藏时让鼠标穿透，免得一块看不见的窗口挡住桌面
func (w *ebitenWindow) SetOpacity(o float64) {
	w.opacity = o
	ebiten.SetWindowMousePassthrough(o == 0)
}

func (w *ebitenWindow) Opacity() float64 {
	return w.opacity
}

// SetTPS 只在值变化时才调用 ebiten
func (w *ebitenWindow) SetTPS(tps int) {
	if tps == w.tps {
		return
	}
	w.tps = tps
	ebiten.SetTPS(tps)
}

func (w *ebitenWindow) SetSize(width, height int) {
	ebiten.SetWindowSize(width, height)
}
