package game

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/LihanCai/Desktop-Pet/internal/entity"
)

// inputFrame 一帧里收集到的鼠标/键盘事件
type inputFrame struct {
	Local    image.Point // 相对窗口左上角
	Global   image.Point // 屏幕坐标 = 窗口位置 + Local
	Pressed  []entity.Button
	Released []entity.Button
	Escape   bool
}

var mouseButtons = []struct {
	key    ebiten.MouseButton
	button entity.Button
}{
	{ebiten.MouseButtonLeft, entity.ButtonLeft},
	{ebiten.MouseButtonRight, entity.ButtonRight},
	{ebiten.MouseButtonMiddle, entity.ButtonMiddle},
}

// pollInput 从 ebiten 读这一帧的输入
// Ebiten 只给相对坐标，屏幕坐标要加上窗口位置
func pollInput() inputFrame {
	cx, cy := ebiten.CursorPosition()
	wx, wy := ebiten.WindowPosition()

	in := inputFrame{
		Local:  image.Pt(cx, cy),
		Global: image.Pt(wx+cx, wy+cy),
		Escape: inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
	for _, mb := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(mb.key) {
			in.Pressed = append(in.Pressed, mb.button)
		}
		if inpututil.IsMouseButtonJustReleased(mb.key) {
			in.Released = append(in.Released, mb.button)
		}
	}
	return in
}
