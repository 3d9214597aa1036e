package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	menuItemHeight = 18
	menuPadding    = 4
)

type menuItem struct {
	label    string
	onSelect func()
}

// contextMenu 右键菜单，直接画在宠物窗口里
type contextMenu struct {
	items   []menuItem
	open    bool
	origin  image.Point
	hovered int
}

func newContextMenu(items ...menuItem) *contextMenu {
	return &contextMenu{items: items, hovered: -1}
}

// Size 菜单的像素宽高
func (m *contextMenu) Size() (int, int) {
	maxLen := 0
	for _, it := range m.items {
		if len(it.label) > maxLen {
			maxLen = len(it.label)
		}
	}
	return maxLen*fontW + 2*menuPadding, len(m.items) * menuItemHeight
}

// Open 在 at 处弹出，放不下就往回挪，保证整个菜单在窗口里
func (m *contextMenu) Open(at image.Point, winW, winH int) {
	w, h := m.Size()
	if at.X+w > winW {
		at.X = winW - w
	}
	if at.Y+h > winH {
		at.Y = winH - h
	}
	if at.X < 0 {
		at.X = 0
	}
	if at.Y < 0 {
		at.Y = 0
	}
	m.origin = at
	m.open = true
	m.hovered = -1
}

func (m *contextMenu) Close() {
	m.open = false
	m.hovered = -1
}

func (m *contextMenu) IsOpen() bool {
	return m.open
}

func (m *contextMenu) Bounds() image.Rectangle {
	w, h := m.Size()
	return image.Rect(m.origin.X, m.origin.Y, m.origin.X+w, m.origin.Y+h)
}

// itemAt 返回 p 下面的菜单项下标，没有就是 -1
func (m *contextMenu) itemAt(p image.Point) int {
	if !m.open || !p.In(m.Bounds()) {
		return -1
	}
	return (p.Y - m.origin.Y) / menuItemHeight
}

// Hover 更新高亮项，高亮变了返回 true
func (m *contextMenu) Hover(p image.Point) bool {
	idx := m.itemAt(p)
	if idx == m.hovered {
		return false
	}
	m.hovered = idx
	return true
}

// Click 点中某一项就执行它。不管点没点中，菜单都会关掉
func (m *contextMenu) Click(p image.Point) bool {
	idx := m.itemAt(p)
	m.Close()
	if idx < 0 {
		return false
	}
	if fn := m.items[idx].onSelect; fn != nil {
		fn()
	}
	return true
}

func (m *contextMenu) Draw(screen *ebiten.Image, alpha float32) {
	if !m.open {
		return
	}
	b := m.Bounds()

	// 背景 + 边框
	vector.DrawFilledRect(screen, float32(b.Min.X), float32(b.Min.Y),
		float32(b.Dx()), float32(b.Dy()), scaleAlpha(color.RGBA{150, 150, 150, 255}, alpha), true)

	for i, it := range m.items {
		y := b.Min.Y + i*menuItemHeight
		if i == m.hovered {
			vector.DrawFilledRect(screen, float32(b.Min.X), float32(y),
				float32(b.Dx()), menuItemHeight, scaleAlpha(color.RGBA{180, 180, 180, 255}, alpha), true)
		}
		text.Draw(screen, it.label, basicfont.Face7x13, b.Min.X+menuPadding, y+fontAscent+2, scaleAlpha(color.RGBA{0, 0, 0, 255}, alpha))
	}

	vector.StrokeRect(screen, float32(b.Min.X), float32(b.Min.Y),
		float32(b.Dx()), float32(b.Dy()), 1, scaleAlpha(color.RGBA{0, 0, 0, 255}, alpha), true)
}
