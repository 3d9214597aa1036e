package sprite

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "image/jpeg"
	_ "image/png" // 必加，否则 image: unknown format
)

// ErrNoFrames 动图里一帧都没有
var ErrNoFrames = errors.New("sprite: no frames")

// 有些 GIF 把延时写成 0，浏览器一般按 100ms 处理
const minDelay = 100 * time.Millisecond

// Animation 解码好的动图，所有帧提前合成好 (相当于 CacheAll)
type Animation struct {
	frames  []image.Image
	delays  []time.Duration
	current int
	elapsed time.Duration
}

// Choose 从候选的动图里随机挑一个
func Choose(rnd *rand.Rand, ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	return ids[rnd.IntN(len(ids))]
}

// Load 从硬盘读取动图。GIF 会展开成完整的帧，PNG/JPEG 当作只有一帧
func Load(path string) (*Animation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sprite %s: %w", path, err)
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(path), ".gif") {
		g, err := gif.DecodeAll(file)
		if err != nil {
			return nil, fmt.Errorf("decode gif %s: %w", path, err)
		}
		return FromGIF(g)
	}

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode sprite %s: %w", path, err)
	}
	return Still(img), nil
}

// Still 单帧的“动图”
func Still(img image.Image) *Animation {
	return &Animation{frames: []image.Image{img}, delays: []time.Duration{0}}
}

// FromGIF 按 disposal 规则把每一帧画到完整画布上
func FromGIF(g *gif.GIF) (*Animation, error) {
	if len(g.Image) == 0 {
		return nil, ErrNoFrames
	}

	// 1. 画布大小：优先用逻辑屏幕，没有就用第一帧
	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
	}

	canvas := image.NewRGBA(bounds)
	a := &Animation{}

	for i, frame := range g.Image {
		// 2. 记下画之前的样子，DisposalPrevious 要用
		var previous *image.RGBA
		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			previous = image.NewRGBA(bounds)
			draw.Draw(previous, bounds, canvas, bounds.Min, draw.Src)
		}

		// 3. 叠加当前帧，存一份快照
		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		snapshot := image.NewRGBA(bounds)
		draw.Draw(snapshot, bounds, canvas, bounds.Min, draw.Src)
		a.frames = append(a.frames, snapshot)

		delay := minDelay
		if i < len(g.Delay) && g.Delay[i] > 0 {
			delay = time.Duration(g.Delay[i]) * 10 * time.Millisecond
		}
		a.delays = append(a.delays, delay)

		// 4. 处理 disposal
		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			draw.Draw(canvas, bounds, previous, bounds.Min, draw.Src)
		}
	}

	return a, nil
}

// Advance 往前推进 elapsed 时间。只有显示的帧变了才返回 true
func (a *Animation) Advance(elapsed time.Duration) bool {
	if len(a.frames) < 2 || elapsed <= 0 {
		return false
	}

	before := a.current
	a.elapsed += elapsed
	for a.elapsed >= a.delays[a.current] {
		a.elapsed -= a.delays[a.current]
		a.current = (a.current + 1) % len(a.frames)
	}
	return a.current != before
}

// Frame 当前帧
func (a *Animation) Frame() image.Image {
	return a.frames[a.current]
}

// FrameAt 第 i 帧
func (a *Animation) FrameAt(i int) image.Image {
	return a.frames[i]
}

// Index 当前是第几帧
func (a *Animation) Index() int {
	return a.current
}

func (a *Animation) Len() int {
	return len(a.frames)
}

func (a *Animation) Bounds() image.Rectangle {
	return a.frames[0].Bounds()
}
