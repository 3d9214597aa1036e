package sprite

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var palette = color.Palette{color.Transparent, color.RGBA{255, 0, 0, 255}, color.RGBA{0, 0, 255, 255}}

func solidFrame(r image.Rectangle, idx uint8) *image.Paletted {
	img := image.NewPaletted(r, palette)
	for i := range img.Pix {
		img.Pix[i] = idx
	}
	return img
}

func testGIF() *gif.GIF {
	return &gif.GIF{
		Image: []*image.Paletted{
			solidFrame(image.Rect(0, 0, 4, 4), 1),
			solidFrame(image.Rect(0, 0, 2, 2), 2),
			solidFrame(image.Rect(2, 2, 4, 4), 2),
		},
		Delay:    []int{10, 0, 5},
		Disposal: []byte{gif.DisposalNone, gif.DisposalBackground, gif.DisposalNone},
		Config:   image.Config{Width: 4, Height: 4},
	}
}

func TestFromGIFComposesFrames(t *testing.T) {
	a, err := FromGIF(testGIF())
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != 3 {
		t.Fatalf("len = %d; want 3", a.Len())
	}
	if a.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Errorf("bounds = %v", a.Bounds())
	}

	blue := color.RGBA{0, 0, 255, 255}
	red := color.RGBA{255, 0, 0, 255}

	// 第二帧画在第一帧上面
	if got := color.RGBAModel.Convert(a.FrameAt(1).At(0, 0)); got != blue {
		t.Errorf("frame 1 (0,0) = %v; want blue", got)
	}
	if got := color.RGBAModel.Convert(a.FrameAt(1).At(3, 3)); got != red {
		t.Errorf("frame 1 (3,3) = %v; want red", got)
	}

	// 第二帧 DisposalBackground：第三帧里左上角被清空
	if _, _, _, alpha := a.FrameAt(2).At(0, 0).RGBA(); alpha != 0 {
		t.Errorf("frame 2 (0,0) alpha = %d; want 0", alpha)
	}
	if got := color.RGBAModel.Convert(a.FrameAt(2).At(3, 3)); got != blue {
		t.Errorf("frame 2 (3,3) = %v; want blue", got)
	}
}

func TestAdvance(t *testing.T) {
	a, err := FromGIF(testGIF())
	if err != nil {
		t.Fatal(err)
	}

	// 延时：100ms, 0 -> 100ms, 50ms
	steps := []struct {
		elapsed   time.Duration
		wantIndex int
		changed   bool
	}{
		{50 * time.Millisecond, 0, false},
		{50 * time.Millisecond, 1, true},
		{0, 1, false},
		{99 * time.Millisecond, 1, false},
		{1 * time.Millisecond, 2, true},
		{50 * time.Millisecond, 0, true},
		{250 * time.Millisecond, 0, false},
	}

	for i, s := range steps {
		changed := a.Advance(s.elapsed)
		if changed != s.changed || a.Index() != s.wantIndex {
			t.Errorf("step %d: changed=%v index=%d; want %v %d", i, changed, a.Index(), s.changed, s.wantIndex)
		}
	}
}

func TestStillNeverChanges(t *testing.T) {
	a := Still(image.NewRGBA(image.Rect(0, 0, 8, 8)))
	if a.Advance(time.Hour) {
		t.Error("still image reported a frame change")
	}
}

func TestFromGIFEmpty(t *testing.T) {
	if _, err := FromGIF(&gif.GIF{}); !errors.Is(err, ErrNoFrames) {
		t.Errorf("err = %v; want ErrNoFrames", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, testGIF()); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "pet.gif")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	a, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != 3 {
		t.Errorf("len = %d; want 3", a.Len())
	}

	if _, err := Load(filepath.Join(dir, "missing.gif")); err == nil {
		t.Error("missing sprite loaded without error")
	}

	broken := filepath.Join(dir, "broken.gif")
	if err := os.WriteFile(broken, []byte("not a gif"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(broken); err == nil {
		t.Error("broken sprite loaded without error")
	}
}

func TestChoose(t *testing.T) {
	rnd := rand.New(rand.NewPCG(7, 7))
	ids := []string{":/image1", ":/image2"}

	seen := map[string]int{}
	for i := 0; i < 100; i++ {
		seen[Choose(rnd, ids)]++
	}
	if len(seen) != 2 {
		t.Errorf("choices = %v; want both ids", seen)
	}
	if got := Choose(rnd, nil); got != "" {
		t.Errorf("Choose(nil) = %q", got)
	}
}
