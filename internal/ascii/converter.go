package ascii

import (
	"image"
	"image/color"
	"strings"
)

// ASCII 字符集 (从黑到白)
const asciiChars = "@%#*+=-:. "

// 透明度低于这个值的像素直接当空格，背景是透明的窗口
const alphaCutoff = 0x4000

// Convert 将图片转换为 ASCII 字符串切片
// img: 原始图片对象
// targetWidth: 生成的宽度（字符数），比如 40 或 50
func Convert(img image.Image, targetWidth int) []string {
	bounds := img.Bounds()
	if targetWidth < 1 {
		targetWidth = 1
	}

	// 1. 计算缩放步长
	stepX := bounds.Dx() / targetWidth
	if stepX < 1 {
		stepX = 1
	}

	// 矫正纵横比：字符的高大约是宽的 2 倍，Y 轴采样步长翻倍
	stepY := stepX * 2

	var result []string

	// 2. 遍历像素 (采样)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		var line strings.Builder
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			line.WriteByte(pixelToASCII(img.At(x, y)))
		}
		result = append(result, strings.TrimRight(line.String(), " "))
	}

	return result
}

// Size 算出字符画需要的像素宽高
func Size(lines []string, fontW, fontH int) (int, int) {
	maxLineLen := 0
	for _, line := range lines {
		if len(line) > maxLineLen {
			maxLineLen = len(line)
		}
	}
	return maxLineLen * fontW, len(lines) * fontH
}

func pixelToASCII(c color.Color) byte {
	r, g, b, a := c.RGBA()
	if a < alphaCutoff {
		return ' '
	}

	// 预乘过 alpha，先还原
	r, g, b = r*0xffff/a, g*0xffff/a, b*0xffff/a

	// RGBA 返回 16bit (0-65535)，右移 8 位变成 0-255
	gray := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)

	// 映射到字符集索引
	idx := int(gray / 255 * float64(len(asciiChars)-1))

	// 防止浮点数精度问题导致 idx 越界
	if idx >= len(asciiChars) {
		idx = len(asciiChars) - 1
	}

	return asciiChars[idx]
}
