package render

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
)

// Frame 是一次渲染的成品：横屏工作面的栅格图像。
// 旋转与像素格式转换在输出时进行，Frame 本身保持横屏原样。
type Frame struct {
	img image.Image
}

// Finish 把画布栅格化为 Frame。1 个画布单位对应 1 个像素。
func (s *Surface) Finish() *Frame {
	img := rasterizer.Draw(s.c, canvas.DPMM(1.0), canvas.DefaultColorSpace)
	return &Frame{img: img}
}

// NewFrame 直接用现成图像构造 Frame，供测试与合成器使用。
func NewFrame(img image.Image) *Frame { return &Frame{img: img} }

// Landscape 返回横屏原始图像。
func (f *Frame) Landscape() image.Image { return f.img }

// Portrait 返回旋转到竖屏后的图像。旋转方向固定为逆时针 90°：
// 横屏 W×H 的 (x, y) 映射到竖屏 H×W 的 (y, W-1-x)，设备的 USB
// 接缝在旋转后落在右侧。换方向会导致物理安装上下颠倒，不可更改。
func (f *Frame) Portrait() *image.NRGBA {
	return imaging.Rotate90(f.img)
}

// Raw 返回竖屏 8 位灰度裸像素缓冲，供目标设备的帧缓冲工具直接显示。
// 长度恒等于 竖屏宽×竖屏高。
func (f *Frame) Raw() []byte {
	rot := f.Portrait()
	gray := image.NewGray(rot.Bounds())
	draw.Draw(gray, gray.Bounds(), rot, image.Point{}, draw.Src)
	return gray.Pix
}

// PNG 返回 PNG 编码结果。rotate 为 false 时跳过竖屏旋转，
// 便于在普通浏览器里预览横屏原图。
func (f *Frame) PNG(rotate bool) ([]byte, error) {
	var m image.Image = f.img
	if rotate {
		m = f.Portrait()
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, m, imaging.PNG); err != nil {
		return nil, fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return buf.Bytes(), nil
}
