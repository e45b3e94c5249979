package render

import (
	"image"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/inkboard/layout"
)

const separatorWidth = 1.0

// Surface 是一次渲染所独占的横屏画布。每个请求各建一面，
// 互不共享，渲染结束后经 Finish 转为 Frame 即弃。
type Surface struct {
	eng *Engine
	c   *canvas.Canvas
	ctx *canvas.Context
	w   int
	h   int
}

// NewSurface 创建 w×h 的白底画布，坐标系为左上角原点。
func (e *Engine) NewSurface(w, h int) *Surface {
	c := canvas.New(float64(w), float64(h))
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

	ctx.SetFillColor(canvas.White)
	ctx.DrawPath(0, 0, canvas.Rectangle(float64(w), float64(h)))

	return &Surface{eng: e, c: c, ctx: ctx, w: w, h: h}
}

// Engine 返回该画布使用的测量引擎，供图标适配等调用方复用。
func (s *Surface) Engine() *Engine { return s.eng }

// DrawText 以 (x, y) 为文本框左上角绘制一行文本。
// 基线位置 = 顶部加字体上升部，与布局的顶对齐约定一致。
func (s *Surface) DrawText(x, y int, text string, size int) {
	if text == "" {
		return
	}
	face := s.eng.face(size)
	line := canvas.NewTextLine(face, text, canvas.Left)
	baseline := float64(y) + face.Metrics().Ascent
	s.ctx.DrawText(float64(x), baseline, line)
}

// DrawTextCentered 把已适配的文本按实测尺寸居中绘制在矩形内。
func (s *Surface) DrawTextCentered(r layout.Rect, text string, st SizedText) {
	if text == "" {
		return
	}
	x := float64(r.CenterX()) - st.Width/2
	y := float64(r.CenterY()) - st.Height/2
	s.DrawText(int(x), int(y), text, st.Size)
}

// DrawGlyphCentered 以中线基线语义在矩形内居中绘制单个字形。
// 注意与 DrawText 的顶对齐约定不同：这里锚定的是字形的视觉中心。
func (s *Surface) DrawGlyphCentered(r layout.Rect, glyph string, size int) {
	if glyph == "" {
		return
	}
	face := s.eng.face(size)
	line := canvas.NewTextLine(face, glyph, canvas.Left)
	m := face.Metrics()
	w := face.TextWidth(glyph)
	x := float64(r.CenterX()) - w/2
	baseline := float64(r.CenterY()) + (m.Ascent-m.Descent)/2
	s.ctx.DrawText(x, baseline, line)
}

// DrawLine 绘制一条分隔线。
func (s *Surface) DrawLine(ln layout.Line) {
	s.ctx.SetStrokeColor(canvas.Black)
	s.ctx.SetStrokeWidth(separatorWidth)
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(float64(ln.X2-ln.X1), float64(ln.Y2-ln.Y1))
	s.ctx.DrawPath(float64(ln.X1), float64(ln.Y1), p)
}

// DrawImageCentered 把位图按 1:1 像素比例居中合成到矩形内。
// 缩放由调用方完成，这里只负责定位。
func (s *Surface) DrawImageCentered(r layout.Rect, img image.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	x := r.Left + (r.W()-b.Dx())/2
	y := r.Top + (r.H()-b.Dy())/2
	s.ctx.DrawImage(float64(x), float64(y), img, canvas.DPMM(1.0))
}
