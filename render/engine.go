package render

import (
	"fmt"
	"os"
	"sync"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ByLCY/inkboard/layout"
)

// defaultFitStep 是字号搜索的递减步长。小于该粒度的变化在目标
// 点阵上几乎不可见，因此没有必要逐号尝试。
const defaultFitStep = 2

// FitOptions 保存字号搜索的经验常量，保持可配置。
type FitOptions struct {
	Step int // 字号递减步长，<=0 时取 defaultFitStep
}

// SizedText 是一次适配查询的结果：选中的字号与该字号下的实测宽高。
// 字号以结构化数值随结果携带，调用方据此居中，不再从字体描述串里反解。
type SizedText struct {
	Size   int
	Width  float64
	Height float64
}

// Engine 负责字体加载与文本测量/适配。
// 字体族只加载一次，字体面按字号缓存，可被并发渲染请求共用。
type Engine struct {
	family *canvas.FontFamily
	opts   FitOptions

	faceMu sync.Mutex
	faces  map[int]*canvas.FontFace
}

// NewEngine 创建测量引擎。fontPath 指向外部 TTF（通常为 DejaVuSans，
// 符号字形更全）；为空或加载失败时静默回退到内置 Go Regular，
// 保证引擎总是可用。
func NewEngine(fontPath string, opts FitOptions) (*Engine, error) {
	if opts.Step <= 0 {
		opts.Step = defaultFitStep
	}
	family := canvas.NewFontFamily("inkboard")

	loaded := false
	if fontPath != "" {
		if data, err := os.ReadFile(fontPath); err == nil {
			if err := family.LoadFont(data, 0, canvas.FontRegular); err == nil {
				loaded = true
			}
		}
	}
	if !loaded {
		if err := family.LoadFont(goregular.TTF, 0, canvas.FontRegular); err != nil {
			return nil, fmt.Errorf("加载内置字体失败: %w", err)
		}
	}

	return &Engine{
		family: family,
		opts:   opts,
		faces:  map[int]*canvas.FontFace{},
	}, nil
}

func (e *Engine) face(size int) *canvas.FontFace {
	if size < 1 {
		size = 1
	}
	e.faceMu.Lock()
	defer e.faceMu.Unlock()
	if f, ok := e.faces[size]; ok {
		return f
	}
	f := e.family.Face(toPt(float64(size)), canvas.Black, canvas.FontRegular, canvas.FontNormal)
	e.faces[size] = f
	return f
}

// Measure 返回文本在给定字号下的实测宽高（像素）。
// 空串按零尺寸处理。部分符号字形拿不到有效的上升/下降度量，
// 此时以字号本身作为高度估计。
func (e *Engine) Measure(text string, size int) (w, h float64) {
	if text == "" {
		return 0, 0
	}
	face := e.face(size)
	w = face.TextWidth(text)
	m := face.Metrics()
	h = m.Ascent + m.Descent
	if h <= 0 {
		h = float64(size)
	}
	return w, h
}

// Fit 在 [minSize, maxSize] 内自大到小按步长搜索，返回第一个
// 实测宽高都落在矩形内的字号及其实测尺寸。若全部越界则直接返回
// minSize 下的测量结果——文本允许溢出裁切，适配永远不失败。
func (e *Engine) Fit(text string, rect layout.Rect, maxSize, minSize int) SizedText {
	if minSize < 1 {
		minSize = 1
	}
	if maxSize < minSize {
		maxSize = minSize
	}
	boxW := float64(rect.W())
	boxH := float64(rect.H())

	for size := maxSize; size >= minSize; size -= e.opts.Step {
		w, h := e.Measure(text, size)
		if w <= boxW && h <= boxH {
			return SizedText{Size: size, Width: w, Height: h}
		}
	}

	w, h := e.Measure(text, minSize)
	return SizedText{Size: minSize, Width: w, Height: h}
}

// FitGlyphWidth 对单个字形做二分搜索，返回宽度不超过 maxW 的最大字号。
// 图标字形只受宽度约束（高度由居中绘制兜底），二分比线性递减便宜得多。
func (e *Engine) FitGlyphWidth(glyph string, maxW float64, maxSize, minSize int) SizedText {
	if minSize < 1 {
		minSize = 1
	}
	if maxSize < minSize {
		maxSize = minSize
	}

	lo, hi := minSize, maxSize
	best := minSize
	for lo <= hi {
		mid := (lo + hi) / 2
		w, _ := e.Measure(glyph, mid)
		if w <= maxW {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	w, h := e.Measure(glyph, best)
	return SizedText{Size: best, Width: w, Height: h}
}
