// Package icons 把天气状况映射为可绘制的图标：优先使用远端位图，
// 失败时回退到代表性的 Unicode 字形。
package icons

import (
	"context"
	"image"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ByLCY/inkboard/layout"
	"github.com/ByLCY/inkboard/render"
)

// Entry 是状况前缀到字形的一条映射。
type Entry struct {
	Prefix string
	Glyph  string
}

// conditionTable 按前缀匹配，命中第一条即返回，因此表序即优先级：
// 更具体的状况必须排在会同时命中的一般前缀之前
// （例如 clear-night 在 clear 之前，lightning-rainy 在 lightning 之前）。
var conditionTable = []Entry{
	{"clear-night", "☾"},
	{"clear", "☀"},
	{"sunny", "☀"},
	{"partlycloudy", "⛅"},
	{"partly-cloudy", "⛅"},
	{"partly cloudy", "⛅"},
	{"cloudy", "☁"},
	{"lightning-rainy", "⛈"},
	{"lightning", "⚡"},
	{"pouring", "☔"},
	{"rainy", "☂"},
	{"snowy-rainy", "❄☂"},
	{"snowy", "❄"},
	{"hail", "☄"},
	{"windy-variant", "🌀☁"},
	{"windy", "🌀"},
	{"fog", "〰"},
	{"exceptional", "!"},
}

// fallbackGlyph 在没有任何前缀命中时使用。
const fallbackGlyph = "·"

// GlyphFor 返回状况码对应的字形。匹配不区分大小写。
func GlyphFor(condition string) string {
	condition = strings.ToLower(strings.TrimSpace(condition))
	for _, e := range conditionTable {
		if strings.HasPrefix(condition, e.Prefix) {
			return e.Glyph
		}
	}
	return fallbackGlyph
}

// PictureFetcher 获取并解码远端图标位图。url 可以是相对路径，
// 由实现方补全基地址。
type PictureFetcher interface {
	FetchPicture(ctx context.Context, url string) (image.Image, error)
}

// Resolver 在目标矩形内绘制天气图标。
type Resolver struct {
	Fetcher PictureFetcher
	MaxSize int // 字形字号上限
	MinSize int // 字形字号下限
	Pad     int // 字形与矩形左右边缘的固定留白
}

// NewResolver 创建使用默认字号范围的解析器。
func NewResolver(fetcher PictureFetcher) *Resolver {
	return &Resolver{Fetcher: fetcher, MaxSize: 260, MinSize: 80, Pad: 8}
}

// Draw 按优先级绘制图标：pictureURL 可取时缩放合成位图；
// 任何获取或解码失败都静默落到字形路径，绝不向调用方抛错，
// 也绝不让矩形留白。
func (r *Resolver) Draw(ctx context.Context, s *render.Surface, box layout.Rect, condition, pictureURL string) {
	if pictureURL != "" && r.Fetcher != nil {
		if img, err := r.Fetcher.FetchPicture(ctx, pictureURL); err == nil && img != nil {
			// 保持纵横比缩小到矩形内；imaging.Fit 不放大，
			// 等价于缩放系数 min(boxW/imgW, boxH/imgH, 1)。
			scaled := imaging.Fit(img, box.W(), box.H(), imaging.Lanczos)
			s.DrawImageCentered(box, scaled)
			return
		}
	}

	glyph := GlyphFor(condition)
	maxW := float64(box.W() - 2*r.Pad)
	if maxW < 1 {
		maxW = 1
	}
	st := s.Engine().FitGlyphWidth(glyph, maxW, r.MaxSize, r.MinSize)
	s.DrawGlyphCentered(box, glyph, st.Size)
}
