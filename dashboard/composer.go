// Package dashboard 把传感器读数合成为墨水屏仪表盘帧。
// 渲染始终产出完整画布：单个字段缺失只影响对应区域的占位符，
// 仅天气实体整体不可读时退化为错误帧。
package dashboard

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ByLCY/inkboard/config"
	"github.com/ByLCY/inkboard/ha"
	"github.com/ByLCY/inkboard/icons"
	"github.com/ByLCY/inkboard/layout"
	"github.com/ByLCY/inkboard/render"
)

// State 标记帧的完成程度。
type State int

const (
	// CompleteFrame 表示正常合成的仪表盘帧（字段级占位符不影响完整性）。
	CompleteFrame State = iota
	// ErrorFrame 表示天气实体不可读时的降级错误帧。
	ErrorFrame
)

// Sizes 是各区域文本的字号上下限（像素）。
type Sizes struct {
	ConditionMax, ConditionMin int
	DetailMax, DetailMin       int
	Label                      int
	CellMax, CellMin           int
	HumidityMax, HumidityMin   int
	TransHeader, TransLine     int
	StatusMax, StatusMin       int
	Updated                    int
	TempMax, TempMin           int
	WindChill                  int
	ErrTitle, ErrDetail        int
}

// DefaultSizes 是参考画布 800×600 上手工调出的字号。
func DefaultSizes() Sizes {
	return Sizes{
		ConditionMax: 56, ConditionMin: 28,
		DetailMax: 32, DetailMin: 16,
		Label:   20,
		CellMax: 70, CellMin: 32,
		HumidityMax: 80, HumidityMin: 32,
		TransHeader: 26, TransLine: 24,
		StatusMax: 40, StatusMin: 16,
		Updated: 20,
		TempMax: 180, TempMin: 80,
		WindChill: 20,
		ErrTitle:  32, ErrDetail: 20,
	}
}

// Composer 持有合成一帧所需的全部依赖。
type Composer struct {
	provider ha.StateProvider
	reader   *ha.Reader
	engine   *render.Engine
	icons    *icons.Resolver
	cfg      config.Config
	sizes    Sizes
	w, h     int
	now      func() time.Time
}

// New 创建合成器。画布为横屏工作面尺寸。
func New(provider ha.StateProvider, engine *render.Engine, resolver *icons.Resolver, cfg config.Config, w, h int) *Composer {
	return &Composer{
		provider: provider,
		reader:   &ha.Reader{Provider: provider},
		engine:   engine,
		icons:    resolver,
		cfg:      cfg,
		sizes:    DefaultSizes(),
		w:        w,
		h:        h,
		now:      time.Now,
	}
}

// readings 是一次渲染采集到的全部读数。
type readings struct {
	weather    ha.EntityState
	weatherErr error

	download, upload   ha.FieldValue
	insideTemp, hotTub ha.FieldValue
	insideHumidity     ha.FieldValue
	status             []ha.FieldValue
}

// collect 并发读取全部实体。除天气外每个读数都是尽力而为，
// 失败以 FieldValue 的 Failed/Absent 形态带回，不会中断采集。
func (c *Composer) collect(ctx context.Context) readings {
	var rd readings
	rd.status = make([]ha.FieldValue, len(c.cfg.StatusRows))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rd.weather, rd.weatherErr = c.provider.State(ctx, c.cfg.Entities.Weather)
		return nil
	})
	g.Go(func() error { rd.download = c.reader.Numeric(ctx, c.cfg.Entities.Download); return nil })
	g.Go(func() error { rd.upload = c.reader.Numeric(ctx, c.cfg.Entities.Upload); return nil })
	g.Go(func() error { rd.insideTemp = c.reader.Numeric(ctx, c.cfg.Entities.InsideTemp); return nil })
	g.Go(func() error { rd.insideHumidity = c.reader.Numeric(ctx, c.cfg.Entities.InsideHumidity); return nil })
	g.Go(func() error { rd.hotTub = c.reader.Numeric(ctx, c.cfg.Entities.HotTubTemp); return nil })
	for i, row := range c.cfg.StatusRows {
		g.Go(func() error { rd.status[i] = c.reader.Text(ctx, row.Entity); return nil })
	}
	_ = g.Wait()
	return rd
}

// Render 合成一帧。天气实体不可读时返回错误帧，其余情况一律是完整帧。
func (c *Composer) Render(ctx context.Context) (*render.Frame, State) {
	rd := c.collect(ctx)
	if rd.weatherErr != nil {
		return c.errorFrame(rd.weatherErr), ErrorFrame
	}

	s := c.engine.NewSurface(c.w, c.h)
	g := layout.NewGeometry(c.w, c.h, len(c.cfg.StatusRows))
	attrs := ha.DecodeWeatherAttributes(rd.weather.Attributes)

	c.drawSummary(g, s, rd.weather.State, attrs)
	c.drawInside(g, s, rd)
	c.drawStack(g, s, rd)
	c.drawUpdated(g, s)
	c.drawTemperature(g, s, attrs)
	c.icons.Draw(ctx, s, g.Icon, rd.weather.State, attrs.EntityPicture)

	// 分隔线最后画，压在一切内容之上。
	for _, ln := range g.Separators() {
		s.DrawLine(ln)
	}
	return s.Finish(), CompleteFrame
}

// errorFrame 渲染降级错误帧。与正常帧走同一条输出管线（旋转、灰度）。
func (c *Composer) errorFrame(err error) *render.Frame {
	s := c.engine.NewSurface(c.w, c.h)
	m := layout.NewGeometry(c.w, c.h, 0).Margin
	s.DrawText(m, m, "Error reading weather", c.sizes.ErrTitle)
	s.DrawText(m, m+c.sizes.ErrTitle+8, err.Error(), c.sizes.ErrDetail)
	return s.Finish()
}

// drawLeft 把文本画在行矩形内：左对齐，垂直居中。
func (c *Composer) drawLeft(s *render.Surface, row layout.Rect, text string, st render.SizedText) {
	y := row.Top + (row.H()-int(st.Height))/2
	if y < row.Top {
		y = row.Top
	}
	s.DrawText(row.Left, y, text, st.Size)
}

// compassPoints 覆盖 16 方位，按 22.5° 扇区取整。
var compassPoints = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

func bearingToCompass(deg float64) string {
	idx := int(deg/22.5+0.5) % 16
	if idx < 0 {
		idx += 16
	}
	return compassPoints[idx]
}

// detailLines 生成天气明细行，缺失的属性整行省略。
func detailLines(attrs ha.WeatherAttributes) []string {
	var lines []string
	if attrs.Humidity != nil {
		lines = append(lines, fmt.Sprintf("Humidity: %.0f%%", *attrs.Humidity))
	}
	if attrs.WindSpeed != nil {
		wind := fmt.Sprintf("Wind: %.0f %s", *attrs.WindSpeed, attrs.WindUnit)
		if attrs.WindBearing != nil {
			wind += " " + bearingToCompass(*attrs.WindBearing)
		}
		lines = append(lines, wind)
	}
	if attrs.Pressure != nil {
		unit := attrs.PressureUnit
		if unit == "" {
			unit = "hPa"
		}
		lines = append(lines, fmt.Sprintf("Pressure: %.0f %s", *attrs.Pressure, unit))
	}
	if attrs.CloudCoverage != nil {
		lines = append(lines, fmt.Sprintf("Cloud: %.0f%%", *attrs.CloudCoverage))
	}
	if attrs.Visibility != nil {
		lines = append(lines, fmt.Sprintf("Visibility: %.0f km", *attrs.Visibility))
	}
	if attrs.UVIndex != nil {
		lines = append(lines, fmt.Sprintf("UV: %.0f", *attrs.UVIndex))
	}
	return lines
}

func (c *Composer) drawSummary(g layout.Geometry, s *render.Surface, condition string, attrs ha.WeatherAttributes) {
	if condition == "" {
		condition = "unknown"
	}
	display := capitalize(condition)
	st := c.engine.Fit(display, g.Condition, c.sizes.ConditionMax, c.sizes.ConditionMin)
	c.drawLeft(s, g.Condition, display, st)

	lines := detailLines(attrs)
	if len(lines) == 0 {
		return
	}
	for i, row := range g.DetailRows(len(lines)) {
		st := c.engine.Fit(lines[i], row, c.sizes.DetailMax, c.sizes.DetailMin)
		c.drawLeft(s, row, lines[i], st)
	}
}

// drawCell 渲染一个标签/值单元格：顶部小号标签，余下空间里居中大号值。
func (c *Composer) drawCell(s *render.Surface, cell layout.Rect, label, value string, maxSize, minSize int) {
	labelBox, valueBox := cell.LabelValue(c.sizes.Label+4, 2)
	s.DrawText(labelBox.Left, labelBox.Top, label, c.sizes.Label)
	st := c.engine.Fit(value, valueBox, maxSize, minSize)
	s.DrawTextCentered(valueBox, value, st)
}

func (c *Composer) drawInside(g layout.Geometry, s *render.Surface, rd readings) {
	c.drawCell(s, g.InsideTemp, "Inside", formatTemp(rd.insideTemp, "—"), c.sizes.CellMax, c.sizes.CellMin)
	c.drawCell(s, g.HotTub, "Hot tub", formatTemp(rd.hotTub, "—"), c.sizes.CellMax, c.sizes.CellMin)
}

func (c *Composer) drawStack(g layout.Geometry, s *render.Surface, rd readings) {
	// 第一行固定：左侧室内湿度，右侧 Transmission 速率。
	first := g.Stack[0]
	c.drawCell(s, first.Left, "Humidity",
		formatNumber(rd.insideHumidity, "%", "--"), c.sizes.HumidityMax, c.sizes.HumidityMin)

	lineH := first.Right.H() / 3
	s.DrawText(first.Right.Left, first.Right.Top, "Transmission", c.sizes.TransHeader)
	s.DrawText(first.Right.Left, first.Right.Top+lineH, "↓ "+formatSpeed(rd.download), c.sizes.TransLine)
	s.DrawText(first.Right.Left, first.Right.Top+2*lineH, "↑ "+formatSpeed(rd.upload), c.sizes.TransLine)

	for i, row := range g.Stack[1:] {
		cfgRow := c.cfg.StatusRows[i]
		st := c.engine.Fit(cfgRow.Label, row.Left, c.sizes.StatusMax, c.sizes.StatusMin)
		c.drawLeft(s, row.Left, cfgRow.Label, st)
		value := formatStatus(rd.status[i])
		st = c.engine.Fit(value, row.Right, c.sizes.StatusMax, c.sizes.StatusMin)
		c.drawLeft(s, row.Right, value, st)
	}
}

func (c *Composer) drawUpdated(g layout.Geometry, s *render.Surface) {
	text := "Updated: " + c.now().Format("15:04")
	s.DrawText(g.Updated.Left, g.Updated.Top, text, c.sizes.Updated)
}

func (c *Composer) drawTemperature(g layout.Geometry, s *render.Surface, attrs ha.WeatherAttributes) {
	text := "—"
	if attrs.Temperature != nil {
		text = fmt.Sprintf("%.0f%s", *attrs.Temperature, attrs.TempUnit)
	}
	st := c.engine.Fit(text, g.TempText, c.sizes.TempMax, c.sizes.TempMin)
	s.DrawTextCentered(g.TempText, text, st)

	if attrs.FeelsLike != nil {
		chill := fmt.Sprintf("[%.0f%s wind chill]", *attrs.FeelsLike, attrs.TempUnit)
		st := c.engine.Fit(chill, g.WindChill, c.sizes.WindChill, c.sizes.WindChill)
		s.DrawTextCentered(g.WindChill, chill, st)
	}
}
