package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ByLCY/inkboard/config"
	"github.com/ByLCY/inkboard/ha"
	"github.com/ByLCY/inkboard/icons"
	"github.com/ByLCY/inkboard/render"
)

type stubProvider struct {
	states map[string]ha.EntityState
	err    error
}

func (p *stubProvider) State(ctx context.Context, entityID string) (ha.EntityState, error) {
	if p.err != nil {
		return ha.EntityState{}, p.err
	}
	st, ok := p.states[entityID]
	if !ok {
		return ha.EntityState{}, errors.New("未知实体")
	}
	return st, nil
}

func testConfig() config.Config {
	return config.Config{
		Entities: config.Entities{
			Weather:        "weather.home",
			Download:       "sensor.dl",
			Upload:         "sensor.ul",
			InsideTemp:     "sensor.inside",
			InsideHumidity: "sensor.humidity",
			HotTubTemp:     "sensor.hottub",
		},
	}
}

func newTestComposer(t *testing.T, p ha.StateProvider, cfg config.Config) *Composer {
	t.Helper()
	eng, err := render.NewEngine("", render.FitOptions{})
	if err != nil {
		t.Fatalf("创建字体引擎失败: %v", err)
	}
	c := New(p, eng, icons.NewResolver(nil), cfg, 800, 600)
	c.now = func() time.Time { return time.Date(2024, 1, 2, 15, 4, 0, 0, time.UTC) }
	return c
}

func TestRenderCompleteWithAllFieldsAbsent(t *testing.T) {
	// 只有天气可读，其余字段全部缺失：仍须产出完整帧。
	p := &stubProvider{states: map[string]ha.EntityState{
		"weather.home": {State: "snowy", Attributes: map[string]any{"temperature": -3.0}},
	}}
	c := newTestComposer(t, p, testConfig())

	frame, state := c.Render(context.Background())
	if state != CompleteFrame {
		t.Fatalf("字段缺失不应降级为错误帧: %v", state)
	}
	raw := frame.Raw()
	if len(raw) != 800*600 {
		t.Fatalf("原始帧长度不符: %d", len(raw))
	}
}

func TestRenderWeatherErrorFrame(t *testing.T) {
	p := &stubProvider{err: errors.New("connection refused")}
	c := newTestComposer(t, p, testConfig())

	frame, state := c.Render(context.Background())
	if state != ErrorFrame {
		t.Fatalf("天气不可读应返回错误帧: %v", state)
	}
	// 错误帧走同一条输出管线，尺寸与正常帧一致。
	if len(frame.Raw()) != 800*600 {
		t.Fatalf("错误帧长度不符: %d", len(frame.Raw()))
	}
	port := frame.Portrait()
	b := port.Bounds()
	if b.Dx() != 600 || b.Dy() != 800 {
		t.Fatalf("错误帧旋转尺寸不符: %dx%d", b.Dx(), b.Dy())
	}
}

func TestRenderWithStatusRows(t *testing.T) {
	cfg := testConfig()
	cfg.StatusRows = []config.StatusRow{
		{Label: "Garage", Entity: "sensor.garage"},
		{Label: "Mail", Entity: "binary_sensor.mail"},
	}
	p := &stubProvider{states: map[string]ha.EntityState{
		"weather.home":  {State: "sunny", Attributes: map[string]any{"temperature": 20.0}},
		"sensor.garage": {State: "closed"},
	}}
	c := newTestComposer(t, p, cfg)

	_, state := c.Render(context.Background())
	if state != CompleteFrame {
		t.Fatalf("状态行实体失败不应降级: %v", state)
	}
}

func TestDetailLinesSkipAbsent(t *testing.T) {
	h := 45.0
	w := 12.0
	b := 315.0
	lines := detailLines(ha.WeatherAttributes{
		Humidity: &h, WindSpeed: &w, WindUnit: "km/h", WindBearing: &b,
	})
	want := []string{"Humidity: 45%", "Wind: 12 km/h NW"}
	if len(lines) != len(want) {
		t.Fatalf("明细行数不符: %v", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("明细行不符: %v", lines)
		}
	}
	if got := detailLines(ha.WeatherAttributes{}); len(got) != 0 {
		t.Fatalf("无属性时不应有明细行: %v", got)
	}
}

func TestBearingToCompass(t *testing.T) {
	cases := []struct {
		deg  float64
		want string
	}{
		{0, "N"}, {90, "E"}, {180, "S"}, {270, "W"},
		{45, "NE"}, {350, "N"}, {337.5, "NNW"},
	}
	for _, c := range cases {
		if got := bearingToCompass(c.deg); got != c.want {
			t.Fatalf("bearingToCompass(%v) = %q, 期望 %q", c.deg, got, c.want)
		}
	}
}
