package ha

import "testing"

func TestDecodeWeatherAttributesAlternateKeys(t *testing.T) {
	w := DecodeWeatherAttributes(map[string]any{
		"native_wind_speed": 12.0,
		"cloud_cover":       "80",
		"wind_chill":        -5.0,
		"entity_picture":    "/api/image/weather",
	})
	if w.WindSpeed == nil || *w.WindSpeed != 12.0 {
		t.Fatalf("应采纳 native_wind_speed: %+v", w.WindSpeed)
	}
	if w.CloudCoverage == nil || *w.CloudCoverage != 80 {
		t.Fatalf("cloud_cover 字符串应可转换: %+v", w.CloudCoverage)
	}
	if w.FeelsLike == nil || *w.FeelsLike != -5.0 {
		t.Fatalf("应采纳 wind_chill: %+v", w.FeelsLike)
	}
	if w.EntityPicture != "/api/image/weather" {
		t.Fatalf("entity_picture 不符: %q", w.EntityPicture)
	}
}

func TestDecodeWeatherAttributesKeyPriority(t *testing.T) {
	w := DecodeWeatherAttributes(map[string]any{
		"wind_speed":           3.0,
		"native_wind_speed":    99.0,
		"apparent_temperature": 1.0,
		"feels_like":           99.0,
	})
	if *w.WindSpeed != 3.0 {
		t.Fatalf("wind_speed 应优先于 native_wind_speed: %v", *w.WindSpeed)
	}
	if *w.FeelsLike != 1.0 {
		t.Fatalf("apparent_temperature 应优先于 feels_like: %v", *w.FeelsLike)
	}
}

func TestDecodeWeatherAttributesDefaults(t *testing.T) {
	w := DecodeWeatherAttributes(map[string]any{"temperature": 21.5})
	if w.TempUnit != "°C" {
		t.Fatalf("缺失温度单位应默认 °C: %q", w.TempUnit)
	}
	if w.WindUnit != "m/s" {
		t.Fatalf("缺失风速单位应默认 m/s: %q", w.WindUnit)
	}
	if w.WindSpeed != nil || w.FeelsLike != nil {
		t.Fatalf("缺失的量应为 nil")
	}
	if w.Temperature == nil || *w.Temperature != 21.5 {
		t.Fatalf("温度解析不符: %+v", w.Temperature)
	}
}
