package ha

import "strconv"

// WeatherAttributes 是天气实体属性的结构化视图。
// 指针字段为 nil 表示源数据不含该项。
type WeatherAttributes struct {
	Temperature   *float64
	TempUnit      string
	Humidity      *float64
	Pressure      *float64
	PressureUnit  string
	WindSpeed     *float64
	WindUnit      string
	WindBearing   *float64
	CloudCoverage *float64
	Visibility    *float64
	UVIndex       *float64
	FeelsLike     *float64
	EntityPicture string
}

// attrNumber 把属性值宽松转成 float64。JSON 解码出的数字是 float64，
// 但字符串形态的数字也时有出现。
func attrNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

// lookupNumber 按给定顺序尝试多个候选键，返回第一个可转换的数值。
func lookupNumber(attrs map[string]any, keys ...string) *float64 {
	for _, k := range keys {
		if v, ok := attrs[k]; ok {
			if n, ok := attrNumber(v); ok {
				return &n
			}
		}
	}
	return nil
}

func lookupString(attrs map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := attrs[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// DecodeWeatherAttributes 解析天气实体属性。不同集成对同一量使用
// 不同键名，这里按固定优先级逐个尝试；单位键缺失时采用惯用默认值。
func DecodeWeatherAttributes(attrs map[string]any) WeatherAttributes {
	w := WeatherAttributes{
		Temperature:   lookupNumber(attrs, "temperature", "native_temperature"),
		Humidity:      lookupNumber(attrs, "humidity"),
		Pressure:      lookupNumber(attrs, "pressure", "native_pressure"),
		WindSpeed:     lookupNumber(attrs, "wind_speed", "native_wind_speed"),
		WindBearing:   lookupNumber(attrs, "wind_bearing"),
		CloudCoverage: lookupNumber(attrs, "cloud_coverage", "cloud_cover"),
		Visibility:    lookupNumber(attrs, "visibility", "native_visibility"),
		UVIndex:       lookupNumber(attrs, "uv_index"),
		FeelsLike: lookupNumber(attrs,
			"apparent_temperature", "wind_chill", "windchill", "feels_like", "apparent_temp"),
		EntityPicture: lookupString(attrs, "entity_picture"),
	}
	w.TempUnit = lookupString(attrs, "temperature_unit", "native_temperature_unit")
	if w.TempUnit == "" {
		w.TempUnit = "°C"
	}
	w.WindUnit = lookupString(attrs, "wind_speed_unit", "native_wind_speed_unit")
	if w.WindUnit == "" {
		w.WindUnit = "m/s"
	}
	w.PressureUnit = lookupString(attrs, "pressure_unit", "native_pressure_unit")
	return w
}
