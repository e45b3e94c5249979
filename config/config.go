// Package config 汇集仪表盘的运行配置：环境变量提供基础项，
// 可选的 YAML 文件在其上叠加扩展项。
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration 支持在 YAML 里用 "5m" 这样的时长写法，裸数字按秒解释。
type Duration time.Duration

// UnmarshalYAML 实现 yaml.Unmarshaler。
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("解析时长失败: %w", err)
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(n) * time.Second)
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("解析时长 %q 失败: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// StatusRow 是附加状态行的一项：左侧标签、右侧实体值。
type StatusRow struct {
	Label  string `yaml:"label"`
	Entity string `yaml:"entity"`
}

// Entities 列出各字段绑定的实体 ID。空 ID 的字段渲染为占位符。
type Entities struct {
	Weather        string `yaml:"weather"`
	Download       string `yaml:"download"`
	Upload         string `yaml:"upload"`
	InsideTemp     string `yaml:"inside_temp"`
	InsideHumidity string `yaml:"inside_humidity"`
	HotTubTemp     string `yaml:"hot_tub_temp"`
}

// Config 是完整的运行配置。
type Config struct {
	BaseURL       string      `yaml:"base_url"`
	Token         string      `yaml:"-"`
	Entities      Entities    `yaml:"entities"`
	StatusRows    []StatusRow `yaml:"status_rows"`
	Channels      []string    `yaml:"channels"`
	BindHost      string      `yaml:"bind_host"`
	BindPort      int         `yaml:"bind_port"`
	CanvasW       int         `yaml:"canvas_w"`
	CanvasH       int         `yaml:"canvas_h"`
	FitStep       int         `yaml:"fit_step"`
	FontPath      string      `yaml:"font_path"`
	CacheInterval Duration    `yaml:"cache_interval"`
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// FromEnv 读入环境变量并填充默认值。
func FromEnv() Config {
	port := 8080
	if v := os.Getenv("BIND_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			port = p
		}
	}
	var interval Duration
	if v := os.Getenv("CACHE_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			interval = Duration(d)
		}
	}
	return Config{
		BaseURL: strings.TrimRight(envOr("HA_URL", "http://homeassistant:8123"), "/"),
		Token:   os.Getenv("HA_TOKEN"),
		Entities: Entities{
			Weather:        envOr("WEATHER_ENTITY", "weather.ironynet"),
			Download:       envOr("DL_ENTITY", "sensor.transmission_download_speed"),
			Upload:         envOr("UL_ENTITY", "sensor.transmission_upload_speed"),
			InsideTemp:     os.Getenv("INSIDE_TEMP_ENTITY"),
			InsideHumidity: os.Getenv("INSIDE_HUMIDITY_ENTITY"),
			HotTubTemp:     os.Getenv("HOTTUB_TEMP_ENTITY"),
		},
		BindHost:      envOr("BIND_HOST", "0.0.0.0"),
		BindPort:      port,
		CanvasW:       800,
		CanvasH:       600,
		FontPath:      os.Getenv("FONT_PATH"),
		CacheInterval: interval,
	}
}

// ApplyFile 把 YAML 文件叠加到已有配置上。文件缺失不是错误。
func (c *Config) ApplyFile(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("读取配置文件失败: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("解析配置文件失败: %w", err)
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	return nil
}

// EntityIDs 返回所有非空实体 ID，供快照刷新器订阅。
func (c *Config) EntityIDs() []string {
	ids := []string{
		c.Entities.Weather,
		c.Entities.Download,
		c.Entities.Upload,
		c.Entities.InsideTemp,
		c.Entities.InsideHumidity,
		c.Entities.HotTubTemp,
	}
	for _, row := range c.StatusRows {
		ids = append(ids, row.Entity)
	}
	out := ids[:0]
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}

// Addr 返回监听地址。
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.BindHost, c.BindPort)
}
