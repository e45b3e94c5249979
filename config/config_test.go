package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("HA_URL", "")
	t.Setenv("BIND_PORT", "")
	c := FromEnv()
	if c.BaseURL != "http://homeassistant:8123" {
		t.Fatalf("默认地址不符: %q", c.BaseURL)
	}
	if c.BindPort != 8080 || c.BindHost != "0.0.0.0" {
		t.Fatalf("默认监听配置不符: %s:%d", c.BindHost, c.BindPort)
	}
}

func TestFromEnvTrimsSlash(t *testing.T) {
	t.Setenv("HA_URL", "http://ha.local:8123/")
	c := FromEnv()
	if c.BaseURL != "http://ha.local:8123" {
		t.Fatalf("末尾斜杠应被剥掉: %q", c.BaseURL)
	}
}

func TestApplyFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inkboard.yaml")
	data := []byte(`
status_rows:
  - label: "Garage"
    entity: sensor.garage_door
  - label: "Mail"
    entity: binary_sensor.mailbox
channels:
  - http://ha.local/kobo-dashboard.raw
  - http://ha.local/kobo-camera.raw
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("写入临时配置失败: %v", err)
	}

	c := FromEnv()
	if err := c.ApplyFile(path); err != nil {
		t.Fatalf("叠加配置文件失败: %v", err)
	}
	if len(c.StatusRows) != 2 || c.StatusRows[0].Label != "Garage" {
		t.Fatalf("status_rows 解析不符: %+v", c.StatusRows)
	}
	if len(c.Channels) != 2 {
		t.Fatalf("channels 解析不符: %+v", c.Channels)
	}
	// 文件未覆盖的字段保持环境默认。
	if c.Entities.Weather == "" {
		t.Fatalf("叠加不应清空默认实体")
	}
}

func TestApplyFileMissingIsNoop(t *testing.T) {
	c := FromEnv()
	if err := c.ApplyFile(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Fatalf("缺失的配置文件不应报错: %v", err)
	}
}

func TestDurationYAMLForms(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inkboard.yaml")
	if err := os.WriteFile(path, []byte("cache_interval: 5m\n"), 0o644); err != nil {
		t.Fatalf("写入临时配置失败: %v", err)
	}
	c := Config{}
	if err := c.ApplyFile(path); err != nil {
		t.Fatalf("解析时长失败: %v", err)
	}
	if time.Duration(c.CacheInterval) != 5*time.Minute {
		t.Fatalf("时长字符串解析不符: %v", c.CacheInterval)
	}

	if err := os.WriteFile(path, []byte("cache_interval: 300\n"), 0o644); err != nil {
		t.Fatalf("写入临时配置失败: %v", err)
	}
	c = Config{}
	if err := c.ApplyFile(path); err != nil {
		t.Fatalf("解析时长失败: %v", err)
	}
	if time.Duration(c.CacheInterval) != 300*time.Second {
		t.Fatalf("裸数字应按秒解释: %v", c.CacheInterval)
	}
}

func TestEntityIDsSkipsEmpty(t *testing.T) {
	c := Config{
		Entities:   Entities{Weather: "weather.home", Download: "sensor.dl"},
		StatusRows: []StatusRow{{Label: "X", Entity: "sensor.x"}, {Label: "Y"}},
	}
	ids := c.EntityIDs()
	want := []string{"weather.home", "sensor.dl", "sensor.x"}
	if len(ids) != len(want) {
		t.Fatalf("实体列表长度不符: %v", ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("实体列表不符: %v", ids)
		}
	}
}
