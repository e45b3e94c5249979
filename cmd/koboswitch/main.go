// koboswitch 在 Kobo 设备上运行：监听翻页按键，在配置的频道 URL
// 之间切换，把取回的 raw 帧交给 pickel 刷到墨水屏上。
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/ByLCY/inkboard/config"
	"github.com/ByLCY/inkboard/switcher"
)

const pickelPath = "/usr/local/Kobo/pickel"

func main() {
	device := pflag.String("device", "/dev/input/event0", "按键输入设备")
	configPath := pflag.String("config", "/mnt/onboard/.inkboard/config.yaml", "配置文件路径")
	channels := pflag.StringSlice("channels", nil, "频道 URL 列表，覆盖配置文件")
	pflag.Parse()

	cfg := config.FromEnv()
	if err := cfg.ApplyFile(*configPath); err != nil {
		log.Fatalf("读取配置失败: %v", err)
	}
	urls := cfg.Channels
	if len(*channels) > 0 {
		urls = *channels
	}
	ch, err := switcher.NewChannels(urls)
	if err != nil {
		log.Fatalf("频道配置无效: %v", err)
	}

	src, err := os.Open(*device)
	if err != nil {
		log.Fatalf("打开输入设备失败: %v", err)
	}
	defer src.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 接管屏幕：停掉 nickel，关掉前灯。两者缺席时静默继续，
	// 方便在开发机上联调。
	_ = exec.CommandContext(ctx, "pkill", "nickel").Run()
	_ = exec.CommandContext(ctx, pickelPath, "blinkoff").Run()

	loop := &switcher.Loop{Channels: ch, Source: src, Show: showFrame}
	if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("事件循环退出: %v", err)
	}
}

// showFrame 取回一帧并交给 pickel 刷屏。
func showFrame(ctx context.Context, url string) error {
	reqCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("构造请求失败: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("获取帧失败: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("获取帧 %s 状态码 %d", url, resp.StatusCode)
	}

	cmd := exec.CommandContext(ctx, pickelPath, "showpic")
	cmd.Stdin = resp.Body
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("刷屏失败: %w (%s)", err, out)
	}
	_ = exec.CommandContext(ctx, pickelPath, "blinkoff").Run()
	return nil
}
