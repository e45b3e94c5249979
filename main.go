// inkboard 是面向墨水屏的 Home Assistant 仪表盘服务：
// 周期性读取实体状态，合成 600×800 竖屏灰度帧，经 HTTP 交付给设备。
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/ByLCY/inkboard/config"
	"github.com/ByLCY/inkboard/dashboard"
	"github.com/ByLCY/inkboard/ha"
	"github.com/ByLCY/inkboard/icons"
	"github.com/ByLCY/inkboard/render"
	"github.com/ByLCY/inkboard/server"
)

func main() {
	configPath := pflag.String("config", "", "YAML 配置文件路径")
	bind := pflag.String("bind", "", "监听地址，覆盖 BIND_HOST/BIND_PORT")
	fontPath := pflag.String("font", "", "TTF 字体路径，覆盖 FONT_PATH")
	refresh := pflag.Int("refresh", 300, "预览页自动刷新间隔（秒）")
	pflag.Parse()

	cfg := config.FromEnv()
	if err := cfg.ApplyFile(*configPath); err != nil {
		log.Fatalf("读取配置失败: %v", err)
	}
	if *fontPath != "" {
		cfg.FontPath = *fontPath
	}
	addr := cfg.Addr()
	if *bind != "" {
		addr = *bind
	}

	engine, err := render.NewEngine(cfg.FontPath, render.FitOptions{Step: cfg.FitStep})
	if err != nil {
		log.Fatalf("初始化字体引擎失败: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := ha.NewClient(cfg.BaseURL, cfg.Token)
	var provider ha.StateProvider = client
	if cfg.CacheInterval > 0 {
		cache := ha.NewSnapshotCache()
		refresher := &ha.Refresher{
			Client:   client,
			Cache:    cache,
			Entities: cfg.EntityIDs(),
			Interval: time.Duration(cfg.CacheInterval),
		}
		go refresher.Run(ctx)
		provider = &ha.CachedProvider{Cache: cache, Next: client}
	}

	// 横屏工作面，旋转后以竖屏交付给设备。
	composer := dashboard.New(provider, engine, icons.NewResolver(client), cfg, cfg.CanvasW, cfg.CanvasH)
	srv := &http.Server{
		Addr:    addr,
		Handler: server.New(composer, *refresh).Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("关闭服务失败: %v", err)
		}
	}()

	log.Printf("inkboard 监听 %s，上游 %s，画布 %d×%d", addr, cfg.BaseURL, cfg.CanvasW, cfg.CanvasH)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("服务退出: %v", err)
	}
}
