// Package server 暴露仪表盘的 HTTP 面：设备拉取的 raw 帧、
// 调试用的 PNG 与浏览器预览页。
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/ByLCY/inkboard/dashboard"
	"github.com/ByLCY/inkboard/render"
)

// FrameSource 合成一帧仪表盘。*dashboard.Composer 实现它。
type FrameSource interface {
	Render(ctx context.Context) (*render.Frame, dashboard.State)
}

// Server 持有 HTTP 处理所需的帧来源。
type Server struct {
	source  FrameSource
	refresh int // 预览页自动刷新间隔（秒）
}

// New 创建服务端。refreshSeconds <= 0 时预览页不自动刷新。
func New(source FrameSource, refreshSeconds int) *Server {
	return &Server{source: source, refresh: refreshSeconds}
}

// Handler 返回路由表。设备侧只认 /kobo-dashboard.raw，其余路径是人用的。
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/kobo-dashboard.raw", s.handleRaw)
	mux.HandleFunc("/kobo-dashboard.png", s.handlePNG)
	mux.HandleFunc("/kobo-dashboard", s.handlePreview)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// handleRaw 输出竖屏 8 位灰度帧。降级错误帧同样以 200 交付：
// 设备没有别的反馈通道，屏上的错误文本就是诊断信息。
func (s *Server) handleRaw(w http.ResponseWriter, r *http.Request) {
	frame, state := s.source.Render(r.Context())
	if state == dashboard.ErrorFrame {
		log.Printf("交付降级帧: %s %s", r.RemoteAddr, r.URL.Path)
	}
	raw := frame.Raw()
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(raw)))
	w.Write(raw)
}

// handlePNG 输出 PNG 渲染。?rotate=false 保持横屏工作面方向。
func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request) {
	rotate := r.URL.Query().Get("rotate") != "false"
	frame, _ := s.source.Render(r.Context())
	png, err := frame.PNG(rotate)
	if err != nil {
		log.Printf("编码 PNG 失败: %v", err)
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Write(png)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	meta := ""
	if s.refresh > 0 {
		meta = fmt.Sprintf(`<meta http-equiv="refresh" content="%d">`, s.refresh)
	}
	fmt.Fprintf(w, `<!DOCTYPE html>
<html><head><title>inkboard</title>%s</head>
<body style="background:#ddd;text-align:center">
<img src="/kobo-dashboard.png?rotate=false" alt="dashboard">
</body></html>
`, meta)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}
