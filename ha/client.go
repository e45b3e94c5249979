// Package ha 提供 Home Assistant REST API 的只读访问层：
// 实体状态读取、快照缓存、以及把原始状态收敛为仪表盘字段值的门面。
package ha

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"time"

	// 远端实体图片可能是这几种格式之一。
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// EntityState 是 /api/states/<entity_id> 返回的状态快照。
type EntityState struct {
	State      string         `json:"state"`
	Attributes map[string]any `json:"attributes"`
}

// Client 访问单个 Home Assistant 实例。
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient 创建客户端。baseURL 末尾的斜杠会被剥掉，token 为空时不带鉴权头。
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("构造请求失败: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求 %s 失败: %w", url, err)
	}
	return resp, nil
}

// State 读取一个实体的当前状态。
func (c *Client) State(ctx context.Context, entityID string) (EntityState, error) {
	resp, err := c.do(ctx, c.baseURL+"/api/states/"+entityID)
	if err != nil {
		return EntityState{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return EntityState{}, fmt.Errorf("读取实体 %s 状态码 %d", entityID, resp.StatusCode)
	}
	var st EntityState
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return EntityState{}, fmt.Errorf("解析实体 %s 响应失败: %w", entityID, err)
	}
	return st, nil
}

// FetchPicture 获取并解码实体图片。相对路径（如 entity_picture 常见的
// /api/image/... 形式）会补全为实例地址。
func (c *Client) FetchPicture(ctx context.Context, url string) (image.Image, error) {
	if strings.HasPrefix(url, "/") {
		url = c.baseURL + url
	}
	resp, err := c.do(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("获取图片 %s 状态码 %d", url, resp.StatusCode)
	}
	img, _, err := image.Decode(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("解码图片失败: %w", err)
	}
	return img, nil
}
