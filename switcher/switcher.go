// Package switcher 实现按键驱动的频道切换：读取 Linux 输入事件，
// 前后翻页切换频道列表，确认键重绘当前频道。
package switcher

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
)

// Event 是平台无关的输入事件视图。内核 input_event 的线上布局随
// 平台 long 宽度变化，按平台解码见 event32/event64 与 rawEvent。
type Event struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

// event64 对应 64 位内核 input_event 的 24 字节布局（小端）。
type event64 struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

func (e event64) event() Event {
	return Event{Sec: e.Sec, Usec: e.Usec, Type: e.Type, Code: e.Code, Value: e.Value}
}

// event32 对应 32 位内核的 16 字节布局：两个 32 位时间字段。
// 目标设备是 32 位 ARM 的 Kobo，按键路径实际走的是这一条。
type event32 struct {
	Sec   int32
	Usec  int32
	Type  uint16
	Code  uint16
	Value int32
}

func (e event32) event() Event {
	return Event{Sec: int64(e.Sec), Usec: int64(e.Usec), Type: e.Type, Code: e.Code, Value: e.Value}
}

// 输入事件类型与按键码，取值与 linux/input-event-codes.h 一致。
const (
	evKey = 0x01

	KeyEnter    = 28
	KeyPageUp   = 104
	KeyLeft     = 105
	KeyRight    = 106
	KeyPageDown = 109
	KeyOK       = 352
)

// Action 是一次按键解读出的操作。
type Action int

const (
	ActionNone Action = iota
	ActionNext
	ActionPrev
	ActionRedraw
)

// Action 解读事件。只响应按下沿（Value==1），松开与长按重复一律忽略。
func (e Event) Action() Action {
	if e.Type != evKey || e.Value != 1 {
		return ActionNone
	}
	switch e.Code {
	case KeyRight, KeyPageDown:
		return ActionNext
	case KeyLeft, KeyPageUp:
		return ActionPrev
	case KeyEnter, KeyOK:
		return ActionRedraw
	}
	return ActionNone
}

// ReadEvent 从 r 读取一个输入事件，按当前平台的线上布局解码。
func ReadEvent(r io.Reader) (Event, error) {
	var e rawEvent
	if err := binary.Read(r, binary.LittleEndian, &e); err != nil {
		return Event{}, err
	}
	return e.event(), nil
}

// Channels 是带环绕游标的频道列表。
type Channels struct {
	urls []string
	cur  int
}

// NewChannels 创建频道列表。至少需要一个频道。
func NewChannels(urls []string) (*Channels, error) {
	if len(urls) == 0 {
		return nil, errors.New("频道列表为空")
	}
	return &Channels{urls: urls}, nil
}

// Current 返回当前频道的 URL。
func (c *Channels) Current() string { return c.urls[c.cur] }

// Next 前进一个频道，越过末尾回到开头。
func (c *Channels) Next() string {
	c.cur = (c.cur + 1) % len(c.urls)
	return c.Current()
}

// Prev 后退一个频道，越过开头回到末尾。
func (c *Channels) Prev() string {
	c.cur = (c.cur - 1 + len(c.urls)) % len(c.urls)
	return c.Current()
}

// Loop 把事件流接到频道切换上。Show 负责取帧并刷屏，
// 失败只记录日志，循环继续等下一次按键。
type Loop struct {
	Channels *Channels
	Source   io.Reader
	Show     func(ctx context.Context, url string) error
}

// Run 处理事件直到 ctx 取消或事件源耗尽。启动时先显示当前频道。
func (l *Loop) Run(ctx context.Context) error {
	if err := l.Show(ctx, l.Channels.Current()); err != nil {
		log.Printf("显示频道失败: %v", err)
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ev, err := ReadEvent(l.Source)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("读取输入事件失败: %w", err)
		}

		var url string
		switch ev.Action() {
		case ActionNext:
			url = l.Channels.Next()
		case ActionPrev:
			url = l.Channels.Prev()
		case ActionRedraw:
			url = l.Channels.Current()
		default:
			continue
		}
		if err := l.Show(ctx, url); err != nil {
			log.Printf("显示频道失败: %v", err)
		}
	}
}
