//go:build !(386 || arm || mips || mipsle)

package switcher

// rawEvent 是 64 位平台上 input_event 的线上布局。
type rawEvent = event64
