package ha

import (
	"context"
	"strconv"
	"strings"
)

// FieldKind 区分字段值的形态。
type FieldKind int

const (
	// Absent 表示没有可用值：实体未配置、状态不可用或数值解析失败。
	Absent FieldKind = iota
	// Numeric 表示成功解析出的数值，单位取自 unit_of_measurement。
	Numeric
	// Text 表示按原文使用的状态字符串。
	Text
	// RawState 表示未收敛的原始状态，附带完整属性。
	RawState
)

// FieldValue 是门面向仪表盘交付的统一字段值。
// Failed 区分"实体读取出错"与"实体正常但无值"，两者的渲染占位不同。
type FieldValue struct {
	Kind       FieldKind
	Num        float64
	Unit       string
	Text       string
	Attributes map[string]any
	Failed     bool
}

// IsAbsent 报告该字段是否没有可用值。
func (v FieldValue) IsAbsent() bool { return v.Kind == Absent }

// Reader 把实体状态收敛为 FieldValue。
type Reader struct {
	Provider StateProvider
}

// unusableState 判断状态串是否等价于"无值"。
func unusableState(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unknown", "unavailable", "none":
		return true
	}
	return false
}

// Entity 读取原始状态。entityID 为空时直接返回 Absent，不发起任何请求。
func (r *Reader) Entity(ctx context.Context, entityID string) FieldValue {
	if entityID == "" {
		return FieldValue{Kind: Absent}
	}
	st, err := r.Provider.State(ctx, entityID)
	if err != nil {
		return FieldValue{Kind: Absent, Failed: true}
	}
	if unusableState(st.State) {
		return FieldValue{Kind: Absent, Attributes: st.Attributes}
	}
	return FieldValue{Kind: RawState, Text: st.State, Attributes: st.Attributes}
}

// Numeric 读取并解析数值状态。解析失败收敛为 Absent 而不是报错。
func (r *Reader) Numeric(ctx context.Context, entityID string) FieldValue {
	v := r.Entity(ctx, entityID)
	if v.Kind != RawState {
		return v
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
	if err != nil {
		return FieldValue{Kind: Absent, Attributes: v.Attributes}
	}
	unit, _ := v.Attributes["unit_of_measurement"].(string)
	return FieldValue{Kind: Numeric, Num: n, Unit: unit, Attributes: v.Attributes}
}

// Text 读取文本状态。
func (r *Reader) Text(ctx context.Context, entityID string) FieldValue {
	v := r.Entity(ctx, entityID)
	if v.Kind != RawState {
		return v
	}
	return FieldValue{Kind: Text, Text: v.Text, Attributes: v.Attributes}
}
