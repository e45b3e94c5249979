package render

// 画布内部统一使用像素作为长度单位；与字体系统交互使用 pt，
// 仅在创建字体面时做一次 px→pt 换算。

// pt 与像素（canvas 单位）之间的换算常量。
const (
	PtToPx = 0.352777
	PxToPt = 1.0 / PtToPx
)

// toPt 把像素字号换算为创建字体面所需的 pt。
func toPt(px float64) float64 { return px * PxToPt }
