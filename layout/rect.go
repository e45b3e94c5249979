package layout

// 该文件定义画布像素坐标下的矩形值类型，供分区计算与渲染共用。
// 矩形一经计算即不可变，子矩形总是从父矩形切出，不存在共享可变状态。

// Rect 以画布像素为单位，使用 left/top/right/bottom 四个坐标描述一个矩形。
// 约定 Right >= Left 且 Bottom >= Top；退化矩形在取宽高时被钳制为最小 1×1，
// 避免下游出现除零。
type Rect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// NewRect 按左上角坐标与宽高构造矩形。
func NewRect(left, top, width, height int) Rect {
	return Rect{Left: left, Top: top, Right: left + width, Bottom: top + height}
}

// W 返回矩形宽度，至少为 1。
func (r Rect) W() int {
	if w := r.Right - r.Left; w > 1 {
		return w
	}
	return 1
}

// H 返回矩形高度，至少为 1。
func (r Rect) H() int {
	if h := r.Bottom - r.Top; h > 1 {
		return h
	}
	return 1
}

// CenterX 返回水平中心坐标。
func (r Rect) CenterX() int { return (r.Left + r.Right) / 2 }

// CenterY 返回垂直中心坐标。
func (r Rect) CenterY() int { return (r.Top + r.Bottom) / 2 }

// Inset 返回四边各向内收缩 n 像素后的矩形。
func (r Rect) Inset(n int) Rect {
	return Rect{Left: r.Left + n, Top: r.Top + n, Right: r.Right - n, Bottom: r.Bottom - n}
}

// Contains 判断 other 是否完全落在 r 内（允许共享边界）。
func (r Rect) Contains(other Rect) bool {
	return other.Left >= r.Left && other.Top >= r.Top &&
		other.Right <= r.Right && other.Bottom <= r.Bottom
}

// Intersects 判断两个矩形的内部是否相交（仅共享边界不算相交）。
func (r Rect) Intersects(other Rect) bool {
	return r.Left < other.Right && other.Left < r.Right &&
		r.Top < other.Bottom && other.Top < r.Bottom
}

// SplitV 以 x 坐标处宽 gap 的竖缝把矩形切成左右两块。
func (r Rect) SplitV(x, gap int) (left, right Rect) {
	half := gap / 2
	left = Rect{Left: r.Left, Top: r.Top, Right: x - half, Bottom: r.Bottom}
	right = Rect{Left: x + (gap - half), Top: r.Top, Right: r.Right, Bottom: r.Bottom}
	return left, right
}

// SplitH 以 y 坐标处高 gap 的横缝把矩形切成上下两块。
func (r Rect) SplitH(y, gap int) (top, bottom Rect) {
	half := gap / 2
	top = Rect{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: y - half}
	bottom = Rect{Left: r.Left, Top: y + (gap - half), Right: r.Right, Bottom: r.Bottom}
	return top, bottom
}

// Rows 把矩形等分为 n 行，行与行之间留 gap 像素。
// 高度无法整除时，余数全部并入最后一行；返回矩形按自上而下的布局顺序排列。
func (r Rect) Rows(n, gap int) []Rect {
	if n <= 0 {
		return nil
	}
	total := r.Bottom - r.Top - gap*(n-1)
	rowH := total / n
	out := make([]Rect, n)
	y := r.Top
	for i := 0; i < n; i++ {
		bottom := y + rowH
		if i == n-1 {
			bottom = r.Bottom // 最后一行吸收取整余数
		}
		out[i] = Rect{Left: r.Left, Top: y, Right: r.Right, Bottom: bottom}
		y = bottom + gap
	}
	return out
}

// LabelValue 把矩形切为顶部高 labelH 的标签条与其下的值区域。
// 值区域底部向内收 pad 像素，供文本居中时留白。
func (r Rect) LabelValue(labelH, pad int) (label, value Rect) {
	label = Rect{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Top + labelH}
	value = Rect{Left: r.Left, Top: r.Top + labelH, Right: r.Right, Bottom: r.Bottom - pad}
	return label, value
}

// Line 表示一条分隔线，坐标取自与其相邻的内容矩形（见 Geometry.Separators）。
type Line struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}
