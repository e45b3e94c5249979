package layout

// 该文件实现仪表盘画布的确定性几何分区：先按固定比例切出左右两列，
// 再把各列细分为 2×2 单元格、N 行等高堆叠与标签/值对。所有切分坐标
// 仅依赖画布尺寸与已配置的行数，与运行时数据无关。
//
// 参考画布为 800×600（横屏工作面），此时各坐标与最初部署使用的像素
// 常量完全一致（margin=24、列分界 x=420 等）；其它画布尺寸按比例缩放。

// PairRow 表示一行标签/值对：Row 为整行矩形，Left/Right 为切出的两个单元格。
type PairRow struct {
	Row   Rect
	Left  Rect
	Right Rect
}

// Geometry 保存一次分区得到的全部命名矩形。
// 分隔线一律从这些矩形的边界派生（见 Separators），保证线与内容不会错位。
type Geometry struct {
	W, H   int
	Margin int

	// 左列
	Summary    Rect // 天气概要区（左上象限）
	Condition  Rect // 概要区顶部的天气状况行
	Inside     Rect // 室内传感器行（整行）
	InsideTemp Rect
	HotTub     Rect
	Stack      []PairRow // 湿度/传输行 + 已配置的状态行，等高堆叠
	Updated    Rect      // 底部更新时间条

	// 右列
	TempText  Rect // 大号室外温度
	WindChill Rect // 温度下方的体感温度条
	Icon      Rect // 天气图标
}

// frac 返回 total*num/den，用于把参考画布上的像素常量表达为比例。
func frac(total, num, den int) int { return total * num / den }

// NewGeometry 按画布尺寸与已配置的状态行数计算分区。
// statusRows 是部署期常量（未配置的行组整组省略），运行时数据缺失
// 不影响行数——缺失字段照常占行并渲染占位符。
func NewGeometry(w, h, statusRows int) Geometry {
	if w < 2 {
		w = 2
	}
	if h < 2 {
		h = 2
	}
	margin := frac(w, 3, 100)     // 参考画布 24
	colSplit := frac(w, 21, 40)   // 参考画布 420
	colGap := frac(w, 1, 80)      // 列分界两侧各留 10
	cellGap := frac(w, 1, 160)    // 单元格之间各留 5
	insideTop := frac(h, 45, 100) // 参考画布 270
	insideH := frac(h, 3, 20)     // 参考画布 90
	stackGap := frac(h, 1, 60)    // 参考画布 10
	stripH := frac(h, 1, 25)      // 更新时间条高 24
	rowGap := frac(h, 1, 100)     // 堆叠行之间留 6

	g := Geometry{W: w, H: h, Margin: margin}

	leftCol := Rect{Left: margin, Top: margin, Right: colSplit - colGap, Bottom: h - margin}
	rightCol := Rect{Left: colSplit + colGap, Top: margin, Right: w - margin, Bottom: h - margin}
	midSplit := (leftCol.Left + leftCol.Right) / 2

	// 左上象限：天气概要 + 顶部状况行
	g.Summary = Rect{Left: leftCol.Left, Top: leftCol.Top, Right: leftCol.Right, Bottom: insideTop - frac(h, 1, 50)}
	g.Condition = Rect{Left: g.Summary.Left, Top: g.Summary.Top, Right: g.Summary.Right, Bottom: g.Summary.Top + frac(h, 12, 100)}

	// 室内传感器行：两个标签/值单元格
	g.Inside = Rect{Left: leftCol.Left, Top: insideTop, Right: leftCol.Right, Bottom: insideTop + insideH}
	g.InsideTemp, g.HotTub = g.Inside.SplitV(midSplit, 2*cellGap)

	// 堆叠区：第一行固定为 湿度/传输，其后是已配置的状态行
	stackBand := Rect{
		Left:   leftCol.Left,
		Top:    g.Inside.Bottom + stackGap,
		Right:  leftCol.Right,
		Bottom: h - margin - frac(h, 3, 40),
	}
	rows := stackBand.Rows(1+statusRows, rowGap)
	g.Stack = make([]PairRow, len(rows))
	for i, row := range rows {
		left, right := row.SplitV(midSplit, 2*cellGap)
		g.Stack[i] = PairRow{Row: row, Left: left, Right: right}
	}

	g.Updated = Rect{Left: leftCol.Left, Top: h - margin - stripH, Right: leftCol.Right, Bottom: h - margin}

	// 右列：上半大号温度（底部留体感温度条），下半天气图标
	tempQuad := Rect{Left: rightCol.Left, Top: rightCol.Top, Right: rightCol.Right, Bottom: h/2 - frac(h, 1, 30)}
	g.TempText = Rect{Left: tempQuad.Left, Top: tempQuad.Top, Right: tempQuad.Right, Bottom: tempQuad.Bottom - frac(h, 1, 20)}
	g.WindChill = Rect{Left: tempQuad.Left, Top: g.TempText.Bottom, Right: tempQuad.Right, Bottom: tempQuad.Bottom}
	g.Icon = Rect{Left: rightCol.Left, Top: h/2 + stackGap, Right: rightCol.Right, Bottom: h - margin - stackGap}

	return g
}

// DetailRows 把概要区状况行以下的空间等分为 n 行，用于天气明细。
// 行数由当次渲染实际存在的属性决定，但切分本身仍是纯算术。
func (g Geometry) DetailRows(n int) []Rect {
	area := Rect{Left: g.Summary.Left, Top: g.Condition.Bottom, Right: g.Summary.Right, Bottom: g.Summary.Bottom}
	return area.Rows(n, 0)
}

// Regions 按布局顺序（自上而下、自左而右）返回全部内容矩形。
// 分隔线绘制与行序逻辑依赖该顺序。
func (g Geometry) Regions() []Rect {
	out := []Rect{g.Summary, g.InsideTemp, g.HotTub}
	for _, row := range g.Stack {
		out = append(out, row.Left, row.Right)
	}
	out = append(out, g.Updated, g.TempText, g.WindChill, g.Icon)
	return out
}

// Separators 返回栅格分隔线。每条线的坐标都取自它所毗邻的内容矩形，
// 不单独计算，因此线与文本永远保持对齐。
func (g Geometry) Separators() []Line {
	mid := func(a, b int) int { return (a + b) / 2 }

	lines := []Line{
		// 列分界：左列右缘与右列左缘的中线
		{X1: mid(g.Summary.Right, g.TempText.Left), Y1: g.Margin, X2: mid(g.Summary.Right, g.TempText.Left), Y2: g.H - g.Margin},
		// 概要区与室内行之间
		{X1: g.Summary.Left, Y1: mid(g.Summary.Bottom, g.Inside.Top), X2: g.Summary.Right, Y2: mid(g.Summary.Bottom, g.Inside.Top)},
		// 室内行与堆叠区之间
		{X1: g.Inside.Left, Y1: mid(g.Inside.Bottom, g.Stack[0].Row.Top), X2: g.Inside.Right, Y2: mid(g.Inside.Bottom, g.Stack[0].Row.Top)},
	}
	for i := 1; i < len(g.Stack); i++ {
		y := mid(g.Stack[i-1].Row.Bottom, g.Stack[i].Row.Top)
		lines = append(lines, Line{X1: g.Stack[i].Row.Left, Y1: y, X2: g.Stack[i].Row.Right, Y2: y})
	}
	last := g.Stack[len(g.Stack)-1].Row
	lines = append(lines,
		// 堆叠区与更新时间条之间
		Line{X1: last.Left, Y1: mid(last.Bottom, g.Updated.Top), X2: last.Right, Y2: mid(last.Bottom, g.Updated.Top)},
		// 右列：温度区与图标区之间
		Line{X1: g.TempText.Left, Y1: mid(g.WindChill.Bottom, g.Icon.Top), X2: g.TempText.Right, Y2: mid(g.WindChill.Bottom, g.Icon.Top)},
	)
	return lines
}
