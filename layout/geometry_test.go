package layout

import "testing"

// TestGeometryReferenceConstants 验证参考画布 800×600 下的分区坐标
// 与最初部署使用的像素常量一致。
func TestGeometryReferenceConstants(t *testing.T) {
	g := NewGeometry(800, 600, 0)
	if g.Margin != 24 {
		t.Fatalf("margin 应为 24: got=%d", g.Margin)
	}
	if g.Summary.Right != 410 {
		t.Fatalf("左列右缘应为 410: got=%d", g.Summary.Right)
	}
	if g.TempText.Left != 430 || g.TempText.Right != 776 {
		t.Fatalf("右列边界应为 430..776: got=%d..%d", g.TempText.Left, g.TempText.Right)
	}
	if g.Inside.Top != 270 || g.Inside.Bottom != 360 {
		t.Fatalf("室内行应为 270..360: got=%d..%d", g.Inside.Top, g.Inside.Bottom)
	}
	if g.InsideTemp.Right != 212 || g.HotTub.Left != 222 {
		t.Fatalf("室内单元格切缝应在 212/222: got=%d/%d", g.InsideTemp.Right, g.HotTub.Left)
	}
	if len(g.Stack) != 1 {
		t.Fatalf("未配置状态行时堆叠区应只有一行: %d", len(g.Stack))
	}
	if g.Stack[0].Row.Top != 370 || g.Stack[0].Row.Bottom != 531 {
		t.Fatalf("湿度/传输行应为 370..531: got=%d..%d", g.Stack[0].Row.Top, g.Stack[0].Row.Bottom)
	}
	if g.Updated.Top != 552 || g.Updated.Bottom != 576 {
		t.Fatalf("更新时间条应为 552..576: got=%d..%d", g.Updated.Top, g.Updated.Bottom)
	}
	if g.TempText.Bottom != 250 || g.WindChill.Bottom != 280 {
		t.Fatalf("温度区边界错误: text=%d chill=%d", g.TempText.Bottom, g.WindChill.Bottom)
	}
	if g.Icon.Top != 310 || g.Icon.Bottom != 566 {
		t.Fatalf("图标区应为 310..566: got=%d..%d", g.Icon.Top, g.Icon.Bottom)
	}
}

// TestGeometrySiblingsDisjoint 验证任意两个内容矩形的内部互不重叠，
// 且全部落在画布边距之内。
func TestGeometrySiblingsDisjoint(t *testing.T) {
	for _, statusRows := range []int{0, 1, 3} {
		g := NewGeometry(800, 600, statusRows)
		content := Rect{Left: g.Margin, Top: g.Margin, Right: g.W - g.Margin, Bottom: g.H - g.Margin}
		regions := g.Regions()
		for i, a := range regions {
			if !content.Contains(a) {
				t.Fatalf("statusRows=%d: 区域 %d 超出内容区: %+v", statusRows, i, a)
			}
			for j, b := range regions {
				if i == j {
					continue
				}
				if a.Intersects(b) {
					t.Fatalf("statusRows=%d: 区域 %d 与 %d 重叠: %+v %+v", statusRows, i, j, a, b)
				}
			}
		}
	}
}

// TestGeometryStackUnion 验证堆叠行的并集（加上行间缝）精确还原父区段。
func TestGeometryStackUnion(t *testing.T) {
	g := NewGeometry(800, 600, 3)
	if len(g.Stack) != 4 {
		t.Fatalf("应有 1+3 行: got=%d", len(g.Stack))
	}
	first := g.Stack[0].Row
	last := g.Stack[len(g.Stack)-1].Row
	if first.Top != 370 {
		t.Fatalf("堆叠区顶部应为 370: got=%d", first.Top)
	}
	if last.Bottom != 531 {
		t.Fatalf("最后一行必须贴合父区段底部 531: got=%d", last.Bottom)
	}
	for i := 1; i < len(g.Stack); i++ {
		gap := g.Stack[i].Row.Top - g.Stack[i-1].Row.Bottom
		if gap != 6 {
			t.Fatalf("行间缝应为 6: 第 %d 行 gap=%d", i, gap)
		}
	}
}

// TestGeometryRegionsOrder 验证 Regions 按自上而下、自左而右排列。
func TestGeometryRegionsOrder(t *testing.T) {
	g := NewGeometry(800, 600, 2)
	regions := g.Regions()
	// 左列区域（除最后三个右列矩形）Top 单调不减
	leftCount := len(regions) - 3
	for i := 1; i < leftCount; i++ {
		if regions[i].Top < regions[i-1].Top {
			t.Fatalf("左列区域顺序错误: %d 在 %d 之前但更靠下", i-1, i)
		}
		if regions[i].Top == regions[i-1].Top && regions[i].Left < regions[i-1].Left {
			t.Fatalf("同一行内应自左而右: 区域 %d", i)
		}
	}
}

// TestSeparatorsCongruent 验证每条分隔线都落在相邻内容矩形的边界之间，
// 而不是独立计算的坐标。
func TestSeparatorsCongruent(t *testing.T) {
	g := NewGeometry(800, 600, 0)
	lines := g.Separators()
	if len(lines) != 5 {
		t.Fatalf("0 个状态行时应有 5 条分隔线: got=%d", len(lines))
	}

	vertical := lines[0]
	if vertical.X1 != vertical.X2 {
		t.Fatalf("首条应为竖线")
	}
	if vertical.X1 <= g.Summary.Right || vertical.X1 >= g.TempText.Left {
		t.Fatalf("列分界线必须位于两列之间: x=%d", vertical.X1)
	}
	if vertical.X1 != 420 {
		t.Fatalf("参考画布的列分界线应在 x=420: got=%d", vertical.X1)
	}

	h1 := lines[1]
	if h1.Y1 <= g.Summary.Bottom || h1.Y1 >= g.Inside.Top {
		t.Fatalf("概要区下方的分隔线必须位于相邻矩形之间: y=%d", h1.Y1)
	}

	// 状态行增多时分隔线随行边界增长
	g2 := NewGeometry(800, 600, 2)
	lines2 := g2.Separators()
	if len(lines2) != 7 {
		t.Fatalf("2 个状态行时应有 7 条分隔线: got=%d", len(lines2))
	}
}

// TestDetailRowsCarve 验证天气明细行从状况行以下切出且不越界。
func TestDetailRowsCarve(t *testing.T) {
	g := NewGeometry(800, 600, 0)
	rows := g.DetailRows(5)
	if len(rows) != 5 {
		t.Fatalf("行数错误: %d", len(rows))
	}
	if rows[0].Top != g.Condition.Bottom {
		t.Fatalf("明细首行应从状况行底部开始: got=%d want=%d", rows[0].Top, g.Condition.Bottom)
	}
	if rows[4].Bottom != g.Summary.Bottom {
		t.Fatalf("明细末行应贴合概要区底部: got=%d want=%d", rows[4].Bottom, g.Summary.Bottom)
	}
}
