package canvas

// Point はバッキングストア（実ピクセル）座標です。
type Point struct {
	X float64
	Y float64
}

// Viewport はキャンバスの画面上の表示領域と、実際の描画解像度を表します。
// CSS 等で表示サイズが縮小・拡大されていても、実ピクセル座標へ正しく変換するために使います。
type Viewport struct {
	Left          float64
	Top           float64
	DisplayWidth  float64
	DisplayHeight float64
	BackingWidth  int
	BackingHeight int
}

// MapPoint は画面上のポインタ座標をバッキングストア座標に変換します。
// 表示サイズが 0 の軸は倍率 1 として扱います。
func MapPoint(vp Viewport, clientX, clientY float64) Point {
	return Point{
		X: (clientX - vp.Left) * axisScale(vp.BackingWidth, vp.DisplayWidth),
		Y: (clientY - vp.Top) * axisScale(vp.BackingHeight, vp.DisplayHeight),
	}
}

func axisScale(backing int, displayed float64) float64 {
	if displayed <= 0 {
		return 1
	}
	return float64(backing) / displayed
}
