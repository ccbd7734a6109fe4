package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"yqt-signal-desk/internal/domain"
)

const (
	defaultChartWidth  = 960
	defaultChartHeight = 480
)

var (
	colBackground = color.RGBA{R: 250, G: 252, B: 255, A: 255}
	colGrid       = color.RGBA{R: 225, G: 232, B: 240, A: 255}
	colPrice      = color.RGBA{R: 62, G: 106, B: 214, A: 255}
	colFill       = color.RGBA{R: 214, G: 226, B: 250, A: 255}
	colBuy        = color.RGBA{R: 18, G: 140, B: 126, A: 255}
	colSell       = color.RGBA{R: 210, G: 61, B: 87, A: 255}
	colHold       = color.RGBA{R: 104, G: 122, B: 146, A: 255}
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderHistoryChart draws the price window as a filled line chart.
// When a signal is supplied, a marker line in the action's color is
// drawn at the newest point. Callers decide whether the signal belongs
// on this chart.
func (r *Renderer) RenderHistoryChart(points []domain.PricePoint, signal *domain.MarketSignal) ([]byte, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("need at least 2 price points to render chart")
	}

	img := image.NewRGBA(image.Rect(0, 0, defaultChartWidth, defaultChartHeight))
	fillRect(img, img.Bounds(), colBackground)

	plotRect := image.Rect(60, 20, defaultChartWidth-20, defaultChartHeight-30)
	drawGrid(img, plotRect, 10, 6)

	prices := make([]float64, len(points))
	for i, p := range points {
		prices[i] = p.Price
	}
	minV, maxV := bounds(prices)

	drawAreaFill(img, plotRect, prices, minV, maxV)
	drawSeries(img, plotRect, prices, minV, maxV, colPrice)

	if signal != nil {
		markerX := mapIndexToX(len(prices)-1, len(prices), plotRect)
		drawLine(img, markerX, plotRect.Min.Y, markerX, plotRect.Max.Y, actionColor(signal.Action))
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func actionColor(action domain.SignalAction) color.RGBA {
	switch action {
	case domain.ActionBuy:
		return colBuy
	case domain.ActionSell:
		return colSell
	default:
		return colHold
	}
}

func drawAreaFill(img *image.RGBA, rect image.Rectangle, series []float64, minV, maxV float64) {
	for i, v := range series {
		x := mapIndexToX(i, len(series), rect)
		y := mapValueToY(v, minV, maxV, rect)
		drawLine(img, x, y, x, rect.Max.Y, colFill)
	}
}

func drawSeries(img *image.RGBA, rect image.Rectangle, series []float64, minV, maxV float64, col color.RGBA) {
	lastX, lastY := -1, -1
	for i, v := range series {
		x := mapIndexToX(i, len(series), rect)
		y := mapValueToY(v, minV, maxV, rect)
		if lastX >= 0 {
			drawLine(img, lastX, lastY, x, y, col)
		}
		lastX, lastY = x, y
	}
}

func drawGrid(img *image.RGBA, rect image.Rectangle, verticalLines, horizontalLines int) {
	for i := 0; i <= verticalLines; i++ {
		x := rect.Min.X + (rect.Dx()*i)/max(1, verticalLines)
		drawLine(img, x, rect.Min.Y, x, rect.Max.Y, colGrid)
	}
	for i := 0; i <= horizontalLines; i++ {
		y := rect.Min.Y + (rect.Dy()*i)/max(1, horizontalLines)
		drawLine(img, rect.Min.X, y, rect.Max.X, y, colGrid)
	}
}

func mapIndexToX(idx, total int, rect image.Rectangle) int {
	if total <= 1 {
		return rect.Min.X
	}
	return rect.Min.X + (idx*(rect.Dx()-1))/(total-1)
}

func mapValueToY(value, minV, maxV float64, rect image.Rectangle) int {
	if maxV <= minV {
		return rect.Max.Y
	}
	ratio := (value - minV) / (maxV - minV)
	ratio = math.Max(0, math.Min(1, ratio))
	return rect.Max.Y - int(ratio*float64(rect.Dy()-1))
}

func bounds(values []float64) (float64, float64) {
	minV := values[0]
	maxV := values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	if minV == maxV {
		return minV, maxV + 1
	}
	return minV, maxV
}

func fillRect(img *image.RGBA, rect image.Rectangle, col color.RGBA) {
	r := rect.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, col)
		}
	}
}

func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		if image.Pt(x0, y0).In(img.Bounds()) {
			img.SetRGBA(x0, y0, col)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				break
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				break
			}
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
