package tui

import (
	"fmt"
	"strings"

	"yqt-signal-desk/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// FormatSnapshot renders a market snapshot as a single line.
func FormatSnapshot(s domain.MarketSnapshot) string {
	if s.Market == domain.MarketForex {
		return fmt.Sprintf("%-10s %12.4f", s.Asset, s.Price)
	}
	return fmt.Sprintf("%-10s %12.2f", s.Asset, s.Price)
}

// FormatSignal renders a logged signal as a single line.
func FormatSignal(s domain.MarketSignal) string {
	style := actionStyle(s.Action)
	return fmt.Sprintf("[%s] %-10s %-4s %s (Conf: %d%%) %s",
		s.Timestamp,
		s.Asset,
		s.Timeframe,
		style.Render(string(s.Action)),
		s.Confidence,
		SubtextStyle.Render(s.Reasoning),
	)
}

// RenderSparkline compresses a price window into a unicode sparkline.
func RenderSparkline(points []domain.PricePoint, width int) string {
	if len(points) == 0 {
		return SubtextStyle.Render("no data")
	}
	if width <= 0 || width > len(points) {
		width = len(points)
	}
	points = points[len(points)-width:]

	minV := points[0].Price
	maxV := points[0].Price
	for _, p := range points {
		if p.Price < minV {
			minV = p.Price
		}
		if p.Price > maxV {
			maxV = p.Price
		}
	}

	var sb strings.Builder
	for _, p := range points {
		idx := 0
		if maxV > minV {
			idx = int((p.Price - minV) / (maxV - minV) * float64(len(sparkRunes)-1))
		}
		sb.WriteRune(sparkRunes[idx])
	}
	return SparklineStyle.Render(sb.String())
}

// RenderConfidenceBar draws the oracle's confidence as a filled bar.
func RenderConfidenceBar(confidence, barWidth int) string {
	if barWidth <= 0 {
		barWidth = 20
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}
	filled := confidence * barWidth / 100

	style := ConfidenceHighStyle
	if confidence < 40 {
		style = ConfidenceLowStyle
	} else if confidence < 70 {
		style = ConfidenceMedStyle
	}

	bar := style.Render(strings.Repeat("█", filled)) + SubtextStyle.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("%s %d%%", bar, confidence)
}

func actionStyle(action domain.SignalAction) lipgloss.Style {
	switch action {
	case domain.ActionBuy:
		return ActionBuyStyle
	case domain.ActionSell:
		return ActionSellStyle
	default:
		return ActionHoldStyle
	}
}
