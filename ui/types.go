// Package ui provides the raylib viewer for the impact network: input
// sliders, preset buttons, the network diagram and the explanation panel.
package ui

import (
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/biodiv/network"
)

// Theme holds UI styling constants.
type Theme struct {
	Background      rl.Color
	PanelBg         rl.Color
	PanelBorder     rl.Color
	SectionHeader   rl.Color
	LabelColor      rl.Color
	ValueColor      rl.Color
	DimColor        rl.Color
	BarBg           rl.Color
	BarFill         rl.Color
	BarFillNegative rl.Color
	BarFillPositive rl.Color
	LevelLow        rl.Color
	LevelModerate   rl.Color
	LevelHigh       rl.Color
	ErrorColor      rl.Color
	Padding         int32
	LineHeight      int32
	LabelWidth      int32
	BarHeight       int32
	FontSize        int32
	HeaderFontSize  int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		Background:      rl.Color{R: 14, G: 17, B: 22, A: 255},
		PanelBg:         rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:     rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:   rl.Yellow,
		LabelColor:      rl.LightGray,
		ValueColor:      rl.RayWhite,
		DimColor:        rl.Color{R: 120, G: 120, B: 120, A: 255},
		BarBg:           rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:         rl.Color{R: 100, G: 150, B: 200, A: 255},
		BarFillNegative: rl.Color{R: 100, G: 100, B: 220, A: 255},
		BarFillPositive: rl.Color{R: 220, G: 100, B: 100, A: 255},
		LevelLow:        rl.Color{R: 76, G: 175, B: 80, A: 255},
		LevelModerate:   rl.Color{R: 255, G: 193, B: 7, A: 255},
		LevelHigh:       rl.Color{R: 244, G: 67, B: 54, A: 255},
		ErrorColor:      rl.Color{R: 255, G: 110, B: 110, A: 255},
		Padding:         10,
		LineHeight:      18,
		LabelWidth:      110,
		BarHeight:       12,
		FontSize:        14,
		HeaderFontSize:  16,
	}
}

// LevelColor returns the badge color for an impact level name.
func (t Theme) LevelColor(level string) rl.Color {
	switch level {
	case network.Low.String():
		return t.LevelLow
	case network.Moderate.String():
		return t.LevelModerate
	case network.High.String():
		return t.LevelHigh
	default:
		return t.DimColor
	}
}

// HexColor parses "#RRGGBB". Malformed strings give gray.
func HexColor(s string) rl.Color {
	s = strings.TrimPrefix(s, "#")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || len(s) != 6 {
		return rl.Gray
	}
	return rl.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}
