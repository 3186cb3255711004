package render

import (
	"github.com/gdamore/tcell/v2"
)

// RGB color definitions
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbBorder     = tcell.NewRGBColor(86, 95, 137)   // Muted blue-gray frame
	RgbStatusBar  = tcell.NewRGBColor(255, 255, 255) // White
	RgbHUDLabel   = tcell.NewRGBColor(180, 180, 180) // Brighter gray

	RgbSnakeHead = tcell.NewRGBColor(50, 255, 50) // Bright Green
	RgbSnakeBody = tcell.NewRGBColor(0, 200, 0)   // Normal Green
	RgbSnakeDead = tcell.NewRGBColor(180, 50, 50) // Dark Red once crashed

	RgbFood = tcell.NewRGBColor(255, 80, 80) // Normal Red

	RgbOverlayText = tcell.NewRGBColor(255, 255, 0)   // Bright Yellow
	RgbOverlayHint = tcell.NewRGBColor(140, 190, 255) // Bright Blue
	RgbOverlayBg   = tcell.NewRGBColor(40, 42, 60)    // Slightly lifted background

	RgbDifficultyEasy   = tcell.NewRGBColor(0, 200, 0)   // Green
	RgbDifficultyMedium = tcell.NewRGBColor(255, 165, 0) // Orange
	RgbDifficultyHard   = tcell.NewRGBColor(255, 80, 80) // Red
)

// Base styles
var (
	styleDefault = tcell.StyleDefault.Background(RgbBackground)
	styleBorder  = styleDefault.Foreground(RgbBorder)
	styleHUD     = styleDefault.Foreground(RgbStatusBar)
	styleLabel   = styleDefault.Foreground(RgbHUDLabel)
	styleHead    = styleDefault.Foreground(RgbSnakeHead)
	styleBody    = styleDefault.Foreground(RgbSnakeBody)
	styleDead    = styleDefault.Foreground(RgbSnakeDead)
	styleFood    = styleDefault.Foreground(RgbFood)
	styleTitle   = tcell.StyleDefault.Background(RgbOverlayBg).Foreground(RgbOverlayText).Bold(true)
	styleHint    = tcell.StyleDefault.Background(RgbOverlayBg).Foreground(RgbOverlayHint)
)
