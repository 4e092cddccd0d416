package theme

import "github.com/HaiFongPan/dirnav/internal/utils"

// Palette shared by the browser views. Values stay close to the ANSI
// bright colors so they read well on dark and light terminals.
const (
	ColorWhite        = "#FFFFFF"
	ColorBrightBlack  = "#808080"
	ColorBrightBlue   = "#5C7CFA"
	ColorBrightCyan   = "#66D9E8"
	ColorBrightGreen  = "#51CF66"
	ColorBrightYellow = "#FFD43B"
	ColorBrightRed    = "#FF6B6B"
	ColorSelectionBg  = "#4A90E2"
	ColorHeaderBg     = "#1A1A1A"

	ColorDirectory        = "#5C7CFA"
	ColorFileImage        = "#74C0FC"
	ColorFileDocument     = "#51CF66"
	ColorFileSpreadsheet  = "#69DB7C"
	ColorFilePresentation = "#FFD43B"
	ColorFileArchive      = "#FCC419"
	ColorFileVideo        = "#FF8787"
	ColorFileAudio        = "#DA77F2"
	ColorFileText         = "#C5F6FA"
	ColorFileCode         = "#B197FC"
	ColorFileData         = "#99E9F2"
	ColorFileFont         = "#FFB3BA"
)

var categoryColors = map[string]string{
	utils.CategoryDirectory:    ColorDirectory,
	utils.CategoryImage:        ColorFileImage,
	utils.CategoryDocument:     ColorFileDocument,
	utils.CategorySpreadsheet:  ColorFileSpreadsheet,
	utils.CategoryPresentation: ColorFilePresentation,
	utils.CategoryArchive:      ColorFileArchive,
	utils.CategoryVideo:        ColorFileVideo,
	utils.CategoryAudio:        ColorFileAudio,
	utils.CategoryText:         ColorFileText,
	utils.CategoryCode:         ColorFileCode,
	utils.CategoryData:         ColorFileData,
	utils.CategoryFont:         ColorFileFont,
}

var categoryIcons = map[string]string{
	utils.CategoryDirectory:    "📁",
	utils.CategoryImage:        "🖼️",
	utils.CategoryDocument:     "📝",
	utils.CategorySpreadsheet:  "📊",
	utils.CategoryPresentation: "📽️",
	utils.CategoryArchive:      "📦",
	utils.CategoryVideo:        "🎬",
	utils.CategoryAudio:        "🎵",
	utils.CategoryCode:         "💻",
	utils.CategoryData:         "🗃️",
	utils.CategoryFont:         "🔤",
}

// GetFileColor returns the color for a file category.
func GetFileColor(category string) string {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return ColorWhite
}

// GetFileIcon returns the icon for a file category.
func GetFileIcon(category string) string {
	if i, ok := categoryIcons[category]; ok {
		return i
	}
	return "📄"
}
