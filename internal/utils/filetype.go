package utils

import (
	"mime"
	"path"
	"strings"
)

// File categories used for coloring and the TYPE column.
const (
	CategoryDirectory    = "dir"
	CategoryImage        = "image"
	CategoryVideo        = "video"
	CategoryAudio        = "audio"
	CategoryText         = "text"
	CategoryDocument     = "document"
	CategorySpreadsheet  = "spreadsheet"
	CategoryPresentation = "presentation"
	CategoryArchive      = "archive"
	CategoryCode         = "code"
	CategoryData         = "data"
	CategoryFont         = "font"
	CategoryOther        = "other"
)

var extCategories = map[string]string{
	".jpg": CategoryImage, ".jpeg": CategoryImage, ".png": CategoryImage, ".gif": CategoryImage,
	".webp": CategoryImage, ".bmp": CategoryImage, ".svg": CategoryImage, ".tif": CategoryImage,
	".tiff": CategoryImage, ".heic": CategoryImage, ".ico": CategoryImage,

	".mp4": CategoryVideo, ".mov": CategoryVideo, ".avi": CategoryVideo, ".mkv": CategoryVideo, ".webm": CategoryVideo,

	".mp3": CategoryAudio, ".wav": CategoryAudio, ".flac": CategoryAudio, ".ogg": CategoryAudio, ".m4a": CategoryAudio,

	".txt": CategoryText, ".md": CategoryText, ".log": CategoryText, ".rst": CategoryText,

	".pdf": CategoryDocument, ".doc": CategoryDocument, ".docx": CategoryDocument, ".odt": CategoryDocument,
	".xls": CategorySpreadsheet, ".xlsx": CategorySpreadsheet, ".ods": CategorySpreadsheet, ".csv": CategorySpreadsheet,
	".ppt": CategoryPresentation, ".pptx": CategoryPresentation, ".key": CategoryPresentation,

	".zip": CategoryArchive, ".tar": CategoryArchive, ".gz": CategoryArchive, ".tgz": CategoryArchive,
	".bz2": CategoryArchive, ".xz": CategoryArchive, ".7z": CategoryArchive, ".rar": CategoryArchive,

	".go": CategoryCode, ".py": CategoryCode, ".js": CategoryCode, ".ts": CategoryCode, ".tsx": CategoryCode,
	".rs": CategoryCode, ".c": CategoryCode, ".h": CategoryCode, ".java": CategoryCode, ".sh": CategoryCode,
	".html": CategoryCode, ".css": CategoryCode,

	".json": CategoryData, ".yaml": CategoryData, ".yml": CategoryData, ".toml": CategoryData,
	".xml": CategoryData, ".sqlite": CategoryData, ".db": CategoryData,

	".ttf": CategoryFont, ".otf": CategoryFont, ".woff": CategoryFont, ".woff2": CategoryFont,
}

// FileCategory classifies a file by its name.
func FileCategory(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if c, ok := extCategories[ext]; ok {
		return c
	}
	return categoryFromContentType(mime.TypeByExtension(ext))
}

// IsImage reports whether name looks like an image the thumbnail endpoint
// can decode.
func IsImage(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff":
		return true
	}
	return false
}

func categoryFromContentType(ct string) string {
	switch {
	case strings.HasPrefix(ct, "image/"):
		return CategoryImage
	case strings.HasPrefix(ct, "video/"):
		return CategoryVideo
	case strings.HasPrefix(ct, "audio/"):
		return CategoryAudio
	case strings.HasPrefix(ct, "text/"):
		return CategoryText
	default:
		return CategoryOther
	}
}
