package config

import "time"

// Layout
const (
	DefaultWindowWidth  = 80
	DefaultWindowHeight = 24

	// rows taken by header, breadcrumb, status and footer
	ChromeHeight = 8

	DefaultColumnNameWidth     = 45
	DefaultColumnSizeWidth     = 10
	DefaultColumnTypeWidth     = 12
	DefaultColumnModifiedWidth = 16
	DefaultTableHeight         = 20

	MinColumnNameWidth = 20
	MaxColumnNameWidth = 80

	DialogDefaultWidth = 50
	DialogLargeWidth   = 70
)

// Behaviour
const (
	// MaxBreadcrumbShortcuts is the number of breadcrumb segments reachable
	// with the digit keys 1-9.
	MaxBreadcrumbShortcuts = 9

	StatusMessageTTL = 3 * time.Second
	ModifiedLayout   = "2006-01-02 15:04"
)
