package utils

import (
	"fmt"
	"time"
)

// MessageType is a custom type used as a placeholder for various message types.
type MessageType int

// The message types used across the CLI application.
const (
	DefaultMessage MessageType = iota
	SuccessMessage
	ErrorMessage
	StatusMessage
)

// Colors used across the CLI application.
const (
	DefaultColor = "\x1b[0m"
	StatusColor  = "\x1b[36m"
	SuccessColor = "\x1b[32m"
	ErrorColor   = "\x1b[31m"
)

var palette = map[MessageType]string{
	DefaultMessage: DefaultColor,
	StatusMessage:  StatusColor,
	SuccessMessage: SuccessColor,
	ErrorMessage:   ErrorColor,
}

// DecorateText wraps the message in the terminal color of its type.
// Unknown message types are returned untouched.
func DecorateText(s string, msgType MessageType) string {
	color, ok := palette[msgType]
	if !ok {
		return s
	}
	return color + s + DefaultColor
}

// FormatTime formats a time.Duration to a human readable value, like "1h 2m 3.40s".
func FormatTime(d time.Duration) string {
	secs := d.Seconds() - float64(int64(d.Minutes())*60)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%dm %.2fs", int64(d.Minutes()), secs)
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh %dm %.2fs", int64(d.Hours()), int64(d.Minutes())%60, secs)
	}
	return fmt.Sprintf("%dd %dh %dm %.2fs",
		int64(d.Hours())/24, int64(d.Hours())%24, int64(d.Minutes())%60, secs)
}

// FormatScale returns the zoom factor as a percentage, like "12.5%".
func FormatScale(scale float64) string {
	return fmt.Sprintf("%.1f%%", scale*100)
}
