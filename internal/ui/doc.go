// Package ui holds the color themes shared by the plain-terminal reporter
// and the bubbletea view. The active theme is process-wide and chosen once
// at startup by InitTheme.
package ui
