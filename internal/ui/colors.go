package ui

// ColorReset returns the escape sequence that clears all formatting.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorGreen returns the success color of the active theme.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorRed returns the error color of the active theme.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorYellow returns the warning color of the active theme.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorDim returns the secondary color of the active theme.
func ColorDim() string { return GetCurrentTheme().Secondary }

// ColorBold returns the bold escape sequence of the active theme.
func ColorBold() string { return GetCurrentTheme().Bold }
