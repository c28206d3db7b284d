package model

// Summary holds the results of a conversion for display.
type Summary struct {
	// Output is the converted canonical markup.
	Output string
	// Wrote reports whether Output was written back to the clipboard.
	Wrote bool
	// Message is an informational note shown instead of, or above, the
	// output sections.
	Message string
}
