package cli

// Default values for CLI flags and formatted output.
const (
	// TabWidth is the width of tabs in formatted output.
	TabWidth = 2
	// MaxNameLength is the maximum length of a device name to display.
	MaxNameLength = 30
	// EventTimeFormat is how event timestamps print in log listings.
	EventTimeFormat = "2006-01-02 15:04:05"
)
