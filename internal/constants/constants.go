// Package constants defines shared configuration constants.
package constants

import "time"

var (
	ConfigFile = "config.yaml"

	DefaultDir = ".analyst"

	// EnvFile is read from the working directory when present.
	EnvFile = ".env"
)

// Remote exchange defaults.
const (
	// DefaultEndpoint is the analyst chat endpoint of a locally running backend.
	DefaultEndpoint = "http://localhost:8000/analyst_chat"

	// DefaultRequestTimeout of zero leaves timing to the transport.
	DefaultRequestTimeout time.Duration = 0

	// DefaultHealthTimeout bounds `analyst ask --check`.
	DefaultHealthTimeout = 3 * time.Second
)

// Conversation display.
const (
	// DefaultAnimationInterval is the pending-reply frame period.
	DefaultAnimationInterval = 300 * time.Millisecond

	// PlaceholderText is what a fresh assistant placeholder shows.
	PlaceholderText = "."

	// ErrorMarker replaces the placeholder when an exchange fails.
	ErrorMarker = "error"

	// MaxAnimationDots is the longest pending frame.
	MaxAnimationDots = 3

	// InputCharLimit caps the draft length in the interactive UI.
	InputCharLimit = 2000
)

// Stub backend.
const (
	DefaultStubAddr = "127.0.0.1:8000"

	// DefaultStubDelay is the simulated thinking time of the stub backend.
	DefaultStubDelay = 1 * time.Second

	DefaultStubChartGlob = "debug_chart*.json"

	// DefaultStubTextRepeat is how often a text variant sentence is repeated.
	DefaultStubTextRepeat = 60

	DefaultStubShutdownTimeout = 5 * time.Second
)
