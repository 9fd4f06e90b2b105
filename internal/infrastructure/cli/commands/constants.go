package commands

// Error messages
const (
	ErrNoInput = "provide news text as arguments, via --url, or on stdin"
	ErrBothSet = "use either text arguments or --url, not both"
)

// Success messages
const (
	MsgConfigurationValid       = "Configuration valid"
	MsgNoDifferencesFromDefault = "No differences from default configuration."
)
