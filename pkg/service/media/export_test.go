package media

// Exported for testing
var (
	SplitRef     = splitRef
	SanitizeName = sanitizeName
)
