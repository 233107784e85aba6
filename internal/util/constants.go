package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04"
)

// flash categories
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// gin context keys
const (
	ContextUserKey    = "user"
	ContextClaimsKey  = "claims"
	ContextFlashesKey = "flashes"
)
