package loadcheck

// Defaults used when a Config field is left at zero.
const (
	DefaultRequests = 200
	DefaultConcerts = 12
	DefaultArtists  = 8
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	PercentageMultiplier = 100
)
