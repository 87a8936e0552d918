package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for input validation. Controllers map these onto wire
// error codes; everything else is a dependency failure.
var (
	ErrInvalidTimestamp = goerr.New("timestamp is missing or not ISO-8601")
	ErrInvalidDate      = goerr.New("date is not YYYY-MM-DD")
)
