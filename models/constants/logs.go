package constants

import "github.com/rs/zerolog"

const (
	LogFileName      = "fileName"
	LogRunID         = "runID"
	LogScanMode      = "scanMode"
	LogTwitterID     = "twitterID"
	LogTwitterName   = "twitterName"
	LogTweetNumber   = "tweetNumber"
	LogTickerNumber  = "tickerNumber"
	LogPageNumber    = "pageNumber"
	LogStatusCode    = "statusCode"
	LogWait          = "wait"
	LogWindowStart   = "windowStart"
	LogWindowEnd     = "windowEnd"
	LogLevelFallback = zerolog.InfoLevel
)
