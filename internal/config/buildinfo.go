package config

import "time"

// Fill with -ldflags on build.
var (
	AppName   = "seller-apis"
	Version   = "dev"
	Commit    = "none"
	BuildTime = "" // ISO8601
)

var StartedAt = time.Now()
