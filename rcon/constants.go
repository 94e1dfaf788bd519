package rcon

import "time"

const (
	Version         = "0.1.0"
	AppName         = "srcon-go"
	DefaultPort     = "27020"
	DefaultHost     = "localhost"
	DefaultTimeout  = 5 * time.Second
	DefaultReadSize = 4096
	MaxWaitTime     = 600

	// MaxCommandLength is the largest command body accepted by Command.
	MaxCommandLength = DefaultReadSize - 1

	headerSize = 12
	// id (4) + type (4) + two null terminators
	packetOverhead = 10
	authFailureID  = -1
)
