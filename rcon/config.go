package rcon

import (
	"time"

	"github.com/rs/zerolog"
)

// Config holds the connection settings of a Session
type Config struct {
	Host     string
	Port     string
	Password string

	// Timeout bounds connect, send and every receive. Zero means DefaultTimeout.
	Timeout time.Duration
	// ReadSize caps a single receive. Zero means DefaultReadSize.
	ReadSize int

	// Logger receives diagnostic events. Nil disables them.
	Logger *zerolog.Logger
}

func (c Config) withDefaults() Config {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == "" {
		c.Port = DefaultPort
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.ReadSize <= 0 {
		c.ReadSize = DefaultReadSize
	}
	return c
}

func (c Config) logger() zerolog.Logger {
	if c.Logger == nil {
		return zerolog.Nop()
	}
	return *c.Logger
}
