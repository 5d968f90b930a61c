package httpserver

import "time"

type Config struct {
	Addr string
	// Debug 允许 ?debug=1 返回权威棋盘
	Debug             bool
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
	WSPingInterval    time.Duration
}

func DefaultConfig() Config {
	return Config{
		Addr:              ":2888",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		WSPingInterval:    30 * time.Second,
	}
}
