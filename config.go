package msgcode

import (
	"time"

	"go.uber.org/zap"
)

type Config struct {
	// InheritGlobal makes lookups fall back to the global catalog. It is
	// fixed for the lifetime of the catalog and ignored for the global one.
	InheritGlobal bool

	Logger   *zap.Logger
	Observer Observer

	ObserverBuffer int
	StatsMaxKeys   int
	NowFn          func() time.Time
}

func (cfg *Config) setDefaults() {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.NowFn == nil {
		cfg.NowFn = time.Now
	}
	if cfg.ObserverBuffer <= 0 {
		cfg.ObserverBuffer = 1024
	}
	if cfg.StatsMaxKeys <= 0 {
		cfg.StatsMaxKeys = 512
	}
}
