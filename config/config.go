// Package config validates the node-fanout knobs of an rtree.RTree,
// the way this lineage treats every tunable: clamp to a sane default
// and log a warning rather than fail the caller.
package config

import (
	"github.com/tormol/geoindex/logger"
	"github.com/tormol/geoindex/rtree"
)

// RTreeConfig mirrors rtree.Config before validation.
type RTreeConfig struct {
	MaxNodeEntries int
	MinNodeEntries int
}

// Load validates cfg against the legal range (MaxNodeEntries >= 2,
// 1 <= MinNodeEntries <= MaxNodeEntries/2), clamping to the package
// defaults and logging once if it doesn't hold, then returns the
// rtree.Config ready to pass to rtree.New.
func Load(cfg RTreeConfig, log *logger.Logger) rtree.Config {
	maxE, minE := cfg.MaxNodeEntries, cfg.MinNodeEntries
	if maxE < 2 || minE < 1 || minE > maxE/2 {
		if log != nil {
			log.Warning("invalid node fanout (max=%d, min=%d), using defaults (%d, %d)",
				maxE, minE, rtree.DefaultMaxNodeEntries, rtree.DefaultMinNodeEntries)
		}
		maxE, minE = int(rtree.DefaultMaxNodeEntries), int(rtree.DefaultMinNodeEntries)
	}
	return rtree.Config{MaxNodeEntries: maxE, MinNodeEntries: minE}
}
