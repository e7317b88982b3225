package mach

import (
	"time"
)

// debugStats holds per-frame timing and hook counts.
// Only populated when Scene.debug is true.
type debugStats struct {
	hookTime    time.Duration
	tickTime    time.Duration
	mounts      int
	updates     int
	jobs        int
	taskCount   int
	objectCount int
}

// debugMaxObjects is the object count above which Add warns.
const debugMaxObjects = 1000

// debugLog prints timing and hook stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.logf("frame %d | hooks: %v | ticker: %v | total: %v",
		s.frame, stats.hookTime, stats.tickTime, stats.hookTime+stats.tickTime)
	s.logf("objects: %d | mounts: %d | updates: %d | jobs: %d | tasks: %d",
		stats.objectCount, stats.mounts, stats.updates, stats.jobs, stats.taskCount)
}
