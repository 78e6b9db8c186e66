package skyscroll

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// debugStats holds per-frame timing and command metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	traverseTime time.Duration
	submitTime   time.Duration
	commandCount int
}

// debugLogEvery throttles frame stats to one line per this many frames.
const debugLogEvery = 60

func (s *Scene) debugLog(stats debugStats) {
	if !s.debug || s.frame%debugLogEvery != 0 {
		return
	}
	s.logger.Debug("frame stats",
		zap.Uint64("frame", s.frame),
		zap.Duration("traverse", stats.traverseTime),
		zap.Duration("submit", stats.submitTime),
		zap.Duration("total", stats.traverseTime+stats.submitTime),
		zap.Int("commands", stats.commandCount),
	)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("skyscroll debug: %s on disposed node %q", op, n.Name))
	}
}
