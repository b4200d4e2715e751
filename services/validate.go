package services

import (
	"regexp"
	"sync/atomic"
)

// emailPattern is the local@domain.tld shape checked before a lookup is
// allowed to hit the network.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// inflight guards a screen's mutating actions so a double trigger cannot
// issue the same request twice while one is pending.
type inflight struct {
	busy atomic.Bool
}

// begin claims the guard; it fails with ErrBusy when a request is already
// running. The caller must release with end.
func (g *inflight) begin() error {
	if !g.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	return nil
}

func (g *inflight) end() {
	g.busy.Store(false)
}
