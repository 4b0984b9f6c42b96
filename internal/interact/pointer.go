package interact

import "github.com/san-kum/tradenet/internal/render"

// Subscription delivers pointer events for the epoch it was acquired in. It
// is released by Release, by the next Adopt or by Close, whichever comes
// first; events on a released subscription are ignored.
type Subscription struct {
	s        *Session
	epoch    Epoch
	released bool
}

// Subscribe acquires a pointer subscription bound to the current epoch.
// It returns nil on a closed session.
func (s *Session) Subscribe() *Subscription {
	if s.closed {
		return nil
	}
	sub := &Subscription{s: s, epoch: s.epoch}
	s.subs[sub] = struct{}{}
	return sub
}

// Subscriptions is the number of live subscriptions.
func (s *Session) Subscriptions() int { return len(s.subs) }

func (sub *Subscription) Active() bool {
	return sub != nil && !sub.released && sub.s.current(sub.epoch)
}

func (sub *Subscription) Epoch() Epoch { return sub.epoch }

// Move hit-tests the pointer at px and reports whether the hover target
// changed.
func (sub *Subscription) Move(px render.Pixel) bool {
	if !sub.Active() {
		return false
	}
	s := sub.s
	pos := s.engine.Positions()
	h := HitTest(s.graph, pos, s.viewport(pos), s.style, s.hit, px)
	return s.setHover(h)
}

// Leave clears the hover target when the pointer leaves the surface.
func (sub *Subscription) Leave() bool {
	if !sub.Active() {
		return false
	}
	return sub.s.setHover(NoTarget())
}

func (sub *Subscription) Release() {
	if sub == nil || sub.released {
		return
	}
	sub.released = true
	delete(sub.s.subs, sub)
}
