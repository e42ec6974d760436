// Package pausableticker paces a fixed-step simulation in wall-clock time.
package pausableticker

import (
	"time"

	"github.com/sasha-s/go-deadlock"
)

// Ticker delivers consecutive tick indices, starting at 1, once per period.
// Ticks are not delivered while paused and the count does not advance.
type Ticker struct {
	C <-chan uint64

	deadlock.Mutex
	pause  chan bool
	paused bool
	stop   chan struct{}
	ticker *time.Ticker
}

func New(d time.Duration) *Ticker {
	c := make(chan uint64)
	t := &Ticker{
		C:      c,
		pause:  make(chan bool),
		stop:   make(chan struct{}),
		ticker: time.NewTicker(d),
	}

	go t.run(c, t.pause, t.stop)

	return t
}

func (t *Ticker) run(c chan<- uint64, pause <-chan bool, stop chan struct{}) {
	defer close(stop)

	var tick uint64
	for {
		select {
		case <-t.ticker.C:
			tick++
			select {
			case c <- tick:
			case shouldPause := <-pause:
				// The pending tick is dropped and delivered again later.
				tick--
				if shouldPause && !t.hold(pause, stop) {
					return
				}
			case <-stop:
				return
			}
		case shouldPause := <-pause:
			if shouldPause && !t.hold(pause, stop) {
				return
			}
		case <-stop:
			return
		}
	}
}

// hold blocks until the ticker is resumed. It returns false if the ticker
// was stopped instead.
func (t *Ticker) hold(pause <-chan bool, stop <-chan struct{}) bool {
	t.setPaused(true)
	defer t.setPaused(false)

	for {
		select {
		case shouldPause, ok := <-pause:
			if !ok {
				return false
			}
			if !shouldPause {
				return true
			}
		case <-stop:
			return false
		}
	}
}

func (t *Ticker) setPaused(paused bool) {
	t.Lock()
	t.paused = paused
	t.Unlock()
}

func (t *Ticker) Pause() {
	t.Lock()
	pause := t.pause
	t.Unlock()

	if pause != nil {
		pause <- true
	}
}

func (t *Ticker) Paused() bool {
	t.Lock()
	defer t.Unlock()
	return t.paused
}

func (t *Ticker) Resume() {
	t.Lock()
	pause := t.pause
	t.Unlock()

	if pause != nil {
		pause <- false
	}
}

func (t *Ticker) Stop() {
	t.Lock()
	stop := t.stop
	t.pause = nil
	t.stop = nil
	t.Unlock()

	if stop != nil {
		stop <- struct{}{}
		<-stop
		t.ticker.Stop()
	}
}

func (t *Ticker) Stopped() bool {
	t.Lock()
	defer t.Unlock()
	return t.stop == nil
}
