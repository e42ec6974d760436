package telemetry

import (
	"github.com/sasha-s/go-deadlock"
)

// Feed fans samples out to any number of subscribers. Publish blocks until
// every subscriber has room for the sample.
type Feed struct {
	subscribers map[chan Sample]struct{}
	closed      bool
	mutex       deadlock.Mutex
}

func NewFeed() *Feed {
	return &Feed{
		subscribers: make(map[chan Sample]struct{}),
	}
}

func (f *Feed) Publish(sample Sample) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	for subscriber := range f.subscribers {
		subscriber <- sample
	}
}

// Close ends every subscription. Receivers see their channel closed once
// the remaining samples are drained.
func (f *Feed) Close() {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	for subscriber := range f.subscribers {
		close(subscriber)
		delete(f.subscribers, subscriber)
	}
}

type Subscriber struct {
	channel chan Sample
	feed    *Feed
}

func (f *Feed) Subscribe(buffer int) *Subscriber {
	channel := make(chan Sample, buffer)
	f.mutex.Lock()
	if f.closed {
		close(channel)
	} else {
		f.subscribers[channel] = struct{}{}
	}
	f.mutex.Unlock()

	return &Subscriber{channel, f}
}

func (s *Subscriber) Recv() <-chan Sample {
	return s.channel
}

// Done unsubscribes. Samples published meanwhile are discarded.
func (s *Subscriber) Done() {
	stop := make(chan struct{})
	go func() {
		for {
			select {
			case _, ok := <-s.channel:
				if !ok {
					return
				}
			case <-stop:
				return
			}
		}
	}()

	feed := s.feed
	feed.mutex.Lock()
	if _, ok := feed.subscribers[s.channel]; ok {
		delete(feed.subscribers, s.channel)
		close(s.channel)
	}
	feed.mutex.Unlock()
	close(stop)
}
