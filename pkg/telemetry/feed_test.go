package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeed(t *testing.T) {
	feed := NewFeed()
	first := feed.Subscribe(4)
	second := feed.Subscribe(4)

	feed.Publish(Sample{Tick: 1})
	feed.Publish(Sample{Tick: 2})

	assert.Equal(t, uint64(1), (<-first.Recv()).Tick)
	assert.Equal(t, uint64(1), (<-second.Recv()).Tick)
	assert.Equal(t, uint64(2), (<-first.Recv()).Tick)

	second.Done()
	feed.Publish(Sample{Tick: 3})
	assert.Equal(t, uint64(3), (<-first.Recv()).Tick)

	feed.Close()
	_, ok := <-first.Recv()
	assert.False(t, ok)

	// Publishing to a closed feed reaches nobody
	feed.Publish(Sample{Tick: 4})
	feed.Close()

	late := feed.Subscribe(1)
	_, ok = <-late.Recv()
	assert.False(t, ok)
}

func TestFeedDoneWhilePublishing(t *testing.T) {
	feed := NewFeed()
	subscriber := feed.Subscribe(0)

	published := make(chan struct{})
	go func() {
		feed.Publish(Sample{Tick: 1})
		close(published)
	}()

	subscriber.Done()
	<-published
}
