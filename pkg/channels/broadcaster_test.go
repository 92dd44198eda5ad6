package channels_test

import (
	"context"
	"testing"
	"time"

	"github.com/alkime/knob/pkg/channels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcaster(t *testing.T) {
	t.Run("error cases", func(t *testing.T) {
		t.Run("subscribe with nil channel", func(t *testing.T) {
			b := channels.NewBroadcaster[float64]()
			err := b.Subscribe(nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "cannot be nil")
		})

		t.Run("subscribe with non-positive timeout", func(t *testing.T) {
			b := channels.NewBroadcaster[float64]()
			ch := make(chan float64, 10)

			for _, d := range []time.Duration{0, -time.Second} {
				err := b.Subscribe(ch, channels.WithTimeout(d))
				require.Error(t, err)
				assert.Contains(t, err.Error(), "must be positive")
			}
		})

		t.Run("run with no subscribers", func(t *testing.T) {
			b := channels.NewBroadcaster[float64]()
			_, err := b.Run(context.Background(), 1)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "no subscribers")
		})

		t.Run("run twice", func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			b := channels.NewBroadcaster[float64]()
			require.NoError(t, b.Subscribe(make(chan float64, 10)))

			_, err := b.Run(ctx, 1)
			require.NoError(t, err)

			_, err = b.Run(ctx, 1)
			assert.ErrorIs(t, err, channels.ErrBroadcasterStarted)
		})

		t.Run("subscribe after run", func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			b := channels.NewBroadcaster[float64]()
			require.NoError(t, b.Subscribe(make(chan float64, 10)))

			_, err := b.Run(ctx, 1)
			require.NoError(t, err)

			assert.ErrorIs(t, b.Subscribe(make(chan float64, 10)), channels.ErrBroadcasterStarted)
		})
	})

	t.Run("every subscriber receives every value in order", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		b := channels.NewBroadcaster[float64]()
		subs := []chan float64{make(chan float64, 10), make(chan float64, 10), make(chan float64, 10)}
		for _, s := range subs {
			require.NoError(t, b.Subscribe(s))
		}

		input, err := b.Run(ctx, 4)
		require.NoError(t, err)

		input <- 0.1
		input <- 0.2
		input <- 0.3

		cancel()
		b.Wait()

		for _, s := range subs {
			close(s)
			assert.Equal(t, []float64{0.1, 0.2, 0.3}, channels.ReceiveAll(s, 10*time.Millisecond, 0))
		}
	})

	t.Run("message dropping", func(t *testing.T) {
		t.Run("non-blocking subscriber drops when full", func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			b := channels.NewBroadcaster[float64]()
			sub := make(chan float64, 1)
			require.NoError(t, b.Subscribe(sub))

			input, err := b.Run(ctx, 2)
			require.NoError(t, err)

			input <- 1
			input <- 2

			cancel()
			b.Wait()
			close(sub)

			assert.Equal(t, []float64{1}, channels.ReceiveAll(sub, 10*time.Millisecond, 0))
		})

		t.Run("timeout subscriber drops on timeout", func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			b := channels.NewBroadcaster[float64]()
			sub := make(chan float64, 1)
			require.NoError(t, b.Subscribe(sub, channels.WithTimeout(time.Millisecond)))

			input, err := b.Run(ctx, 2)
			require.NoError(t, err)

			input <- 1
			input <- 2

			cancel()
			b.Wait()
			close(sub)

			assert.Equal(t, []float64{1}, channels.ReceiveAll(sub, 10*time.Millisecond, 0))
		})

		t.Run("full subscriber does not hold up a ready one", func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			b := channels.NewBroadcaster[float64]()
			full := make(chan float64, 1)
			full <- 99
			ready := make(chan float64, 10)

			require.NoError(t, b.Subscribe(full, channels.WithName("full")))
			require.NoError(t, b.Subscribe(ready, channels.WithName("ready")))

			input, err := b.Run(ctx, 5)
			require.NoError(t, err)

			for i := 1; i <= 5; i++ {
				input <- float64(i)
			}

			cancel()
			b.Wait()

			close(ready)
			assert.Equal(t, []float64{1, 2, 3, 4, 5}, channels.ReceiveAll(ready, 10*time.Millisecond, 0))

			stats := b.Stats()
			require.Len(t, stats, 2)
			assert.Equal(t, channels.SubscriberStats{Name: "full", Dropped: 5}, stats[0])
			assert.Equal(t, channels.SubscriberStats{Name: "ready"}, stats[1])
		})
	})

	t.Run("closed subscriber becomes inactive", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		b := channels.NewBroadcaster[float64]()
		gone := make(chan float64, 10)
		live := make(chan float64, 10)
		require.NoError(t, b.Subscribe(gone))
		require.NoError(t, b.Subscribe(live))

		input, err := b.Run(ctx, 2)
		require.NoError(t, err)

		close(gone)
		input <- 1
		input <- 2

		cancel()
		b.Wait()

		stats := b.Stats()
		require.Len(t, stats, 2)
		assert.Equal(t, "subscriber-0", stats[0].Name)
		assert.Equal(t, 2, stats[0].Dropped)
		assert.True(t, stats[0].Inactive)
		assert.Equal(t, 0, stats[1].Dropped)
		assert.False(t, stats[1].Inactive)
	})

	t.Run("wait returns once drained", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		b := channels.NewBroadcaster[float64]()
		sub := make(chan float64, 10)
		require.NoError(t, b.Subscribe(sub))

		input, err := b.Run(ctx, 1)
		require.NoError(t, err)

		input <- 42

		cancel()
		start := time.Now()
		b.Wait()
		assert.Less(t, time.Since(start), 100*time.Millisecond)

		close(sub)
		assert.Equal(t, []float64{42}, channels.ReceiveAll(sub, 10*time.Millisecond, 0))
	})
}

func TestReceiveAll(t *testing.T) {
	t.Parallel()

	ch := make(chan int, 5)
	for i := range 5 {
		ch <- i
	}

	assert.Equal(t, []int{0, 1, 2}, channels.ReceiveAll(ch, 10*time.Millisecond, 3))
	assert.Equal(t, []int{3, 4}, channels.ReceiveAll(ch, 10*time.Millisecond, 0), "stops when idle")

	close(ch)
	assert.Empty(t, channels.ReceiveAll(ch, time.Second, 0), "stops when closed")
}
