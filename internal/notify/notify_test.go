package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time          { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestCenter(opts ...Option) (*Center, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	return NewCenter(append([]Option{WithClock(clock.Now)}, opts...)...), clock
}

func TestNotifyQueuesMessage(t *testing.T) {
	c, clock := newTestCenter()

	c.Notify("Part registered.", KindSuccess)
	active := c.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "Part registered.", active[0].Message)
	assert.Equal(t, KindSuccess, active[0].Kind)
	assert.Equal(t, clock.t.Add(DefaultDuration), active[0].ExpiresAt)
}

func TestEmptyKindDefaultsToInfo(t *testing.T) {
	c, _ := newTestCenter()

	c.Notify("hello", "")
	assert.Equal(t, KindInfo, c.Active()[0].Kind)
}

func TestExpiryAndDismissAnimation(t *testing.T) {
	c, clock := newTestCenter()
	c.Notify("saved", KindSuccess)

	clock.Advance(DefaultDuration - time.Millisecond)
	active := c.Active()
	require.Len(t, active, 1)
	assert.False(t, active[0].Dismissing(clock.t))

	clock.Advance(time.Millisecond)
	active = c.Active()
	require.Len(t, active, 1)
	assert.True(t, active[0].Dismissing(clock.t))

	clock.Advance(DismissDuration)
	assert.Empty(t, c.Active())
}

func TestCapacityDropsOldest(t *testing.T) {
	c, _ := newTestCenter(WithCapacity(2))

	c.Notify("one", KindInfo)
	c.Notify("two", KindInfo)
	c.Notify("three", KindInfo)

	active := c.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "two", active[0].Message)
	assert.Equal(t, "three", active[1].Message)
}

func TestDismiss(t *testing.T) {
	c, _ := newTestCenter()
	c.Notify("one", KindInfo)
	c.Notify("two", KindInfo)

	c.Dismiss(c.Active()[0].ID)
	active := c.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "two", active[0].Message)
}

func TestNextDeadline(t *testing.T) {
	c, clock := newTestCenter()

	_, ok := c.NextDeadline()
	assert.False(t, ok)

	start := clock.t
	c.Notify("one", KindInfo)
	clock.Advance(time.Second)
	c.Notify("two", KindInfo)

	next, ok := c.NextDeadline()
	require.True(t, ok)
	assert.Equal(t, start.Add(DefaultDuration), next)

	clock.Advance(2 * time.Second)
	next, _ = c.NextDeadline()
	assert.Equal(t, start.Add(DefaultDuration+DismissDuration), next)
}

func TestSubscribe(t *testing.T) {
	c, clock := newTestCenter()
	calls := 0
	unsubscribe := c.Subscribe(func() { calls++ })

	c.Notify("one", KindInfo)
	assert.Equal(t, 1, calls)

	clock.Advance(DefaultDuration + DismissDuration)
	assert.Equal(t, 1, c.Prune())
	assert.Equal(t, 2, calls)

	unsubscribe()
	c.Notify("two", KindInfo)
	assert.Equal(t, 2, calls)
}

func TestWithDuration(t *testing.T) {
	c, clock := newTestCenter(WithDuration(time.Second))
	c.Notify("short", KindWarning)

	clock.Advance(time.Second + DismissDuration)
	assert.Empty(t, c.Active())
}
