package compression

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arithma_tech/entity"
	"arithma_tech/pkg/logger"
)

func TestSimulatedProgress(t *testing.T) {
	p := NewSimulatedProgress(30)

	assert.Equal(t, 30, p.Advance())
	assert.Equal(t, 60, p.Advance())
	assert.Equal(t, 90, p.Advance())
	assert.Equal(t, 100, p.Advance())
	assert.False(t, p.Complete())
	assert.Equal(t, 100, p.Advance())
	assert.True(t, p.Complete())
}

func TestSimulatedProgressDefaultStep(t *testing.T) {
	p := NewSimulatedProgress(0)
	assert.Equal(t, DefaultStep, p.Advance())
}

func TestFormatMatcher(t *testing.T) {
	m, err := NewFormatMatcher([]string{".PNG", "jpg", "jpg", " gif "})
	require.NoError(t, err)

	assert.Equal(t, []string{"png", "jpg", "gif"}, m.Formats())
	assert.Equal(t, "PNG, JPG, GIF", m.Describe())

	assert.True(t, m.Match("/a/b/photo.png"))
	assert.True(t, m.Match("C.JPG"))
	assert.True(t, m.Match("dir.png/anim.gif"))
	assert.False(t, m.Match("/a/photo.png.txt"))
	assert.False(t, m.Match("/a/photo"))
	assert.False(t, m.Match("/a/photo.jpeg"))

	_, err = NewFormatMatcher([]string{"", "."})
	assert.Error(t, err)
}

func TestRunnerDrivesToCompletion(t *testing.T) {
	l := logger.NewWithWriter("error", io.Discard)
	c := NewController(&fakeHistory{}, l,
		WithTickIntervals(time.Millisecond, time.Millisecond),
		WithProgressFactory(SimulatedFactory(25)))
	require.NoError(t, c.SelectFile("/pics/cat.png"))
	_, err := c.RequestCompress(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, NewRunner(c, l).Run(ctx))
	assert.False(t, c.Busy())
	assert.Equal(t, StatusCompressed, c.Status().Code)
}

func TestRunnerIdleReturnsImmediately(t *testing.T) {
	l := logger.NewWithWriter("error", io.Discard)
	c := NewController(&fakeHistory{}, l)
	assert.NoError(t, NewRunner(c, l).Run(context.Background()))
}

func TestRunnerHonorsContext(t *testing.T) {
	l := logger.NewWithWriter("error", io.Discard)
	c := NewController(&fakeHistory{}, l, WithTickIntervals(time.Hour, time.Hour))
	require.NoError(t, c.SwitchMode(entity.ModeText))
	require.NoError(t, c.SetText("x"))
	_, err := c.RequestCompress(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NewRunner(c, l).Run(ctx), context.Canceled)
	assert.True(t, c.Busy())
}
