package input

import (
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestLatchLatestValueWins(t *testing.T) {
	l := NewLatch()
	l.Push(Move(1, 0))
	l.Push(Move(0.5, -0.5))
	l.Push(Event{Kind: SprintPressed})

	in := l.Poll()
	assert.Equal(t, mgl64.Vec2{0.5, -0.5}, in.Move)
	assert.True(t, in.Sprint)
	assert.False(t, in.Jump)

	// held values survive polling
	in = l.Poll()
	assert.Equal(t, mgl64.Vec2{0.5, -0.5}, in.Move)
	assert.True(t, in.Sprint)

	l.Push(Event{Kind: MoveCanceled})
	l.Push(Event{Kind: SprintReleased})
	in = l.Poll()
	assert.Equal(t, mgl64.Vec2{}, in.Move)
	assert.False(t, in.Sprint)
}

func TestLatchJumpConsumedOnce(t *testing.T) {
	l := NewLatch()
	l.Push(Event{Kind: JumpPressed})
	l.Push(Event{Kind: JumpPressed})

	assert.True(t, l.Poll().Jump)
	assert.False(t, l.Poll().Jump)
}

func TestLatchLookAccumulates(t *testing.T) {
	l := NewLatch()
	l.Push(Look(1, 2))
	l.Push(Look(3, -1))
	assert.Equal(t, mgl64.Vec2{4, 1}, l.Poll().Look)
	assert.Equal(t, mgl64.Vec2{}, l.Poll().Look)
}

func TestLatchClampsMoveAxis(t *testing.T) {
	l := NewLatch()
	l.Push(Move(3, -7))
	assert.Equal(t, mgl64.Vec2{1, -1}, l.Poll().Move)
}

func TestLatchReset(t *testing.T) {
	l := NewLatch()
	l.Push(Move(1, 1))
	l.Push(Event{Kind: JumpPressed})
	l.Reset()
	assert.Equal(t, Intent{}, l.Poll())
}

func TestLatchConcurrentPush(t *testing.T) {
	l := NewLatch()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				l.Push(Look(1, 0))
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 800.0, l.Poll().Look[0])
}
