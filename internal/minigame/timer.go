package minigame

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

const (
	Instructions = "HOW IT WORKS: at any moment a message will appear on the screen. " +
		"As soon as it does, press Enter immediately.\nPress Enter when you are ready."
	StartSignal = "NOW!"
)

// Timer performs one reaction-time measurement.
type Timer interface {
	Measure(ctx context.Context) (time.Duration, error)
}

// Prompter is the console surface the timer needs.
type Prompter interface {
	ReadLine(prompt string) (string, error)
}

// Clock provides time operations that can be mocked for testing.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// ReactionTimer shows the instructions, waits a random delay and measures
// how long the user takes to press Enter after the start signal.
type ReactionTimer struct {
	console  Prompter
	maxDelay time.Duration

	clock Clock
	intn  func(n int) int
	sleep func(ctx context.Context, d time.Duration) error
}

// NewReactionTimer builds a timer using the system clock and a random start
// delay in [0, maxDelay].
func NewReactionTimer(console Prompter, maxDelay time.Duration) *ReactionTimer {
	return &ReactionTimer{
		console:  console,
		maxDelay: maxDelay,
		clock:    realClock{},
		intn:     rand.IntN,
		sleep:    sleepContext,
	}
}

// Measure blocks until the user reacts to the start signal and returns the
// elapsed time.
func (t *ReactionTimer) Measure(ctx context.Context) (time.Duration, error) {
	if _, err := t.console.ReadLine(Instructions); err != nil {
		return 0, err
	}

	if err := t.sleep(ctx, t.startDelay()); err != nil {
		return 0, err
	}

	start := t.clock.Now()
	if _, err := t.console.ReadLine(StartSignal); err != nil {
		return 0, err
	}
	elapsed := t.clock.Now().Sub(start)
	if elapsed < 0 {
		return 0, fmt.Errorf("clock went backwards by %s", -elapsed)
	}
	return elapsed, nil
}

func (t *ReactionTimer) startDelay() time.Duration {
	if t.maxDelay <= 0 {
		return 0
	}
	ms := int(t.maxDelay / time.Millisecond)
	return time.Duration(t.intn(ms+1)) * time.Millisecond
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
