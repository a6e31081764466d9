package notifier

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardActiveAndExpiry(t *testing.T) {
	board := NewBoard(WithTTL(50 * time.Millisecond))
	ctx := context.Background()

	board.Notify(ctx, Success, "Connected!")
	board.Notify(ctx, Error, "Request failed")

	active := board.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "Connected!", active[0].Text)
	assert.Equal(t, Error, active[1].Severity)

	assert.Eventually(t, func() bool {
		return len(board.Active()) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestBoardStripsMarkup(t *testing.T) {
	board := NewBoard()
	board.Notify(context.Background(), Error, "<b>Invalid</b> token<script>x()</script>")

	active := board.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "Invalid token", active[0].Text)

	board.Notify(context.Background(), Error, "can't reach tracker & co")
	active = board.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "can't reach tracker & co", active[1].Text)
}

func TestBoardDismissAndWriter(t *testing.T) {
	var buf bytes.Buffer
	board := NewBoard(WithWriter(&buf))

	board.Notify(context.Background(), Success, "Ban added")
	active := board.Active()
	require.Len(t, active, 1)

	board.Dismiss(active[0].ID)
	assert.Empty(t, board.Active())
	assert.Contains(t, buf.String(), "Ban added")
}

func TestRecorder(t *testing.T) {
	var rec Recorder
	_, ok := rec.Last()
	assert.False(t, ok)

	rec.Notify(context.Background(), Error, "Enter a user ID")
	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "Enter a user ID", last.Text)
	assert.Len(t, rec.Notices(), 1)

	rec.Reset()
	assert.Empty(t, rec.Notices())
}
