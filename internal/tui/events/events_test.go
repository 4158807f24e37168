package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueDrainsInOrderOnce(t *testing.T) {
	var q Queue
	assert.Nil(t, q.Drain())

	q.Push(ScreenToggled{From: "Home", To: "Editor"})
	q.Push(ContentLoaded{Path: "/tmp/a.txt", Text: "hello"})
	assert.Equal(t, 2, q.Len())

	drained := q.Drain()
	require.Len(t, drained, 2)
	assert.Equal(t, KindScreenToggled, drained[0].Kind())
	assert.Equal(t, KindContentLoaded, drained[1].Kind())

	loaded, ok := drained[1].(ContentLoaded)
	require.True(t, ok)
	assert.Equal(t, "hello", loaded.Text)

	assert.Zero(t, q.Len())
	assert.Nil(t, q.Drain())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "content_loaded", KindContentLoaded.String())
	assert.Equal(t, "screen_toggled", KindScreenToggled.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
