package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/tokenfield/buffer"
)

func TestUndoRedo_Text(t *testing.T) {
	c, h := newTestController("")
	assert.False(t, c.CanUndo())

	c.SetText("hello")
	require.True(t, c.CanUndo())
	h.reset()

	require.True(t, c.Undo())
	assert.Equal(t, "", c.Text())
	assert.Equal(t, buffer.Span{}, c.Selection())
	assert.Equal(t, []string{"text", "selection:0+0"}, h.events)

	require.True(t, c.CanRedo())
	require.True(t, c.Redo())
	assert.Equal(t, "hello", c.Text())
	assert.False(t, c.Redo())
}

func TestUndoRedo_Tokens(t *testing.T) {
	c, h := newMentionController(t)

	require.True(t, c.Undo())
	assert.Equal(t, "I talk to, hello", c.Text())
	assert.Equal(t, []string{"token-deleted:t1"}, h.filter("token-"))

	h.reset()
	require.True(t, c.Redo())
	assert.Equal(t, []string{"token-added:t1"}, h.filter("token-"))
	tok, ok := c.TokenAt(9)
	require.True(t, ok)
	assert.Equal(t, " davidby ", tok.Text)
}

func TestUndo_ClampsSelectionOutOfToken(t *testing.T) {
	c, _ := newMentionController(t)
	c.AppendText("!")
	require.NoError(t, c.SetSelection(buffer.Span{Location: 26}))

	require.True(t, c.Undo())
	assert.Equal(t, buffer.Span{Location: 25}, c.Selection())

	require.True(t, c.Undo())
	assert.Equal(t, buffer.Span{Location: 16}, c.Selection())
	assert.Empty(t, c.Tokens())
}
