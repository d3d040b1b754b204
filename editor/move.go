package editor

import (
	"github.com/iw2rmb/tokenfield/buffer"
	"github.com/iw2rmb/tokenfield/internal/grapheme"
)

type MoveUnit int

const (
	MoveGrapheme MoveUnit = iota
	MoveWord
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
)

type Move struct {
	Unit   MoveUnit
	Dir    MoveDir
	Extend bool // if true, moves the active end of the selection
}

// Move moves the cursor. A token is always crossed in one step. In
// composition mode the result is clamped into the input window and never
// extends a selection.
func (c *Controller) Move(m Move) buffer.Span {
	c.enter()
	defer c.leave()

	active := c.sel.Location
	if !c.sel.IsEmpty() && c.selAnchor == c.sel.Location {
		active = c.sel.End()
	}
	next := c.moveFrom(active, m)

	if c.mode == ModeComposition || !m.Extend {
		c.setCursor(next)
		if c.mode == ModeComposition {
			c.clampToComposition()
		}
		return c.sel
	}

	anchor := active
	if !c.sel.IsEmpty() {
		anchor = c.selAnchor
	}
	start, end := min(anchor, next), max(anchor, next)
	c.sel = buffer.Span{Location: start, Length: end - start}
	c.selAnchor = anchor
	return c.sel
}

func (c *Controller) moveFrom(p int, m Move) int {
	switch m.Unit {
	case MoveGrapheme:
		return c.moveGrapheme(p, m.Dir)
	case MoveWord:
		return c.moveWord(p, m.Dir)
	case MoveDoc:
		if m.Dir == DirLeft {
			return 0
		}
		return c.buf.Len()
	default:
		return p
	}
}

func (c *Controller) moveGrapheme(p int, dir MoveDir) int {
	switch dir {
	case DirLeft:
		if p <= 0 {
			return 0
		}
		if t, ok := c.buf.TokenAt(p - 1); ok {
			return t.Range.Location
		}
		return p - 1
	case DirRight:
		if p >= c.buf.Len() {
			return c.buf.Len()
		}
		if t, ok := c.buf.TokenAt(p); ok {
			return t.Range.End()
		}
		return p + 1
	default:
		return p
	}
}

func (c *Controller) moveWord(p int, dir MoveDir) int {
	n := c.buf.Len()
	isSpace := func(i int) bool {
		if _, ok := c.buf.TokenAt(i); ok {
			return false
		}
		cl, _ := c.buf.ClusterAt(i)
		return grapheme.IsSpace(cl)
	}

	switch dir {
	case DirLeft:
		for p > 0 && isSpace(p-1) {
			p--
		}
		if p == 0 {
			return 0
		}
		if t, ok := c.buf.TokenAt(p - 1); ok {
			return t.Range.Location
		}
		for p > 0 && !isSpace(p-1) {
			if _, ok := c.buf.TokenAt(p - 1); ok {
				break
			}
			p--
		}
		return p
	case DirRight:
		for p < n && isSpace(p) {
			p++
		}
		if p == n {
			return n
		}
		if t, ok := c.buf.TokenAt(p); ok {
			return t.Range.End()
		}
		for p < n && !isSpace(p) {
			if _, ok := c.buf.TokenAt(p); ok {
				break
			}
			p++
		}
		return p
	default:
		return p
	}
}
