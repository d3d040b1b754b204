package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
	"go.uber.org/zap"

	"github.com/iw2rmb/tokenfield/buffer"
	"github.com/iw2rmb/tokenfield/editor"
	"github.com/iw2rmb/tokenfield/internal/config"
	"github.com/iw2rmb/tokenfield/internal/grapheme"
)

const (
	prompt   = "> "
	fieldRow = 0
)

type model struct {
	ctl  *editor.Controller
	host *demoHost
	cfg  config.Config
	keys keyMap
	help help.Model
	r    *lipgloss.Renderer
	log  *zap.Logger
}

func newModel(cfg config.Config, r *lipgloss.Renderer, log *zap.Logger, cb editor.Clipboard) model {
	h := &demoHost{cfg: cfg}
	ec := cfg.EditorConfig()
	ec.Host = h
	ec.Logger = log
	ec.Clipboard = cb
	ctl := editor.New(ec)
	ctl.SetFocused(true)

	hm := help.New()
	hm.Styles.ShortKey = r.NewStyle().Bold(true)
	hm.Styles.ShortDesc = r.NewStyle().Faint(true)

	return model{
		ctl:  ctl,
		host: h,
		cfg:  cfg,
		keys: defaultKeyMap(),
		help: hm,
		r:    r,
		log:  log,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.Y == fieldRow {
			if err := m.ctl.ReportTap(m.indexAtX(msg.X - runewidth.StringWidth(prompt))); err != nil {
				m.log.Debug("tap ignored", zap.Error(err))
			}
		}
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		m.handleKey(msg)
	}

	if m.host.confirm {
		m.host.confirm = false
		if _, err := m.ctl.ConfirmComposition(); err != nil {
			m.host.setStatus("nothing to confirm")
		}
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) {
	c := m.ctl
	sel := c.Selection()

	switch {
	case key.Matches(msg, m.keys.Enter):
		if c.Mode() == editor.ModeComposition {
			_, _ = c.ProposeEdit(buffer.Span{Location: sel.End()}, "\n")
			return
		}
		c.TokenizeAllEditableText()
	case key.Matches(msg, m.keys.Tokenize):
		c.TokenizeAllEditableText()
	case key.Matches(msg, m.keys.Escape):
		_ = c.CancelComposition(editor.CancelOther)
	case key.Matches(msg, m.keys.Backspace):
		switch {
		case !sel.IsEmpty():
			_, _ = c.ProposeEdit(sel, "")
		case sel.Location > 0:
			_, _ = c.ProposeEdit(buffer.Span{Location: sel.Location - 1, Length: 1}, "")
		}
	case key.Matches(msg, m.keys.Delete):
		if sel.Location < c.Len() {
			_, _ = c.ProposeEdit(buffer.Span{Location: sel.Location, Length: 1}, "")
		}
	case key.Matches(msg, m.keys.Left):
		c.Move(editor.Move{Unit: editor.MoveGrapheme, Dir: editor.DirLeft})
	case key.Matches(msg, m.keys.Right):
		c.Move(editor.Move{Unit: editor.MoveGrapheme, Dir: editor.DirRight})
	case key.Matches(msg, m.keys.ShiftLeft):
		c.Move(editor.Move{Unit: editor.MoveGrapheme, Dir: editor.DirLeft, Extend: true})
	case key.Matches(msg, m.keys.ShiftRight):
		c.Move(editor.Move{Unit: editor.MoveGrapheme, Dir: editor.DirRight, Extend: true})
	case key.Matches(msg, m.keys.WordLeft):
		c.Move(editor.Move{Unit: editor.MoveWord, Dir: editor.DirLeft})
	case key.Matches(msg, m.keys.WordRight):
		c.Move(editor.Move{Unit: editor.MoveWord, Dir: editor.DirRight})
	case key.Matches(msg, m.keys.Home):
		c.Move(editor.Move{Unit: editor.MoveDoc, Dir: editor.DirLeft})
	case key.Matches(msg, m.keys.End):
		c.Move(editor.Move{Unit: editor.MoveDoc, Dir: editor.DirRight})
	case key.Matches(msg, m.keys.Undo):
		c.Undo()
	case key.Matches(msg, m.keys.Redo):
		c.Redo()
	case key.Matches(msg, m.keys.Copy):
		c.Copy()
	case key.Matches(msg, m.keys.Cut):
		c.Cut()
	case key.Matches(msg, m.keys.Paste):
		c.PasteFromClipboard()
	case msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace:
		m.insert(string(msg.Runes), msg.Paste)
	}
}

func (m model) insert(text string, paste bool) {
	c := m.ctl
	if paste {
		c.Paste(text, nil)
		return
	}
	if c.Mode() == editor.ModeNormal && text == m.cfg.Composition.Anchor {
		sel := c.Selection()
		if !sel.IsEmpty() {
			_, _ = c.ProposeEdit(sel, "")
		}
		if err := c.EnterComposition(c.Selection().Location, text, 0); err != nil {
			m.log.Debug("enter composition failed", zap.Error(err))
		}
		return
	}
	_, _ = c.ProposeEdit(c.Selection(), text)
}

// indexAtX maps a cell column inside the field to a grapheme index.
func (m model) indexAtX(x int) int {
	if x < 0 {
		return 0
	}
	col := 0
	for i, cl := range grapheme.Split(m.ctl.Text()) {
		w := cellWidth(displayCluster(cl))
		if x < col+w {
			return i
		}
		col += w
	}
	return m.ctl.Len()
}

func cellWidth(text string) int {
	w := runewidth.StringWidth(text)
	if w <= 0 {
		w = max(uniseg.StringWidth(text), 0)
	}
	return w
}

func displayCluster(cl string) string {
	switch cl {
	case "\n", "\r\n", "\r", "\u2028", "\u2029":
		return "↵"
	}
	return cl
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(prompt)
	b.WriteString(m.renderField())
	b.WriteString("\n\n")

	mode := m.ctl.Mode().String()
	status := m.host.status
	if status == "" {
		status = "ready"
	}
	b.WriteString(m.r.NewStyle().Faint(true).Render("[" + mode + "] " + status))
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.help()))
	return b.String()
}

// renderField styles every cluster from the controller's formatting runs and
// marks the selection, or the cursor cell, in reverse video.
func (m model) renderField() string {
	clusters := grapheme.Split(m.ctl.Text())
	pres := make([]buffer.Presentation, len(clusters))
	for _, run := range m.ctl.Formatting() {
		for i := run.Range.Location; i < run.Range.End() && i < len(pres); i++ {
			pres[i] = run.Presentation
		}
	}

	sel := m.ctl.Selection()
	var b strings.Builder
	for i, cl := range clusters {
		selected := sel.Contains(i) || (sel.IsEmpty() && sel.Location == i && m.ctl.Focused())
		b.WriteString(m.styleFor(pres[i], selected).Render(displayCluster(cl)))
	}
	if sel.IsEmpty() && sel.Location == len(clusters) && m.ctl.Focused() {
		b.WriteString(m.r.NewStyle().Reverse(true).Render(" "))
	}
	return b.String()
}

func (m model) styleFor(p buffer.Presentation, selected bool) lipgloss.Style {
	st := m.r.NewStyle()
	if p.Foreground != "" {
		st = st.Foreground(p.Foreground)
	}
	if p.Background != "" {
		st = st.Background(p.Background)
	}
	if p.Bold {
		st = st.Bold(true)
	}
	if p.Underline {
		st = st.Underline(true)
	}
	if selected {
		st = st.Reverse(true)
	}
	return st
}
