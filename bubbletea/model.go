package bubbletea

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	jjview "github.com/brychanrobot/jjview"
	"github.com/brychanrobot/jjview/reconstruct"
)

// rowKind mirrors diff line types at the display level.
type rowKind int

const (
	rowContext rowKind = iota
	rowAdded
	rowDeleted
)

// row is one display line of the selection view. Target is the line's index
// in target-content coordinates, or -1 for deleted rows, which exist only in
// the base. Block groups the rows of one replacement block; rows in the same
// block toggle together. Individually toggleable rows carry a unique block.
type row struct {
	kind     rowKind
	text     string
	target   int
	block    int
	toggleab bool
	selected bool
}

// Model is the line-selection TUI. It renders the diff between base and
// target content and lets the user pick the change lines to move.
type Model struct {
	path     string
	rows     []row
	cursor   int
	viewport viewport.Model
	ready    bool

	confirmed bool
	cancelled bool
	status    string

	preview    func(selections []jjview.LineRange) string
	tokenizer  jjview.Tokenizer
	language   string
	lineTokens [][]jjview.Token // target content tokens, indexed by target line

	renderer *lipgloss.Renderer
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithRenderer sets the lipgloss renderer, mainly to pin a color profile in
// tests. Defaults to the global renderer.
func WithRenderer(r *lipgloss.Renderer) ModelOption {
	return func(m *Model) { m.renderer = r }
}

// WithPreview supplies a function that renders the pending partition as diff
// text; the user can copy it to the clipboard while selecting.
func WithPreview(fn func(selections []jjview.LineRange) string) ModelOption {
	return func(m *Model) { m.preview = fn }
}

// WithTokenizer enables syntax highlighting of row content for the given
// language.
func WithTokenizer(tok jjview.Tokenizer, language string) ModelOption {
	return func(m *Model) {
		m.tokenizer = tok
		m.language = language
	}
}

// NewModel builds the selection view for a request.
func NewModel(req jjview.SelectionRequest, opts ...ModelOption) Model {
	m := Model{
		path:     req.Path,
		rows:     buildRows(req),
		renderer: lipgloss.DefaultRenderer(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.tokenizer != nil {
		// Tokenizing the whole target content at once keeps multi-line
		// constructs (block comments, raw strings) styled on every row;
		// row target indices address straight into the result.
		m.lineTokens = m.tokenizer.TokenizeLines(m.language, reconstruct.Apply(req.Base, req.Hunks))
	}
	return m
}

// buildRows walks base lines and hunks in the same order reconstruction
// does, so the displayed target indices match the coordinates the engine
// expects selections in.
func buildRows(req jjview.SelectionRequest) []row {
	base := splitBase(req.Base)
	var rows []row

	cursor := 0
	block := 0
	for _, h := range req.Hunks {
		hunkStart := h.OldStart - 1
		for cursor < hunkStart && cursor < len(base) {
			cursor++ // unchanged lines outside hunks are not shown
		}

		target := h.NewStart - 1
		lines := h.Lines
		for i := 0; i < len(lines); {
			if lines[i].Type == jjview.LineContext {
				rows = append(rows, row{kind: rowContext, text: lines[i].Content, target: target, block: -1})
				if cursor < len(base) {
					cursor++
				}
				target++
				i++
				continue
			}

			j := i
			deletions := 0
			for j < len(lines) && lines[j].Type != jjview.LineContext {
				if lines[j].Type == jjview.LineDeleted {
					deletions++
				}
				j++
			}

			atomic := deletions > 0
			for k := i; k < j; k++ {
				r := row{text: lines[k].Content, toggleab: true}
				if atomic {
					r.block = block
				} else {
					// Pure insertions toggle line by line.
					r.block = block
					block++
				}
				if lines[k].Type == jjview.LineDeleted {
					r.kind = rowDeleted
					// A pure deletion is addressed by the target index it
					// occupies; a replacement by its additions' span.
					r.target = target
					if cursor < len(base) {
						cursor++
					}
				} else {
					r.kind = rowAdded
					r.target = target
					target++
				}
				rows = append(rows, r)
			}
			if atomic {
				block++
			}
			i = j
		}
	}
	return rows
}

func splitBase(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

// Ranges returns the selected target lines as normalized ranges.
func (m Model) Ranges() []jjview.LineRange {
	var ranges []jjview.LineRange
	for _, r := range m.rows {
		if r.selected && r.kind != rowContext {
			ranges = append(ranges, jjview.LineRange{Start: r.target, End: r.target})
		}
	}
	return jjview.NormalizeRanges(ranges)
}

// Confirmed reports whether the user accepted the selection.
func (m Model) Confirmed() bool { return m.confirmed }

// Cancelled reports whether the user backed out.
func (m Model) Cancelled() bool { return m.cancelled }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 2
		footerHeight := 2
		m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
		m.ready = true
		m.viewport.SetContent(m.renderRows(msg.Width))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			m.confirmed = true
			return m, tea.Quit
		case "up", "k":
			m.moveCursor(-1)
		case "down", "j":
			m.moveCursor(1)
		case " ":
			m.toggleAtCursor()
		case "a":
			m.setAll(true)
		case "n":
			m.setAll(false)
		case "y":
			m.copyPreview()
		}
		if m.ready {
			m.viewport.SetContent(m.renderRows(m.viewport.Width))
			m.scrollToCursor()
		}
		return m, nil
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	next := m.cursor + delta
	if next >= 0 && next < len(m.rows) {
		m.cursor = next
	}
}

func (m *Model) toggleAtCursor() {
	if m.cursor >= len(m.rows) {
		return
	}
	cur := m.rows[m.cursor]
	if !cur.toggleab {
		return
	}
	want := !cur.selected
	for i := range m.rows {
		if m.rows[i].toggleab && m.rows[i].block == cur.block {
			m.rows[i].selected = want
		}
	}
}

func (m *Model) setAll(selected bool) {
	for i := range m.rows {
		if m.rows[i].toggleab {
			m.rows[i].selected = selected
		}
	}
}

func (m *Model) copyPreview() {
	if m.preview == nil {
		return
	}
	if err := clipboard.WriteAll(m.preview(m.Ranges())); err != nil {
		m.status = "clipboard unavailable"
		return
	}
	m.status = "preview copied"
}

func (m *Model) scrollToCursor() {
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	title := m.renderer.NewStyle().Bold(true).Render("select lines to move: " + m.path)
	help := "space toggle · a all · n none · y copy · enter confirm · q cancel"
	if m.status != "" {
		help = m.status + " · " + help
	}
	footer := m.renderer.NewStyle().Faint(true).Render(help)
	return title + "\n\n" + m.viewport.View() + "\n" + footer
}

func (m Model) renderRows(width int) string {
	added := m.renderer.NewStyle().Foreground(lipgloss.Color("2"))
	deleted := m.renderer.NewStyle().Foreground(lipgloss.Color("1"))
	dim := m.renderer.NewStyle().Faint(true)
	marked := m.renderer.NewStyle().Bold(true)

	var b strings.Builder
	for i, r := range m.rows {
		prefix := " "
		style := dim
		switch r.kind {
		case rowAdded:
			prefix = "+"
			style = added
		case rowDeleted:
			prefix = "-"
			style = deleted
		}

		check := "   "
		if r.toggleab {
			if r.selected {
				check = "[x]"
			} else {
				check = "[ ]"
			}
		}
		cursor := " "
		if i == m.cursor {
			cursor = ">"
			style = marked
		}

		text := r.text
		gutter := fmt.Sprintf("%s %s %s ", cursor, check, prefix)
		if DisplayWidth(gutter+text) > width && width > 0 {
			full := truncateToWidth(gutter+text, width)
			if len(full) > len(gutter) {
				text = full[len(gutter):]
			} else {
				text = ""
			}
		}
		// Deleted rows show base content, which the target tokens do not
		// cover; they render in the plain deletion style.
		if i == m.cursor || r.kind == rowDeleted || r.target < 0 || r.target >= len(m.lineTokens) {
			b.WriteString(style.Render(gutter + text))
		} else {
			b.WriteString(style.Render(gutter) + m.renderTokens(m.lineTokens[r.target], text))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderTokens styles a line's content per syntax token. Unstyled tokens
// pass through unchanged. The tokens describe the full line; text may be a
// truncated prefix of it, and output stops where text does.
func (m Model) renderTokens(tokens []jjview.Token, text string) string {
	if len(tokens) == 0 {
		return text
	}
	budget := len(text)
	var b strings.Builder
	for _, tok := range tokens {
		if budget <= 0 {
			break
		}
		chunk := tok.Text
		if len(chunk) > budget {
			chunk = chunk[:budget]
		}
		budget -= len(chunk)
		if tok.Style.Foreground == "" && !tok.Style.Bold {
			b.WriteString(chunk)
			continue
		}
		st := m.renderer.NewStyle()
		if tok.Style.Foreground != "" {
			st = st.Foreground(lipgloss.Color(tok.Style.Foreground))
		}
		if tok.Style.Bold {
			st = st.Bold(true)
		}
		b.WriteString(st.Render(chunk))
	}
	return b.String()
}

// truncateToWidth cuts a line to fit the terminal, accounting for tab
// expansion.
func truncateToWidth(s string, width int) string {
	var b strings.Builder
	col := 0
	for _, r := range s {
		next := advanceColumn(col, r)
		if next > width {
			break
		}
		b.WriteRune(r)
		col = next
	}
	return b.String()
}
