package main

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/exp/charmtone"

	"github.com/charmbracelet/vlist/list"
	"github.com/charmbracelet/vlist/scroll"
	"github.com/charmbracelet/vlist/tree"
)

type pane int

const (
	paneList pane = iota
	paneTree
	paneLog
	paneCount
)

type logTickMsg time.Time

type model struct {
	width, height int

	focus     pane
	filtering bool

	list *list.List
	tree *tree.Tree
	logs *list.List

	logSeq int

	keyTab    key.Binding
	keyFilter key.Binding
	keyQuit   key.Binding
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(charmtone.Charple)
	focusedTitleStyle = titleStyle.Foreground(charmtone.Zest)
	statusStyle       = lipgloss.NewStyle().
				Foreground(charmtone.Squid)
	itemFocusStyle = lipgloss.NewStyle().
			Foreground(charmtone.Dolly)
	treeHighlightStyle = lipgloss.NewStyle().
				Foreground(charmtone.Pepper).
				Background(charmtone.Zest)
)

func newModel(itemCount int, wrap bool) *model {
	m := &model{
		keyTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		keyFilter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		keyQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
	}

	items := make([]list.Item, 0, itemCount)
	for i := range itemCount {
		content := fmt.Sprintf("Item %03d", i)
		if wrap && i%7 == 0 {
			content += " " + strings.Repeat("with a rather long tail that wraps ", 3)
		}
		item := list.NewStringItem(fmt.Sprintf("item-%d", i), content)
		if wrap {
			item = list.NewWrappingStringItem(fmt.Sprintf("item-%d", i), content)
		}
		item.WithFocusStyles(&itemFocusStyle, nil)
		items = append(items, item)
	}
	m.list = list.New(items...)
	m.list.SetScrollbarPolicy(scroll.BarAsNeeded)
	if err := m.list.SetScrollPolicy(scroll.PolicyAutoScroll); err != nil {
		panic(err)
	}
	m.list.Focus()

	m.tree = tree.New(demoRoots()...)
	m.tree.SetScrollbarPolicy(scroll.BarAsNeeded)
	m.tree.SetHighlightStyle(&treeHighlightStyle)
	m.tree.SetWrap(wrap)

	m.logs = list.New()
	m.logs.SetScrollbarPolicy(scroll.BarAlways)
	if err := m.logs.SetScrollPolicy(scroll.PolicySticky); err != nil {
		panic(err)
	}

	return m
}

func demoRoots() []*tree.Node {
	pkg := func(name string, files ...string) *tree.Node {
		children := make([]*tree.Node, 0, len(files))
		for _, f := range files {
			children = append(children, tree.NewLeaf(f, f))
		}
		n := tree.NewNode(name, name, children...)
		n.Expanded = true
		return n
	}
	internal := tree.NewNode("internal", "internal",
		pkg("config", "config.go", "load.go"),
		pkg("event", "broker.go"),
	)
	return []*tree.Node{
		pkg("cmd", "main.go", "model.go"),
		internal,
		pkg("scroll", "state.go", "policy.go", "viewport.go", "scrollbar.go"),
		tree.NewLeaf("go.mod", "go.mod"),
	}
}

func (m *model) Init() tea.Cmd {
	return logTick()
}

func logTick() tea.Cmd {
	return tea.Tick(700*time.Millisecond, func(t time.Time) tea.Msg {
		return logTickMsg(t)
	})
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()

	case logTickMsg:
		m.logSeq++
		line := fmt.Sprintf("%s event %d", time.Time(msg).Format("15:04:05"), m.logSeq)
		m.logs.AppendItems(list.NewStringItem(fmt.Sprintf("log-%d", m.logSeq), line))
		return m, logTick()

	case tea.MouseWheelMsg:
		target := m.paneAt(msg.X, msg.Y)
		delta := 3
		if msg.Button == tea.MouseWheelUp {
			delta = -3
		}
		switch target {
		case paneList:
			m.list.HandleWheel(delta)
		case paneTree:
			m.tree.HandleWheel(delta)
		case paneLog:
			m.logs.HandleWheel(delta)
		}

	case tea.MouseClickMsg:
		target := m.paneAt(msg.X, msg.Y)
		m.setFocus(target)
		area := m.paneArea(target)
		x, y := msg.X-area.Min.X, msg.Y-area.Min.Y-1 // skip title row
		switch target {
		case paneList:
			m.list.HandleMouseDown(x, y)
		case paneTree:
			m.tree.HandleMouseDown(x, y)
		case paneLog:
			m.logs.HandleMouseDown(x, y)
		}

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if m.filtering {
		switch msg.String() {
		case "esc":
			m.filtering = false
			m.list.SetFilter("")
		case "enter":
			m.filtering = false
		case "backspace":
			q := m.list.Filter()
			if q != "" {
				m.list.SetFilter(q[:len(q)-1])
			}
		default:
			if msg.Text != "" {
				m.list.SetFilter(m.list.Filter() + msg.Text)
			}
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keyQuit):
		return tea.Quit
	case key.Matches(msg, m.keyTab):
		m.setFocus((m.focus + 1) % paneCount)
	case key.Matches(msg, m.keyFilter):
		if m.focus == paneList {
			m.filtering = true
		}
	default:
		switch m.focus {
		case paneList:
			m.list.HandleKey(msg)
		case paneTree:
			m.tree.HandleKey(msg)
		case paneLog:
			m.logs.HandleKey(msg)
		}
	}
	return nil
}

func (m *model) setFocus(p pane) {
	m.focus = p
	m.list.Blur()
	m.tree.Blur()
	m.logs.Blur()
	switch p {
	case paneList:
		m.list.Focus()
	case paneTree:
		m.tree.Focus()
	case paneLog:
		m.logs.Focus()
	}
}

// layout splits the window: list and tree side by side on top, logs in a
// fixed-height strip below, one status line at the bottom.
func (m *model) layout() {
	listArea := m.paneArea(paneList)
	treeArea := m.paneArea(paneTree)
	logArea := m.paneArea(paneLog)
	m.list.SetSize(listArea.Dx(), listArea.Dy()-1)
	m.tree.SetSize(treeArea.Dx(), treeArea.Dy()-1)
	m.logs.SetSize(logArea.Dx(), logArea.Dy()-1)
}

func (m *model) logHeight() int {
	return max(3, m.height/4)
}

func (m *model) paneArea(p pane) uv.Rectangle {
	topHeight := m.height - m.logHeight() - 1
	half := m.width / 2
	switch p {
	case paneList:
		return uv.Rect(0, 0, half, topHeight)
	case paneTree:
		return uv.Rect(half, 0, m.width-half, topHeight)
	default:
		return uv.Rect(0, topHeight, m.width, m.logHeight())
	}
}

func (m *model) paneAt(x, y int) pane {
	for _, p := range []pane{paneList, paneTree, paneLog} {
		if a := m.paneArea(p); x >= a.Min.X && x < a.Max.X &&
			y >= a.Min.Y && y < a.Max.Y {
			return p
		}
	}
	return m.focus
}

func (m *model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion

	if m.width <= 0 || m.height <= 0 {
		return v
	}

	canvas := uv.NewScreenBuffer(m.width, m.height)

	m.drawPane(&canvas, paneList, "Items", m.list.Draw)
	m.drawPane(&canvas, paneTree, "Files", m.tree.Draw)
	m.drawPane(&canvas, paneLog, "Log", m.logs.Draw)

	status := fmt.Sprintf(" tab: switch · /: filter · q: quit · filter=%q", m.list.Filter())
	if m.logs.ScrolledAway() {
		status += " · log paused (end to resume)"
	}
	statusArea := uv.Rect(0, m.height-1, m.width, 1)
	uv.NewStyledString(statusStyle.Render(status)).Draw(&canvas, statusArea)

	content := strings.ReplaceAll(canvas.Render(), "\r\n", "\n")
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	v.Content = strings.Join(lines, "\n")
	return v
}

func (m *model) drawPane(canvas uv.Screen, p pane, title string, draw func(uv.Screen, uv.Rectangle)) {
	area := m.paneArea(p)
	style := titleStyle
	if m.focus == p {
		style = focusedTitleStyle
	}
	uv.NewStyledString(style.Render(title)).
		Draw(canvas, uv.Rect(area.Min.X, area.Min.Y, area.Dx(), 1))
	draw(canvas, uv.Rect(area.Min.X, area.Min.Y+1, area.Dx(), area.Dy()-1))
}
