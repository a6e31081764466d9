package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/creamcroissant/trackerctl/internal/connection"
	"github.com/creamcroissant/trackerctl/internal/model"
)

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		// 仅重绘，过期通知由 Board 自行淘汰
		return m, tickCmd()

	case doneMsg:
		m.clampCursor(msg.section)
		return m, nil

	case openFormMsg:
		m.form = msg.form
		return m, textinput.Blink

	case confirmMsg:
		// 排队，前一个确认框必须先得到回答
		m.confirms = append(m.confirms[:len(m.confirms):len(m.confirms)], msg)
		return m, nil
	}

	if m.form != nil {
		return m, m.form.update(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirming() != nil {
		return m.handleConfirmKey(msg)
	}
	if m.form != nil {
		return m.handleFormKey(msg)
	}

	section := m.state.Section()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		return m.switchSection(1)

	case key.Matches(msg, m.keys.Prev):
		return m.switchSection(-1)

	case key.Matches(msg, m.keys.Up):
		if m.selected[section] > 0 {
			m.selected[section]--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selected[section] < m.rows(section)-1 {
			m.selected[section]++
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.load(section)

	case key.Matches(msg, m.keys.Connect):
		if m.state.Demo() {
			return m, m.run(section, func(ctx context.Context) bool {
				return m.connector.Connect(ctx, m.profile)
			})
		}
		return m, m.connectForm()
	}

	for _, a := range actionsFor(section) {
		if key.Matches(msg, a.binding) {
			return m, a.run(m)
		}
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		m.answer(true)
	case key.Matches(msg, m.keys.No):
		m.answer(false)
	case msg.Type == tea.KeyCtrlC:
		for len(m.confirms) > 0 {
			m.answer(false)
		}
		return m, tea.Quit
	}
	return m, nil
}

// answer replies to the oldest pending confirmation and drops it.
func (m *Model) answer(ok bool) {
	m.confirms[0].reply <- ok
	m.confirms = m.confirms[1:]
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	switch msg.String() {
	case "enter":
		m.form = nil
		return m, m.run(f.section, f.action(f.values()))
	case "esc":
		if f.cancel != nil {
			f.cancel()
		}
		m.form = nil
		return m, nil
	case "tab", "down":
		f.move(1)
		return m, nil
	case "shift+tab", "up":
		f.move(-1)
		return m, nil
	}
	return m, f.update(msg)
}

func (m Model) switchSection(delta int) (tea.Model, tea.Cmd) {
	current := m.state.Section()
	idx := 0
	for i, s := range connection.Sections {
		if s == current {
			idx = i
			break
		}
	}
	n := len(connection.Sections)
	next := connection.Sections[(idx+delta+n)%n]
	m.state.Show(next)
	if !m.state.Connected() {
		return m, nil
	}
	return m, m.load(next)
}

// rows 返回分区表格的行数。
func (m Model) rows(section connection.Section) int {
	switch section {
	case connection.SectionUsers:
		return len(m.set.Users.Items())
	case connection.SectionTorrents:
		return len(m.set.Torrents.Items())
	case connection.SectionWhitelist:
		return len(m.set.Whitelist.Items())
	case connection.SectionBans:
		return len(m.set.Bans.Items())
	case connection.SectionSnatches:
		return len(m.set.Snatches.Items())
	case connection.SectionHnR:
		return len(m.set.HnR.Items())
	case connection.SectionSwarms:
		return len(m.set.Swarms.Items())
	default:
		return 0
	}
}

// clampCursor 在集合缩短后把选中行拉回范围内。
func (m Model) clampCursor(section connection.Section) {
	n := m.rows(section)
	if m.selected[section] >= n {
		m.selected[section] = n - 1
	}
	if m.selected[section] < 0 {
		m.selected[section] = 0
	}
}

// cursor 返回 section 中有效的选中下标，集合为空时返回 -1。
func (m Model) cursor(section connection.Section, n int) int {
	if n == 0 {
		return -1
	}
	i := m.selected[section]
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func (m Model) selectedUser() (model.User, bool) {
	items := m.set.Users.Items()
	i := m.cursor(connection.SectionUsers, len(items))
	if i < 0 {
		return model.User{}, false
	}
	return items[i], true
}

func (m Model) selectedTorrent() (model.Torrent, bool) {
	items := m.set.Torrents.Items()
	i := m.cursor(connection.SectionTorrents, len(items))
	if i < 0 {
		return model.Torrent{}, false
	}
	return items[i], true
}
