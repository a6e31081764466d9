package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creamcroissant/trackerctl/internal/connection"
	"github.com/creamcroissant/trackerctl/internal/controller"
	"github.com/creamcroissant/trackerctl/internal/gateway"
	"github.com/creamcroissant/trackerctl/internal/notifier"
	"github.com/creamcroissant/trackerctl/internal/source"
)

func newDemoModel(t *testing.T) Model {
	t.Helper()
	board := notifier.NewBoard()
	gw := gateway.New("http://127.0.0.1:1", "", board)
	deps := controller.Deps{Source: source.Select(true, gw, board), Notify: board}
	state := connection.NewState(connection.Demo)
	m := NewModel(Options{
		Set:       controller.NewSet(deps),
		State:     state,
		Connector: controller.NewConnector(state, nil, gw, deps),
		Board:     board,
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	return next.(Model)
}

func press(t *testing.T, m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(k)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSwitchSectionLoads(t *testing.T) {
	m := newDemoModel(t)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.NotNil(t, cmd)
	assert.Equal(t, connection.SectionUsers, m.state.Section())

	msg := cmd()
	done, ok := msg.(doneMsg)
	require.True(t, ok)
	assert.True(t, done.ok)
	assert.Len(t, m.set.Users.Items(), 5)

	next, _ := m.Update(done)
	assert.Contains(t, next.(Model).View(), m.set.Users.Items()[0].Passkey)
}

func TestCursorStaysInRange(t *testing.T) {
	m := newDemoModel(t)
	assert.Equal(t, -1, m.cursor(connection.SectionUsers, 0))

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	cmd()
	for i := 0; i < 10; i++ {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 4, m.cursor(connection.SectionUsers, 5))

	u, ok := m.selectedUser()
	require.True(t, ok)
	assert.Equal(t, m.set.Users.Items()[4].ID, u.ID)

	// 集合缩短后选中行回到末尾
	assert.Equal(t, 1, m.cursor(connection.SectionUsers, 2))
}

func TestEditFormCancelClearsSlot(t *testing.T) {
	m := newDemoModel(t)
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	cmd()

	m, cmd = press(t, m, runes("e"))
	require.NotNil(t, cmd)
	opened, ok := cmd().(openFormMsg)
	require.True(t, ok)
	_, editing := m.set.Users.Editing.Get()
	assert.True(t, editing)

	next, _ := m.Update(opened)
	m = next.(Model)
	require.NotNil(t, m.form)
	assert.Contains(t, m.View(), "Edit user")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.form)
	_, editing = m.set.Users.Editing.Get()
	assert.False(t, editing)
}

func TestFormSubmitRunsAction(t *testing.T) {
	m := newDemoModel(t)
	m.state.Show(connection.SectionWhitelist)

	m, cmd := press(t, m, runes("n"))
	next, _ := m.Update(cmd())
	m = next.(Model)
	require.NotNil(t, m.form)

	for _, r := range "-XX1234-" {
		m, _ = press(t, m, runes(string(r)))
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	for _, r := range "Example" {
		m, _ = press(t, m, runes(string(r)))
	}
	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, m.form)
	require.NotNil(t, cmd)

	done := cmd().(doneMsg)
	assert.True(t, done.ok)
	assert.Equal(t, connection.SectionWhitelist, done.section)
	_, drafted := m.set.Whitelist.Draft.Get()
	assert.False(t, drafted)
}

func TestBridgeConfirm(t *testing.T) {
	b := NewBridge()
	assert.False(t, b.Confirm(context.Background(), "Delete?"))

	var got confirmMsg
	b.send = func(msg tea.Msg) {
		got = msg.(confirmMsg)
		got.reply <- true
	}
	assert.True(t, b.Confirm(context.Background(), "Delete user 1?"))
	assert.Equal(t, "Delete user 1?", got.prompt)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b.send = func(tea.Msg) {}
	assert.False(t, b.Confirm(ctx, "Delete?"))
}

func TestConfirmKeysReply(t *testing.T) {
	m := newDemoModel(t)
	reply := make(chan bool, 1)
	next, _ := m.Update(confirmMsg{prompt: "Unban 1.2.3.4?", reply: reply})
	m = next.(Model)
	assert.Contains(t, m.View(), "Unban 1.2.3.4?")

	m, _ = press(t, m, runes("n"))
	assert.Nil(t, m.confirming())
	assert.False(t, <-reply)
}

func TestConfirmsAreQueued(t *testing.T) {
	m := newDemoModel(t)
	first := make(chan bool, 1)
	second := make(chan bool, 1)

	next, _ := m.Update(confirmMsg{prompt: "Delete user 1?", reply: first})
	next, _ = next.Update(confirmMsg{prompt: "Delete user 2?", reply: second})
	m = next.(Model)
	assert.Contains(t, m.View(), "Delete user 1?")

	// 表单打开不会丢弃排队中的确认
	next, _ = m.Update(openFormMsg{form: newForm("Ban IP", []field{{label: "IP"}}, nil)})
	m = next.(Model)
	require.NotNil(t, m.confirming())

	m, _ = press(t, m, runes("y"))
	assert.True(t, <-first)
	assert.Contains(t, m.View(), "Delete user 2?")

	m, _ = press(t, m, runes("n"))
	assert.False(t, <-second)
	assert.Nil(t, m.confirming())
	assert.NotNil(t, m.form)
}

func TestQuitDeclinesPendingConfirms(t *testing.T) {
	m := newDemoModel(t)
	first := make(chan bool, 1)
	second := make(chan bool, 1)
	next, _ := m.Update(confirmMsg{prompt: "Delete user 1?", reply: first})
	next, _ = next.Update(confirmMsg{prompt: "Delete user 2?", reply: second})
	m = next.(Model)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.False(t, <-first)
	assert.False(t, <-second)
	assert.Empty(t, m.confirms)
}
