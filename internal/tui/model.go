package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/creamcroissant/trackerctl/internal/connection"
	"github.com/creamcroissant/trackerctl/internal/controller"
	"github.com/creamcroissant/trackerctl/internal/notifier"
)

// Model 是主 TUI 模型
type Model struct {
	// 控制器与会话状态
	set       *controller.Set
	state     *connection.State
	connector *controller.Connector
	board     *notifier.Board
	profile   connection.Profile

	// 每个分区当前选中的行
	selected map[connection.Section]int

	// 弹窗：输入表单，以及按到达顺序排队的确认请求；确认框优先显示
	form     *form
	confirms []confirmMsg

	// 终端尺寸
	width  int
	height int

	keys keyMap
}

// keyMap 定义全部按键绑定
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Next    key.Binding
	Prev    key.Binding
	Refresh key.Binding
	Connect key.Binding
	Quit    key.Binding
	Yes     key.Binding
	No      key.Binding
	Submit  key.Binding
	Cancel  key.Binding
	Field   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right"),
			key.WithHelp("tab", "next section"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left"),
			key.WithHelp("shift+tab", "prev section"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Connect: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "connect"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "cancel"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Field: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "up", "down"),
			key.WithHelp("tab", "next field"),
		),
	}
}

// Options 汇总 TUI 依赖。
type Options struct {
	Set       *controller.Set
	State     *connection.State
	Connector *controller.Connector
	Board     *notifier.Board
	Profile   connection.Profile
}

// NewModel 创建新的 TUI 模型
func NewModel(opts Options) Model {
	return Model{
		set:       opts.Set,
		state:     opts.State,
		connector: opts.Connector,
		board:     opts.Board,
		profile:   opts.Profile,
		selected:  make(map[connection.Section]int),
		keys:      defaultKeyMap(),
	}
}

// Init 实现 tea.Model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	if m.state.Connected() {
		cmds = append(cmds, m.load(m.state.Section()))
	} else {
		cmds = append(cmds, m.connectForm())
	}
	return tea.Batch(cmds...)
}

// 消息类型

// doneMsg 在后台操作结束后送回，触发重绘。
type doneMsg struct {
	section connection.Section
	ok      bool
}

// confirmMsg 由 Confirmer 桥接发出，等待用户回答。
type confirmMsg struct {
	prompt string
	reply  chan bool
}

// confirming returns the prompt currently shown, nil when none is pending.
func (m Model) confirming() *confirmMsg {
	if len(m.confirms) == 0 {
		return nil
	}
	return &m.confirms[0]
}

// openFormMsg 打开输入表单。
type openFormMsg struct {
	form *form
}

type tickMsg time.Time

// 命令

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// run 在后台执行控制器操作。
func (m Model) run(section connection.Section, fn func(ctx context.Context) bool) tea.Cmd {
	return func() tea.Msg {
		return doneMsg{section: section, ok: fn(context.Background())}
	}
}

func (m Model) load(section connection.Section) tea.Cmd {
	return m.run(section, m.set.For(section).Load)
}

func (m Model) connectForm() tea.Cmd {
	f := newForm("Connect", []field{
		{label: "API URL", value: m.profile.BaseURL},
		{label: "Admin token", value: m.profile.Token, secret: true},
	}, func(v []string) func(ctx context.Context) bool {
		return func(ctx context.Context) bool {
			ok := m.connector.Connect(ctx, connection.Profile{BaseURL: v[0], Token: v[1]})
			if ok {
				m.set.For(m.state.Section()).Load(ctx)
			}
			return ok
		}
	})
	f.section = m.state.Section()
	return func() tea.Msg { return openFormMsg{form: f} }
}

// Bridge 把控制器的确认请求转成 TUI 确认框。
type Bridge struct {
	send func(tea.Msg)
}

// NewBridge returns a Confirmer that is inert until Attach is called.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Attach binds the bridge to a running program.
func (b *Bridge) Attach(p *tea.Program) {
	b.send = p.Send
}

// Confirm implements controller.Confirmer. It blocks the calling command
// until the operator answers.
func (b *Bridge) Confirm(ctx context.Context, prompt string) bool {
	if b.send == nil {
		return false
	}
	reply := make(chan bool, 1)
	b.send(confirmMsg{prompt: prompt, reply: reply})
	select {
	case ok := <-reply:
		return ok
	case <-ctx.Done():
		return false
	}
}
