package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/creamcroissant/trackerctl/internal/connection"
)

type field struct {
	label  string
	value  string
	secret bool
}

// form 是一个简单的多字段输入框，提交时把各字段值交给 action。
type form struct {
	title   string
	labels  []string
	inputs  []textinput.Model
	focus   int
	section connection.Section
	action  func(values []string) func(ctx context.Context) bool
	// cancel 在表单被放弃时调用，用于关闭控制器的编辑槽。
	cancel func()
}

func newForm(title string, fields []field, action func(values []string) func(ctx context.Context) bool) *form {
	f := &form{title: title, action: action}
	for i, fd := range fields {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 256
		in.Width = 48
		in.SetValue(fd.value)
		if fd.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		if i == 0 {
			in.Focus()
		}
		f.labels = append(f.labels, fd.label)
		f.inputs = append(f.inputs, in)
	}
	return f
}

func (f *form) values() []string {
	out := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = in.Value()
	}
	return out
}

func (f *form) move(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) view() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render(f.title))
	b.WriteString("\n\n")
	for i, in := range f.inputs {
		label := styleLabel.Render(f.labels[i])
		if i == f.focus {
			label = styleLabelFocused.Render(f.labels[i])
		}
		b.WriteString(label)
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styleHelp.Render("[enter] submit  [tab] next field  [esc] cancel"))
	return styleDetailBox.Render(b.String())
}
