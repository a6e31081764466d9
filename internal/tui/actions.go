package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/creamcroissant/trackerctl/internal/connection"
	"github.com/creamcroissant/trackerctl/internal/controller"
	"github.com/creamcroissant/trackerctl/internal/model"
	"github.com/creamcroissant/trackerctl/internal/notifier"
)

// action 绑定一个按键到分区操作。
type action struct {
	binding key.Binding
	run     func(m Model) tea.Cmd
}

func bind(k, help string, run func(m Model) tea.Cmd) action {
	return action{binding: key.NewBinding(key.WithKeys(k), key.WithHelp(k, help)), run: run}
}

func maintenance() []action {
	return []action{
		bind("F", "flush stats", func(m Model) tea.Cmd { return m.run(m.state.Section(), m.set.Dashboard.Flush) }),
		bind("H", "hnr check", func(m Model) tea.Cmd { return m.run(m.state.Section(), m.set.Dashboard.CheckHnR) }),
		bind("B", "calc bonus", func(m Model) tea.Cmd { return m.run(m.state.Section(), m.set.Dashboard.CalculateBonus) }),
		bind("C", "cleanup bans", func(m Model) tea.Cmd { return m.run(m.state.Section(), m.set.Dashboard.CleanupBans) }),
	}
}

// actionsFor 返回分区可用的操作。
func actionsFor(section connection.Section) []action {
	switch section {
	case connection.SectionStats:
		return maintenance()
	case connection.SectionUsers:
		return userActions()
	case connection.SectionTorrents:
		return torrentActions()
	case connection.SectionWhitelist:
		return whitelistActions()
	case connection.SectionBans:
		return banActions()
	case connection.SectionRateLimits:
		return rateLimitActions()
	case connection.SectionSnatches:
		return snatchActions()
	case connection.SectionHnR:
		return hnrActions()
	case connection.SectionBonus:
		return bonusActions()
	case connection.SectionSystem:
		return append(maintenance(),
			bind("X", "clear cache", func(m Model) tea.Cmd { return m.run(connection.SectionSystem, m.set.System.ClearCache) }),
		)
	default:
		return nil
	}
}

func userActions() []action {
	users := connection.SectionUsers
	return []action{
		bind("n", "new", func(m Model) tea.Cmd {
			return m.open("New user", []field{{label: "Passkey (optional)"}}, users, func(v []string) func(context.Context) bool {
				m.set.Users.Draft.Set(controller.UserDraft{Passkey: strings.TrimSpace(v[0])})
				return m.set.Users.Create
			})
		}),
		bind("/", "search", func(m Model) tea.Cmd {
			return m.open("Search users", []field{{label: "Query"}}, users, func(v []string) func(context.Context) bool {
				return func(ctx context.Context) bool { return m.set.Users.Search(ctx, v[0]) }
			})
		}),
		bind("e", "edit", func(m Model) tea.Cmd {
			u, ok := m.selectedUser()
			if !ok {
				return nil
			}
			return func() tea.Msg {
				ctx := context.Background()
				if !m.set.Users.Edit(ctx, u.ID) {
					return doneMsg{section: users}
				}
				edit := m.set.Users.Editing.Value()
				f := newForm(fmt.Sprintf("Edit user %d", edit.ID), []field{
					{label: "Uploaded", value: strconv.FormatInt(edit.Uploaded, 10)},
					{label: "Downloaded", value: strconv.FormatInt(edit.Downloaded, 10)},
					{label: "Operation", value: edit.Operation},
					{label: "Can leech (y/n)", value: yesNo(edit.CanLeech)},
				}, func(v []string) func(context.Context) bool {
					return func(ctx context.Context) bool {
						up, err1 := strconv.ParseInt(strings.TrimSpace(v[0]), 10, 64)
						down, err2 := strconv.ParseInt(strings.TrimSpace(v[1]), 10, 64)
						if err1 != nil || err2 != nil {
							m.board.Notify(ctx, notifier.Error, "Transfer counters must be whole numbers")
							return false
						}
						edit.Uploaded, edit.Downloaded = up, down
						edit.Operation = strings.TrimSpace(v[2])
						edit.CanLeech = parseYes(v[3])
						m.set.Users.Editing.Set(edit)
						return m.set.Users.SaveEdit(ctx)
					}
				})
				f.section = users
				f.cancel = m.set.Users.Editing.Clear
				return openFormMsg{form: f}
			}
		}),
		bind("p", "reset passkey", func(m Model) tea.Cmd {
			return m.onUser(func(ctx context.Context, id int64) bool { return m.set.Users.ResetPasskey(ctx, id) })
		}),
		bind("w", "clear warnings", func(m Model) tea.Cmd {
			return m.onUser(func(ctx context.Context, id int64) bool { return m.set.Users.ClearWarnings(ctx, id) })
		}),
		bind("d", "delete", func(m Model) tea.Cmd {
			return m.onUser(func(ctx context.Context, id int64) bool { return m.set.Users.Delete(ctx, id) })
		}),
	}
}

func torrentActions() []action {
	torrents := connection.SectionTorrents
	return []action{
		bind("n", "register", func(m Model) tea.Cmd {
			return m.open("Register torrent", []field{{label: "Info hash"}}, torrents, func(v []string) func(context.Context) bool {
				m.set.Torrents.Draft.Set(controller.TorrentDraft{InfoHash: strings.TrimSpace(v[0])})
				return m.set.Torrents.Register
			})
		}),
		bind("f", "toggle freeleech", func(m Model) tea.Cmd {
			t, ok := m.selectedTorrent()
			if !ok {
				return nil
			}
			return m.run(torrents, func(ctx context.Context) bool { return m.set.Torrents.SetFreeleech(ctx, t.ID, !t.Freeleech) })
		}),
		bind("e", "edit", func(m Model) tea.Cmd {
			t, ok := m.selectedTorrent()
			if !ok {
				return nil
			}
			return func() tea.Msg {
				ctx := context.Background()
				if !m.set.Torrents.Edit(ctx, t.ID) {
					return doneMsg{section: torrents}
				}
				edit := m.set.Torrents.Editing.Value()
				f := newForm(fmt.Sprintf("Edit torrent %d", edit.ID), []field{
					{label: "Upload mult.", value: strconv.FormatFloat(edit.UploadMultiplier, 'f', -1, 64)},
					{label: "Download mult.", value: strconv.FormatFloat(edit.DownloadMultiplier, 'f', -1, 64)},
					{label: "Seeders", value: strconv.Itoa(edit.Seeders)},
					{label: "Leechers", value: strconv.Itoa(edit.Leechers)},
				}, func(v []string) func(context.Context) bool {
					return func(ctx context.Context) bool {
						up, err1 := strconv.ParseFloat(strings.TrimSpace(v[0]), 64)
						down, err2 := strconv.ParseFloat(strings.TrimSpace(v[1]), 64)
						seeders, err3 := strconv.Atoi(strings.TrimSpace(v[2]))
						leechers, err4 := strconv.Atoi(strings.TrimSpace(v[3]))
						if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
							m.board.Notify(ctx, notifier.Error, "Multipliers and counters must be numbers")
							return false
						}
						edit.UploadMultiplier, edit.DownloadMultiplier = up, down
						edit.Seeders, edit.Leechers = seeders, leechers
						m.set.Torrents.Editing.Set(edit)
						return m.set.Torrents.SaveEdit(ctx)
					}
				})
				f.section = torrents
				f.cancel = m.set.Torrents.Editing.Clear
				return openFormMsg{form: f}
			}
		}),
		bind("d", "delete", func(m Model) tea.Cmd {
			t, ok := m.selectedTorrent()
			if !ok {
				return nil
			}
			return m.run(torrents, func(ctx context.Context) bool { return m.set.Torrents.Delete(ctx, t.ID) })
		}),
	}
}

func whitelistActions() []action {
	section := connection.SectionWhitelist
	return []action{
		bind("n", "add", func(m Model) tea.Cmd {
			return m.open("Whitelist client", []field{{label: "Prefix"}, {label: "Name"}}, section, func(v []string) func(context.Context) bool {
				m.set.Whitelist.Draft.Set(controller.WhitelistDraft{Prefix: v[0], Name: v[1]})
				return m.set.Whitelist.Add
			})
		}),
		bind("d", "remove", func(m Model) tea.Cmd {
			items := m.set.Whitelist.Items()
			i := m.cursor(section, len(items))
			if i < 0 {
				return nil
			}
			prefix := items[i].Prefix
			return m.run(section, func(ctx context.Context) bool { return m.set.Whitelist.RemovePrefix(ctx, prefix) })
		}),
	}
}

func banActions() []action {
	section := connection.SectionBans
	return []action{
		bind("n", "ban ip", func(m Model) tea.Cmd {
			return m.open("Ban IP", []field{{label: "IP"}, {label: "Reason"}, {label: "Duration (s)"}}, section, func(v []string) func(context.Context) bool {
				m.set.Bans.Draft.Set(controller.BanDraft{IP: strings.TrimSpace(v[0]), Reason: v[1], Duration: v[2]})
				return m.set.Bans.Ban
			})
		}),
		bind("d", "unban", func(m Model) tea.Cmd {
			items := m.set.Bans.Items()
			i := m.cursor(section, len(items))
			if i < 0 {
				return nil
			}
			ip := items[i].IP
			return m.run(section, func(ctx context.Context) bool { return m.set.Bans.Unban(ctx, ip) })
		}),
		bind("a", "active only", func(m Model) tea.Cmd {
			m.set.Bans.SetActiveOnly(!m.set.Bans.ActiveOnly())
			return m.load(section)
		}),
		bind("C", "cleanup", func(m Model) tea.Cmd { return m.run(section, m.set.Bans.Cleanup) }),
	}
}

func rateLimitActions() []action {
	section := connection.SectionRateLimits
	return []action{
		bind("/", "check ip", func(m Model) tea.Cmd {
			return m.open("Check IP", []field{{label: "IP"}}, section, func(v []string) func(context.Context) bool {
				return func(ctx context.Context) bool { return m.set.RateLimits.Check(ctx, strings.TrimSpace(v[0])) }
			})
		}),
		bind("x", "reset ip", func(m Model) tea.Cmd {
			ip := m.set.RateLimits.IPState.Value().IP
			return m.open("Reset IP", []field{{label: "IP", value: ip}}, section, func(v []string) func(context.Context) bool {
				return func(ctx context.Context) bool { return m.set.RateLimits.Reset(ctx, strings.TrimSpace(v[0])) }
			})
		}),
	}
}

func snatchActions() []action {
	section := connection.SectionSnatches
	return []action{
		bind("u", "by user", func(m Model) tea.Cmd {
			return m.open("Snatches by user", []field{{label: "User ID"}}, section, func(v []string) func(context.Context) bool {
				return func(ctx context.Context) bool { return m.set.Snatches.ByUser(ctx, v[0]) }
			})
		}),
		bind("t", "by torrent", func(m Model) tea.Cmd {
			return m.open("Snatches by torrent", []field{{label: "Torrent ID"}}, section, func(v []string) func(context.Context) bool {
				return func(ctx context.Context) bool { return m.set.Snatches.ByTorrent(ctx, v[0]) }
			})
		}),
		bind("i", "details", func(m Model) tea.Cmd {
			return m.onSnatch(section, m.set.Snatches.Items(), m.set.Snatches.Get)
		}),
		bind("x", "clear hnr", func(m Model) tea.Cmd {
			return m.onSnatch(section, m.set.Snatches.Items(), m.set.Snatches.ClearHnR)
		}),
		bind("d", "delete", func(m Model) tea.Cmd {
			return m.onSnatch(section, m.set.Snatches.Items(), m.set.Snatches.Delete)
		}),
	}
}

func hnrActions() []action {
	section := connection.SectionHnR
	return []action{
		bind("c", "run check", func(m Model) tea.Cmd { return m.run(section, m.set.HnR.Check) }),
		bind("x", "clear", func(m Model) tea.Cmd {
			return m.onSnatch(section, m.set.HnR.Items(), m.set.HnR.Clear)
		}),
	}
}

func bonusActions() []action {
	section := connection.SectionBonus
	draftForm := func(m Model, title string, withPoints bool, run func(ctx context.Context) bool) tea.Cmd {
		d := m.set.Bonus.Draft.Value()
		fields := []field{{label: "User ID", value: d.UserID}}
		if withPoints {
			fields = append(fields, field{label: "Points", value: d.Points})
		}
		return m.open(title, fields, section, func(v []string) func(context.Context) bool {
			next := controller.BonusDraft{UserID: v[0], Points: d.Points}
			if withPoints {
				next.Points = v[1]
			}
			m.set.Bonus.Draft.Set(next)
			return run
		})
	}
	return []action{
		bind("p", "points", func(m Model) tea.Cmd {
			return draftForm(m, "User points", false, func(ctx context.Context) bool {
				_, ok := m.set.Bonus.Points(ctx)
				return ok
			})
		}),
		bind("a", "add", func(m Model) tea.Cmd { return draftForm(m, "Add points", true, m.set.Bonus.Add) }),
		bind("m", "remove", func(m Model) tea.Cmd { return draftForm(m, "Remove points", true, m.set.Bonus.Deduct) }),
		bind("R", "redeem", func(m Model) tea.Cmd { return draftForm(m, "Redeem points", true, m.set.Bonus.Redeem) }),
		bind("c", "calculate", func(m Model) tea.Cmd { return m.run(section, m.set.Bonus.Calculate) }),
	}
}

// open 打开表单，提交后在 section 上执行 build 返回的操作。
func (m Model) open(title string, fields []field, section connection.Section, build func(v []string) func(context.Context) bool) tea.Cmd {
	f := newForm(title, fields, build)
	f.section = section
	return func() tea.Msg { return openFormMsg{form: f} }
}

func (m Model) onUser(fn func(ctx context.Context, id int64) bool) tea.Cmd {
	u, ok := m.selectedUser()
	if !ok {
		return nil
	}
	return m.run(connection.SectionUsers, func(ctx context.Context) bool { return fn(ctx, u.ID) })
}

func (m Model) onSnatch(section connection.Section, items []model.Snatch, fn func(ctx context.Context, id int64) bool) tea.Cmd {
	i := m.cursor(section, len(items))
	if i < 0 {
		return nil
	}
	id := items[i].ID
	return m.run(section, func(ctx context.Context) bool { return fn(ctx, id) })
}

func yesNo(b bool) string {
	if b {
		return "y"
	}
	return "n"
}

func parseYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "1":
		return true
	}
	return false
}
