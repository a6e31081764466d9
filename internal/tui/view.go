package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/creamcroissant/trackerctl/internal/connection"
	"github.com/creamcroissant/trackerctl/internal/controller"
	"github.com/creamcroissant/trackerctl/internal/format"
	"github.com/creamcroissant/trackerctl/internal/model"
	"github.com/creamcroissant/trackerctl/internal/notifier"
)

// View 实现 tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	// 头部
	title := "  Tracker Admin  " + modeBadge(m.state.Demo(), m.state.Connected())
	b.WriteString(styleHeader.Width(m.width).Render(title))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	// 通知
	for _, n := range m.board.Active() {
		b.WriteString("  " + notifier.Format(n))
		b.WriteString("\n")
	}

	section := m.state.Section()
	if c := m.set.For(section); c.Phase() == controller.Loading {
		if c.Loaded() {
			b.WriteString(styleMuted.Render("  Refreshing..."))
		} else {
			b.WriteString(styleMuted.Render("  Loading..."))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.confirming() != nil:
		b.WriteString(styleConfirmBox.Render(m.confirming().prompt + "\n\n" + styleHelp.Render("[y] yes  [n] no")))
		b.WriteString("\n")
	case m.form != nil:
		b.WriteString(m.form.view())
		b.WriteString("\n")
	case !m.state.Connected():
		b.WriteString(styleMuted.Render("  Not connected. Press [ctrl+o] to connect."))
		b.WriteString("\n")
	default:
		b.WriteString(m.renderSection(section))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp(section))
	return b.String()
}

func (m Model) renderTabs() string {
	current := m.state.Section()
	tabs := make([]string, 0, len(connection.Sections))
	for _, s := range connection.Sections {
		if s == current {
			tabs = append(tabs, styleTabActive.Render(string(s)))
		} else {
			tabs = append(tabs, styleTab.Render(string(s)))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderHelp(section connection.Section) string {
	parts := []string{"[tab] section", "[↑/↓] select", "[r] refresh"}
	if !m.state.Demo() {
		parts = append(parts, "[ctrl+o] connect")
	}
	for _, a := range actionsFor(section) {
		h := a.binding.Help()
		parts = append(parts, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
	}
	parts = append(parts, "[q] quit")
	return styleHelp.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderSection(section connection.Section) string {
	switch section {
	case connection.SectionUsers:
		return m.renderUsers()
	case connection.SectionTorrents:
		return m.renderTorrents()
	case connection.SectionWhitelist:
		return m.renderWhitelist()
	case connection.SectionBans:
		return m.renderBans()
	case connection.SectionRateLimits:
		return m.renderRateLimits()
	case connection.SectionSnatches:
		return m.renderSnatches()
	case connection.SectionHnR:
		return m.renderTable(section, snatchColumns, snatchRows(m.set.HnR.Items()), "No hit-and-runs.")
	case connection.SectionBonus:
		return m.renderBonus()
	case connection.SectionSwarms:
		return m.renderSwarms()
	case connection.SectionSystem:
		return m.renderSystem()
	default:
		return m.renderStats()
	}
}

// column 描述表格的一列
type column struct {
	title string
	width int
}

// renderTable 渲染带选中行与滚动窗口的表格。
func (m Model) renderTable(section connection.Section, cols []column, rows [][]string, empty string) string {
	var b strings.Builder

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = pad(c.title, c.width)
	}
	b.WriteString(styleTableHeader.Width(m.width).Render(strings.Join(header, " │ ")))
	b.WriteString("\n")

	if len(rows) == 0 {
		b.WriteString(styleMuted.Render("  " + empty))
		return b.String()
	}

	// 按终端高度计算可见行数
	visibleRows := m.height - 14
	if visibleRows < 5 {
		visibleRows = 5
	}
	selected := m.cursor(section, len(rows))
	startIdx := 0
	if selected >= visibleRows {
		startIdx = selected - visibleRows + 1
	}
	endIdx := startIdx + visibleRows
	if endIdx > len(rows) {
		endIdx = len(rows)
	}

	for i := startIdx; i < endIdx; i++ {
		cells := make([]string, len(cols))
		for j, c := range cols {
			cells[j] = pad(rows[i][j], c.width)
		}
		line := strings.Join(cells, " │ ")
		if i == selected {
			b.WriteString(styleTableRowSelected.Width(m.width).Render(line))
		} else {
			b.WriteString(styleTableRow.Render(line))
		}
		b.WriteString("\n")
	}

	// 滚动提示
	if len(rows) > visibleRows {
		b.WriteString(styleMuted.Render(fmt.Sprintf("  Showing %d-%d of %d", startIdx+1, endIdx, len(rows))))
	}
	return b.String()
}

// pad 截断或补齐到固定宽度。
func pad(s string, width int) string {
	if lipgloss.Width(s) > width {
		r := []rune(s)
		if len(r) > width && width > 3 {
			return string(r[:width-3]) + "..."
		}
	}
	return s + strings.Repeat(" ", max(0, width-lipgloss.Width(s)))
}

// kv 渲染标签-值列表。
type kv struct {
	label string
	value string
}

func renderPairs(title string, pairs []kv) string {
	var b strings.Builder
	b.WriteString(styleTitle.Render(title))
	b.WriteString("\n")
	for _, p := range pairs {
		b.WriteString(styleLabel.Render(p.label))
		b.WriteString(styleValue.Render(p.value))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderStats() string {
	s := m.set.Dashboard.Items()
	boxes := []string{styleBox.Render(renderPairs("Tracker", []kv{
		{"Users", format.Count(s.Users)},
		{"Torrents", format.Count(s.Torrents)},
		{"Peers", format.Count(s.Peers)},
		{"Active swarms", format.Count(s.ActiveSwarms)},
		{"Snatches", format.Count(s.TotalSnatches)},
		{"Hit-and-runs", format.Count(s.HnRCount)},
		{"Active bans", format.Count(s.ActiveBans)},
		{"Whitelisted", format.Count(s.WhitelistedClients)},
		{"Uploaded", format.Bytes(s.TotalUploaded)},
		{"Downloaded", format.Bytes(s.TotalDownloaded)},
	}))}

	var sub []kv
	if s.ETS != nil {
		sub = append(sub,
			kv{"Passkeys", format.Count(s.ETS.Passkeys)},
			kv{"Whitelist", format.Count(s.ETS.Whitelist)},
			kv{"Banned IPs", format.Count(s.ETS.BannedIPs)},
		)
	}
	if s.RateLimiting != nil {
		sub = append(sub,
			kv{"Rate limiting", format.Bool(s.RateLimiting.Enabled)},
			kv{"IPs tracked", format.Count(s.RateLimiting.TotalIPsTracked)},
		)
	}
	if s.Bonus != nil {
		sub = append(sub,
			kv{"Bonus", format.Bool(s.Bonus.Enabled)},
			kv{"Last calculation", format.Expiry(s.Bonus.LastCalculation)},
		)
	}
	if s.Verification != nil {
		sub = append(sub,
			kv{"Verification", format.Bool(s.Verification.Enabled)},
			kv{"Cache size", format.Count(s.Verification.CacheSize)},
		)
	}
	if len(sub) > 0 {
		boxes = append(boxes, styleBox.Render(renderPairs("Subsystems", sub)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (m Model) renderUsers() string {
	cols := []column{{"ID", 6}, {"Passkey", 34}, {"Uploaded", 10}, {"Downloaded", 10}, {"Ratio", 7}, {"Points", 10}, {"HnR", 4}, {"Leech", 5}}
	items := m.set.Users.Items()
	rows := make([][]string, len(items))
	for i, u := range items {
		rows[i] = []string{
			strconv.FormatInt(u.ID, 10),
			u.Passkey,
			format.Bytes(u.Uploaded),
			format.Bytes(u.Downloaded),
			format.Ratio(u.Uploaded, u.Downloaded),
			format.Points(u.BonusPoints),
			strconv.Itoa(u.HnRWarnings),
			format.Bool(u.CanLeech),
		}
	}
	return m.renderTable(connection.SectionUsers, cols, rows, "No users found.")
}

func (m Model) renderTorrents() string {
	cols := []column{{"ID", 6}, {"Info hash", 40}, {"Seed", 5}, {"Leech", 5}, {"Done", 6}, {"Free", 4}, {"Up×", 5}, {"Down×", 5}}
	items := m.set.Torrents.Items()
	rows := make([][]string, len(items))
	for i, t := range items {
		rows[i] = []string{
			strconv.FormatInt(t.ID, 10),
			t.InfoHash,
			strconv.Itoa(t.Seeders),
			strconv.Itoa(t.Leechers),
			strconv.Itoa(t.Completed),
			flag(t.Freeleech),
			format.Multiplier(t.UploadMultiplier),
			format.Multiplier(t.DownloadMultiplier),
		}
	}
	return m.renderTable(connection.SectionTorrents, cols, rows, "No torrents registered.")
}

func (m Model) renderWhitelist() string {
	cols := []column{{"Prefix", 10}, {"Client", 24}, {"Added", 16}}
	items := m.set.Whitelist.Items()
	rows := make([][]string, len(items))
	for i, w := range items {
		rows[i] = []string{w.Prefix, w.Name, format.Time(w.CreatedAt)}
	}
	return m.renderTable(connection.SectionWhitelist, cols, rows, "Whitelist is empty.")
}

func (m Model) renderBans() string {
	cols := []column{{"IP", 16}, {"Reason", 28}, {"Expires", 16}, {"Created", 16}}
	items := m.set.Bans.Items()
	rows := make([][]string, len(items))
	for i, ban := range items {
		rows[i] = []string{ban.IP, ban.Reason, format.Expiry(ban.ExpiresAt), format.Time(ban.CreatedAt)}
	}
	title := "All bans"
	if m.set.Bans.ActiveOnly() {
		title = "Active bans"
	}
	return styleTitle.Render(title) + "\n" + m.renderTable(connection.SectionBans, cols, rows, "No bans.")
}

func (m Model) renderRateLimits() string {
	s := m.set.RateLimits.Items()
	pairs := []kv{
		{"Enabled", format.Bool(s.Enabled)},
		{"IPs tracked", format.Count(s.TotalIPsTracked)},
	}
	for _, name := range sortedKeys(s.Limits) {
		pairs = append(pairs, kv{name, s.Limits[name]})
	}
	boxes := []string{styleBox.Render(renderPairs("Rate limiting", pairs))}

	if st, ok := m.set.RateLimits.IPState.Get(); ok {
		var buckets []kv
		for _, name := range sortedKeys(st.Buckets) {
			bk := st.Buckets[name]
			buckets = append(buckets, kv{name, fmt.Sprintf("%d/%d per %ds", bk.Count, bk.Limit, bk.WindowSeconds)})
		}
		boxes = append(boxes, styleDetailBox.Render(renderPairs("IP "+st.IP, buckets)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

var snatchColumns = []column{{"ID", 6}, {"User", 6}, {"Torrent", 7}, {"Completed", 16}, {"Seed time", 12}, {"HnR", 4}}

func snatchRows(items []model.Snatch) [][]string {
	rows := make([][]string, len(items))
	for i, s := range items {
		rows[i] = []string{
			strconv.FormatInt(s.ID, 10),
			strconv.FormatInt(s.UserID, 10),
			strconv.FormatInt(s.TorrentID, 10),
			format.Time(s.CompletedAt),
			format.Duration(s.SeedTime),
			flag(s.HnR),
		}
	}
	return rows
}

func (m Model) renderSnatches() string {
	l, ok := m.set.Snatches.Context.Get()
	if !ok {
		return styleMuted.Render("  Look up snatches with [u] by user or [t] by torrent.")
	}
	out := styleTitle.Render(fmt.Sprintf("Snatches for %s %s", strings.TrimSuffix(l.Kind, "s"), l.ID)) + "\n" +
		m.renderTable(connection.SectionSnatches, snatchColumns, snatchRows(m.set.Snatches.Items()), "No snatches.")

	if d, ok := m.set.Snatches.Detail.Get(); ok {
		out += "\n" + styleDetailBox.Render(renderPairs(fmt.Sprintf("Snatch %d", d.ID), []kv{
			{"User", strconv.FormatInt(d.UserID, 10)},
			{"Torrent", strconv.FormatInt(d.TorrentID, 10)},
			{"Completed", format.Time(d.CompletedAt)},
			{"Seed time", format.Duration(d.SeedTime)},
			{"Seed hours", strconv.FormatFloat(d.SeedTimeHours, 'f', 1, 64)},
			{"Hit-and-run", format.Bool(d.HnR)},
		}))
	}
	return out
}

func (m Model) renderBonus() string {
	s := m.set.Bonus.Items()
	boxes := []string{styleBox.Render(renderPairs("Bonus points", []kv{
		{"Enabled", format.Bool(s.Enabled)},
		{"Base points", format.Points(s.BasePoints)},
		{"Conversion", format.Bytes(s.ConversionRate) + " / point"},
		{"Last calculation", format.Expiry(s.LastCalculation)},
	}))}

	d := m.set.Bonus.Draft.Value()
	if d.UserID != "" {
		boxes = append(boxes, styleDetailBox.Render(renderPairs("User "+d.UserID, []kv{{"Points", d.Points}})))
	}
	if r, ok := m.set.Bonus.Redemption.Get(); ok {
		boxes = append(boxes, styleDetailBox.Render(renderPairs("Last redemption", []kv{
			{"Points", format.Points(r.PointsRedeemed)},
			{"Credit", r.UploadCreditFormatted},
		})))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (m Model) renderSwarms() string {
	cols := []column{{"Info hash", 40}, {"Seeders", 7}, {"Leechers", 8}, {"Completed", 9}}
	items := m.set.Swarms.Items()
	rows := make([][]string, len(items))
	for i, s := range items {
		rows[i] = []string{s.InfoHash, strconv.Itoa(s.Seeders), strconv.Itoa(s.Leechers), strconv.Itoa(s.Completed)}
	}
	return m.renderTable(connection.SectionSwarms, cols, rows, "No active swarms.")
}

func (m Model) renderSystem() string {
	v := m.set.System.Items()
	return styleBox.Render(renderPairs("Verification cache", []kv{
		{"Enabled", format.Bool(v.Enabled)},
		{"Cache size", format.Count(v.CacheSize)},
		{"Verified", format.Count(v.VerifiedCount)},
		{"Failed", format.Count(v.FailedCount)},
	}))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
