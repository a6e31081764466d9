package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/creamcroissant/trackerctl/internal/format"
	"github.com/creamcroissant/trackerctl/internal/model"
)

// table 是 tabwriter 输出的一页数据。
type table struct {
	header []string
	rows   [][]string
	empty  string
}

// print 按 --output 渲染 v；表格模式使用 t 生成的行。
func (a *app) print(v any, t func() table) error {
	switch strings.ToLower(a.cfg.Output) {
	case "json":
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "", "table":
		return a.printTable(t())
	default:
		return fmt.Errorf("unknown output format %q", a.cfg.Output)
	}
}

func (a *app) printTable(t table) error {
	if len(t.rows) == 0 && t.empty != "" {
		_, err := fmt.Fprintln(a.out, t.empty)
		return err
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	if len(t.header) > 0 {
		fmt.Fprintln(w, strings.Join(t.header, "\t"))
	}
	for _, r := range t.rows {
		fmt.Fprintln(w, strings.Join(r, "\t"))
	}
	return w.Flush()
}

// pairs 生成两列的键值表。
func pairs(kv ...string) table {
	t := table{}
	for i := 0; i+1 < len(kv); i += 2 {
		t.rows = append(t.rows, []string{kv[i] + ":", kv[i+1]})
	}
	return t
}

func id(n int64) string { return strconv.FormatInt(n, 10) }

func usersTable(items []model.User) table {
	t := table{
		header: []string{"ID", "PASSKEY", "UPLOADED", "DOWNLOADED", "RATIO", "POINTS", "HNR", "LEECH"},
		empty:  "No users found.",
	}
	for _, u := range items {
		t.rows = append(t.rows, []string{
			id(u.ID), u.Passkey, format.Bytes(u.Uploaded), format.Bytes(u.Downloaded),
			format.Ratio(u.Uploaded, u.Downloaded), format.Points(u.BonusPoints),
			strconv.Itoa(u.HnRWarnings), format.Bool(u.CanLeech),
		})
	}
	return t
}

func torrentsTable(items []model.Torrent) table {
	t := table{
		header: []string{"ID", "INFO HASH", "SEEDERS", "LEECHERS", "COMPLETED", "FREELEECH", "UP", "DOWN"},
		empty:  "No torrents registered.",
	}
	for _, tr := range items {
		t.rows = append(t.rows, []string{
			id(tr.ID), tr.InfoHash, strconv.Itoa(tr.Seeders), strconv.Itoa(tr.Leechers),
			strconv.Itoa(tr.Completed), format.Bool(tr.Freeleech),
			format.Multiplier(tr.UploadMultiplier), format.Multiplier(tr.DownloadMultiplier),
		})
	}
	return t
}

func whitelistTable(items []model.WhitelistEntry) table {
	t := table{header: []string{"PREFIX", "CLIENT", "ADDED"}, empty: "Whitelist is empty."}
	for _, w := range items {
		t.rows = append(t.rows, []string{w.Prefix, w.Name, format.Time(w.CreatedAt)})
	}
	return t
}

func bansTable(items []model.Ban) table {
	t := table{header: []string{"IP", "REASON", "EXPIRES", "CREATED"}, empty: "No bans."}
	for _, b := range items {
		t.rows = append(t.rows, []string{b.IP, b.Reason, format.Expiry(b.ExpiresAt), format.Time(b.CreatedAt)})
	}
	return t
}

func snatchesTable(items []model.Snatch) table {
	t := table{header: []string{"ID", "USER", "TORRENT", "COMPLETED", "SEED TIME", "HNR"}, empty: "No snatches."}
	for _, s := range items {
		t.rows = append(t.rows, []string{
			id(s.ID), id(s.UserID), id(s.TorrentID), format.Time(s.CompletedAt),
			format.Duration(s.SeedTime), format.Bool(s.HnR),
		})
	}
	return t
}

func swarmsTable(items []model.Swarm) table {
	t := table{header: []string{"INFO HASH", "SEEDERS", "LEECHERS", "COMPLETED"}, empty: "No active swarms."}
	for _, s := range items {
		t.rows = append(t.rows, []string{s.InfoHash, strconv.Itoa(s.Seeders), strconv.Itoa(s.Leechers), strconv.Itoa(s.Completed)})
	}
	return t
}

func statsTable(s model.Stats) table {
	kv := []string{
		"Users", format.Count(s.Users),
		"Torrents", format.Count(s.Torrents),
		"Peers", format.Count(s.Peers),
		"Active swarms", format.Count(s.ActiveSwarms),
		"Snatches", format.Count(s.TotalSnatches),
		"Hit-and-runs", format.Count(s.HnRCount),
		"Active bans", format.Count(s.ActiveBans),
		"Whitelisted clients", format.Count(s.WhitelistedClients),
		"Total uploaded", format.Bytes(s.TotalUploaded),
		"Total downloaded", format.Bytes(s.TotalDownloaded),
	}
	if s.ETS != nil {
		kv = append(kv,
			"Passkey table", format.Count(s.ETS.Passkeys),
			"Whitelist table", format.Count(s.ETS.Whitelist),
			"Banned IP table", format.Count(s.ETS.BannedIPs),
		)
	}
	if s.RateLimiting != nil {
		kv = append(kv, "Rate limiting", format.Bool(s.RateLimiting.Enabled), "IPs tracked", format.Count(s.RateLimiting.TotalIPsTracked))
	}
	if s.Bonus != nil {
		kv = append(kv, "Bonus", format.Bool(s.Bonus.Enabled), "Last bonus run", format.Expiry(s.Bonus.LastCalculation))
	}
	if s.Verification != nil {
		kv = append(kv, "Verification", format.Bool(s.Verification.Enabled), "Verification cache", format.Count(s.Verification.CacheSize))
	}
	return pairs(kv...)
}

func rateLimitTable(s model.RateLimitStats) table {
	kv := []string{"Enabled", format.Bool(s.Enabled), "IPs tracked", format.Count(s.TotalIPsTracked)}
	for _, name := range sortedKeys(s.Limits) {
		kv = append(kv, name, s.Limits[name])
	}
	return pairs(kv...)
}

func ipStateTable(s model.IPRateLimit) table {
	t := table{header: []string{"LIMIT", "COUNT", "MAX", "WINDOW"}}
	for _, name := range sortedKeys(s.Buckets) {
		b := s.Buckets[name]
		t.rows = append(t.rows, []string{name, strconv.Itoa(b.Count), strconv.Itoa(b.Limit), strconv.Itoa(b.WindowSeconds) + "s"})
	}
	return t
}

func bonusTable(s model.BonusStats) table {
	return pairs(
		"Enabled", format.Bool(s.Enabled),
		"Base points", format.Points(s.BasePoints),
		"Conversion", format.Bytes(s.ConversionRate)+" per point",
		"Last calculation", format.Expiry(s.LastCalculation),
	)
}

func verificationTable(v model.VerificationStats) table {
	return pairs(
		"Enabled", format.Bool(v.Enabled),
		"Cache size", format.Count(v.CacheSize),
		"Verified", format.Count(v.VerifiedCount),
		"Failed", format.Count(v.FailedCount),
	)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
