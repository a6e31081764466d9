package source

import (
	"time"

	"github.com/creamcroissant/trackerctl/internal/model"
)

// Snapshot is the fixed data set served in demonstration mode.
type Snapshot struct {
	// Taken is the reference clock for time-dependent filters such as
	// active bans, so results never depend on the wall clock.
	Taken        time.Time
	Stats        model.Stats
	Users        []model.User
	Torrents     []model.Torrent
	Whitelist    []model.WhitelistEntry
	Bans         []model.Ban
	Snatches     []model.Snatch
	Swarms       []model.Swarm
	RateLimits   model.RateLimitStats
	IPStates     map[string]model.IPRateLimit
	Bonus        model.BonusStats
	Verification model.VerificationStats
}

func ts(s string) model.Timestamp {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return model.NewTimestamp(t)
}

func tsp(s string) *model.Timestamp {
	t := ts(s)
	return &t
}

// DefaultSnapshot returns a fresh copy of the demonstration data.
func DefaultSnapshot() *Snapshot {
	rateLimits := model.RateLimitStats{
		Enabled:         true,
		TotalIPsTracked: 892,
		Limits:          map[string]string{"announce": "30/min", "scrape": "10/min", "admin_api": "100/min"},
	}
	bonus := model.BonusStats{
		Enabled:         true,
		BasePoints:      1.0,
		ConversionRate:  1000000000,
		LastCalculation: tsp("2024-12-26T12:00:00Z"),
	}
	verification := model.VerificationStats{
		Enabled:       true,
		CacheSize:     2341,
		VerifiedCount: 1892,
		FailedCount:   449,
	}

	return &Snapshot{
		Taken: ts("2024-12-27T00:00:00Z").Time,
		Stats: model.Stats{
			Users:              1247,
			Torrents:           8934,
			Peers:              15623,
			ActiveSwarms:       2841,
			TotalSnatches:      89234,
			HnRCount:           23,
			ActiveBans:         8,
			TotalUploaded:      847293847293847,
			TotalDownloaded:    293847293847293,
			WhitelistedClients: 9,
			ETS:                &model.TableSizes{Passkeys: 1247, Whitelist: 9, BannedIPs: 8},
			RateLimiting:       &rateLimits,
			Bonus:              &bonus,
			Verification:       &verification,
		},
		Users: []model.User{
			{ID: 1, Passkey: "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4", Uploaded: 1572864000000, Downloaded: 524288000000, BonusPoints: 342.5, HnRWarnings: 0, CanLeech: true, CreatedAt: ts("2024-03-15T10:30:00Z")},
			{ID: 2, Passkey: "b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5", Uploaded: 8589934592000, Downloaded: 2147483648000, BonusPoints: 1205.75, HnRWarnings: 0, CanLeech: true, CreatedAt: ts("2024-01-22T14:45:00Z")},
			{ID: 3, Passkey: "c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6", Uploaded: 107374182400, Downloaded: 536870912000, BonusPoints: 45.2, HnRWarnings: 2, CanLeech: true, CreatedAt: ts("2024-06-08T09:15:00Z")},
			{ID: 4, Passkey: "d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1", Uploaded: 0, Downloaded: 10737418240, BonusPoints: 0, HnRWarnings: 3, CanLeech: false, CreatedAt: ts("2024-11-02T16:20:00Z")},
			{ID: 5, Passkey: "e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2", Uploaded: 42949672960000, Downloaded: 10737418240000, BonusPoints: 5420.0, HnRWarnings: 0, CanLeech: true, CreatedAt: ts("2023-08-14T11:00:00Z")},
		},
		Torrents: []model.Torrent{
			{ID: 1, InfoHash: "9ebdee3c368a45277499df08bd29bc17b0bce09d", Seeders: 45, Leechers: 12, Completed: 892, Freeleech: true, UploadMultiplier: 1.0, DownloadMultiplier: 0.0, CreatedAt: ts("2024-10-01T08:00:00Z")},
			{ID: 2, InfoHash: "5bd072265284c987eb6a747f1d33e3451aecb927", Seeders: 128, Leechers: 34, Completed: 2341, Freeleech: false, UploadMultiplier: 2.0, DownloadMultiplier: 1.0, CreatedAt: ts("2024-09-15T12:30:00Z")},
			{ID: 3, InfoHash: "113eecab17a0f6783ed61bcc981dff69eb05965f", Seeders: 8, Leechers: 2, Completed: 156, Freeleech: false, UploadMultiplier: 1.0, DownloadMultiplier: 0.5, CreatedAt: ts("2024-11-20T15:45:00Z")},
			{ID: 4, InfoHash: "cb57a63d823d32e5002e5e44bdc1e24e5335e6d1", Seeders: 312, Leechers: 89, Completed: 5678, Freeleech: false, UploadMultiplier: 1.0, DownloadMultiplier: 1.0, CreatedAt: ts("2024-07-04T09:00:00Z")},
			{ID: 5, InfoHash: "094c26f496bd0dd1b77b8bac6810d55e69bd2b16", Seeders: 67, Leechers: 15, Completed: 1023, Freeleech: true, UploadMultiplier: 1.5, DownloadMultiplier: 0.0, CreatedAt: ts("2024-12-01T18:20:00Z")},
		},
		Whitelist: []model.WhitelistEntry{
			{ID: 1, Prefix: "-TR", Name: "Transmission", CreatedAt: ts("2024-01-01T00:00:00Z")},
			{ID: 2, Prefix: "-qB", Name: "qBittorrent", CreatedAt: ts("2024-01-01T00:00:00Z")},
			{ID: 3, Prefix: "-DE", Name: "Deluge", CreatedAt: ts("2024-01-01T00:00:00Z")},
			{ID: 4, Prefix: "-UT", Name: "uTorrent", CreatedAt: ts("2024-01-01T00:00:00Z")},
			{ID: 5, Prefix: "-lt", Name: "libtorrent (rasterbar)", CreatedAt: ts("2024-01-01T00:00:00Z")},
			{ID: 6, Prefix: "-LT", Name: "libtorrent (rakshasa)", CreatedAt: ts("2024-01-01T00:00:00Z")},
			{ID: 7, Prefix: "-AZ", Name: "Azureus/Vuze", CreatedAt: ts("2024-01-01T00:00:00Z")},
			{ID: 8, Prefix: "-BT", Name: "BitTorrent", CreatedAt: ts("2024-01-01T00:00:00Z")},
			{ID: 9, Prefix: "-WW", Name: "WebTorrent", CreatedAt: ts("2024-01-01T00:00:00Z")},
		},
		Bans: []model.Ban{
			{ID: 1, IP: "192.168.1.100", Reason: "Ratio cheating detected", ExpiresAt: nil, CreatedAt: ts("2024-12-10T14:30:00Z")},
			{ID: 2, IP: "10.0.0.55", Reason: "Spam announces", ExpiresAt: tsp("2025-01-15T00:00:00Z"), CreatedAt: ts("2024-12-15T09:00:00Z")},
			{ID: 3, IP: "172.16.0.42", Reason: "Client spoofing", ExpiresAt: nil, CreatedAt: ts("2024-11-28T16:45:00Z")},
			{ID: 4, IP: "198.51.100.23", Reason: "Announce flood", ExpiresAt: tsp("2024-12-20T00:00:00Z"), CreatedAt: ts("2024-12-13T08:10:00Z")},
		},
		Snatches: []model.Snatch{
			{ID: 100, UserID: 1, TorrentID: 1, CompletedAt: ts("2024-10-02T08:00:00Z"), SeedTime: 864000, SeedTimeHours: 240.0, HnR: false},
			{ID: 101, UserID: 4, TorrentID: 2, CompletedAt: ts("2024-11-15T10:00:00Z"), SeedTime: 3600, SeedTimeHours: 1.0, HnR: true},
			{ID: 102, UserID: 3, TorrentID: 4, CompletedAt: ts("2024-12-01T14:30:00Z"), SeedTime: 18000, SeedTimeHours: 5.0, HnR: true},
			{ID: 103, UserID: 2, TorrentID: 4, CompletedAt: ts("2024-07-05T11:00:00Z"), SeedTime: 2592000, SeedTimeHours: 720.0, HnR: false},
			{ID: 104, UserID: 5, TorrentID: 5, CompletedAt: ts("2024-12-02T07:45:00Z"), SeedTime: 1209600, SeedTimeHours: 336.0, HnR: false},
		},
		Swarms: []model.Swarm{
			{InfoHash: "9ebdee3c368a45277499df08bd29bc17b0bce09d", Seeders: 45, Leechers: 12, Completed: 892},
			{InfoHash: "5bd072265284c987eb6a747f1d33e3451aecb927", Seeders: 128, Leechers: 34, Completed: 2341},
			{InfoHash: "cb57a63d823d32e5002e5e44bdc1e24e5335e6d1", Seeders: 312, Leechers: 89, Completed: 5678},
			{InfoHash: "094c26f496bd0dd1b77b8bac6810d55e69bd2b16", Seeders: 67, Leechers: 15, Completed: 1023},
			{InfoHash: "113eecab17a0f6783ed61bcc981dff69eb05965f", Seeders: 23, Leechers: 8, Completed: 445},
			{InfoHash: "248902131a732628aef6e2872827db10df7c07bf", Seeders: 89, Leechers: 21, Completed: 1876},
		},
		RateLimits: rateLimits,
		IPStates: map[string]model.IPRateLimit{
			"10.0.0.55": {IP: "10.0.0.55", Buckets: map[string]model.RateBucket{
				"announce":  {Count: 30, Limit: 30, WindowSeconds: 60},
				"scrape":    {Count: 4, Limit: 10, WindowSeconds: 60},
				"admin_api": {Count: 0, Limit: 100, WindowSeconds: 60},
			}},
		},
		Bonus:        bonus,
		Verification: verification,
	}
}
