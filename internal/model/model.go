// Package model mirrors the records served by the tracker admin API.
//
// Records are read replicas: the backend owns every identifier and every
// derived value, the client only formats them for display.
package model

// User is a tracker account.
type User struct {
	ID          int64     `json:"id" yaml:"id"`
	Passkey     string    `json:"passkey" yaml:"passkey"`
	Uploaded    int64     `json:"uploaded" yaml:"uploaded"`
	Downloaded  int64     `json:"downloaded" yaml:"downloaded"`
	BonusPoints float64   `json:"bonus_points" yaml:"bonus_points"`
	HnRWarnings int       `json:"hnr_warnings" yaml:"hnr_warnings"`
	CanLeech    bool      `json:"can_leech" yaml:"can_leech"`
	CreatedAt   Timestamp `json:"created_at" yaml:"created_at"`
}

// Torrent is a registered info-hash with its swarm counters and ratio rules.
type Torrent struct {
	ID                 int64     `json:"id" yaml:"id"`
	InfoHash           string    `json:"info_hash" yaml:"info_hash"`
	Seeders            int       `json:"seeders" yaml:"seeders"`
	Leechers           int       `json:"leechers" yaml:"leechers"`
	Completed          int       `json:"completed" yaml:"completed"`
	Freeleech          bool      `json:"freeleech" yaml:"freeleech"`
	UploadMultiplier   float64   `json:"upload_multiplier" yaml:"upload_multiplier"`
	DownloadMultiplier float64   `json:"download_multiplier" yaml:"download_multiplier"`
	CreatedAt          Timestamp `json:"created_at" yaml:"created_at"`
}

// WhitelistEntry admits BitTorrent clients whose peer id starts with Prefix.
type WhitelistEntry struct {
	ID        int64     `json:"id" yaml:"id"`
	Prefix    string    `json:"prefix" yaml:"prefix"`
	Name      string    `json:"name" yaml:"name"`
	CreatedAt Timestamp `json:"created_at" yaml:"created_at"`
}

// Ban blocks an IP address. A nil ExpiresAt means the ban is permanent.
type Ban struct {
	ID        int64      `json:"id" yaml:"id"`
	IP        string     `json:"ip" yaml:"ip"`
	Reason    string     `json:"reason" yaml:"reason"`
	ExpiresAt *Timestamp `json:"expires_at" yaml:"expires_at"`
	CreatedAt Timestamp  `json:"created_at" yaml:"created_at"`
}

// Permanent reports whether the ban never expires.
func (b Ban) Permanent() bool {
	return b.ExpiresAt == nil
}

// Snatch records a completed download.
type Snatch struct {
	ID            int64     `json:"id" yaml:"id"`
	UserID        int64     `json:"user_id" yaml:"user_id"`
	TorrentID     int64     `json:"torrent_id" yaml:"torrent_id"`
	CompletedAt   Timestamp `json:"completed_at" yaml:"completed_at"`
	SeedTime      int64     `json:"seedtime" yaml:"seedtime"`
	SeedTimeHours float64   `json:"seedtime_hours" yaml:"seedtime_hours"`
	HnR           bool      `json:"hnr" yaml:"hnr"`
}

// Swarm is a read-only snapshot of the peers exchanging one torrent.
type Swarm struct {
	InfoHash  string `json:"info_hash" yaml:"info_hash"`
	Seeders   int    `json:"seeders" yaml:"seeders"`
	Leechers  int    `json:"leechers" yaml:"leechers"`
	Completed int    `json:"completed" yaml:"completed"`
}

// Stats is the aggregate dashboard payload of GET /stats.
type Stats struct {
	Users              int64              `json:"users" yaml:"users"`
	Torrents           int64              `json:"torrents" yaml:"torrents"`
	Peers              int64              `json:"peers" yaml:"peers"`
	ActiveSwarms       int64              `json:"active_swarms" yaml:"active_swarms"`
	TotalSnatches      int64              `json:"total_snatches" yaml:"total_snatches"`
	HnRCount           int64              `json:"hnr_count" yaml:"hnr_count"`
	ActiveBans         int64              `json:"active_bans" yaml:"active_bans"`
	TotalUploaded      int64              `json:"total_uploaded" yaml:"total_uploaded"`
	TotalDownloaded    int64              `json:"total_downloaded" yaml:"total_downloaded"`
	WhitelistedClients int64              `json:"whitelisted_clients" yaml:"whitelisted_clients"`
	ETS                *TableSizes        `json:"ets,omitempty" yaml:"ets,omitempty"`
	RateLimiting       *RateLimitStats    `json:"rate_limiting,omitempty" yaml:"rate_limiting,omitempty"`
	Bonus              *BonusStats        `json:"bonus,omitempty" yaml:"bonus,omitempty"`
	Verification       *VerificationStats `json:"verification,omitempty" yaml:"verification,omitempty"`
}

// TableSizes reports the size of the tracker's in-memory lookup tables.
type TableSizes struct {
	Passkeys  int64 `json:"passkeys" yaml:"passkeys"`
	Whitelist int64 `json:"whitelist" yaml:"whitelist"`
	BannedIPs int64 `json:"banned_ips" yaml:"banned_ips"`
}

// RateLimitStats is the overview of GET /ratelimits.
type RateLimitStats struct {
	Enabled         bool              `json:"enabled" yaml:"enabled"`
	TotalIPsTracked int64             `json:"total_ips_tracked" yaml:"total_ips_tracked"`
	Limits          map[string]string `json:"limits" yaml:"limits"`
}

// RateBucket is one tracked counter against a named limit class.
type RateBucket struct {
	Count         int `json:"count" yaml:"count"`
	Limit         int `json:"limit" yaml:"limit"`
	WindowSeconds int `json:"window_seconds" yaml:"window_seconds"`
}

// IPRateLimit is the per-IP state of GET /ratelimits/{ip}, keyed by limit
// class (announce, scrape, admin_api).
type IPRateLimit struct {
	IP      string                `json:"ip" yaml:"ip"`
	Buckets map[string]RateBucket `json:"limits" yaml:"limits"`
}

// BonusStats describes the bonus point subsystem.
type BonusStats struct {
	Enabled         bool       `json:"enabled" yaml:"enabled"`
	BasePoints      float64    `json:"base_points" yaml:"base_points"`
	ConversionRate  int64      `json:"conversion_rate" yaml:"conversion_rate"`
	LastCalculation *Timestamp `json:"last_calculation" yaml:"last_calculation"`
}

// BonusBalance is a user's point balance.
type BonusBalance struct {
	UserID      int64   `json:"user_id" yaml:"user_id"`
	BonusPoints float64 `json:"bonus_points" yaml:"bonus_points"`
}

// Redemption is the result of converting points into upload credit.
type Redemption struct {
	PointsRedeemed        float64 `json:"points_redeemed" yaml:"points_redeemed"`
	UploadCredit          int64   `json:"upload_credit" yaml:"upload_credit"`
	UploadCreditFormatted string  `json:"upload_credit_formatted" yaml:"upload_credit_formatted"`
}

// VerificationStats describes the torrent verification cache.
type VerificationStats struct {
	Enabled       bool  `json:"enabled" yaml:"enabled"`
	CacheSize     int64 `json:"cache_size" yaml:"cache_size"`
	VerifiedCount int64 `json:"verified_count" yaml:"verified_count"`
	FailedCount   int64 `json:"failed_count" yaml:"failed_count"`
}
