package goSSO

import "sync/atomic"

// MetricID indexes one engine counter.
type MetricID uint16

const (
	// MetricLicenseGranted counts successful account token issuances.
	MetricLicenseGranted MetricID = iota
	// MetricLicenseDenied counts rejected license registrations.
	MetricLicenseDenied
	// MetricLoginSuccess counts successful SSO logins.
	MetricLoginSuccess
	// MetricLoginFailure counts denied SSO logins (any 4xx-class cause).
	MetricLoginFailure
	// MetricLoginRateLimited counts logins dropped by the rate limiter.
	MetricLoginRateLimited
	// MetricKeepAlive counts successful TTL refreshes.
	MetricKeepAlive
	// MetricSessionValidated counts sessions accepted by ValidateSession.
	MetricSessionValidated
	// MetricSessionDenied counts sessions rejected as invalid or mismatched.
	MetricSessionDenied
	// MetricSessionCorrupted counts unparsable stored session values.
	MetricSessionCorrupted
	// MetricUserTokenIssued counts user credential tokens minted.
	MetricUserTokenIssued
	// MetricUserTokenValidated counts user token validations that passed.
	MetricUserTokenValidated
	// MetricUserTokenDenied counts user token validations that failed.
	MetricUserTokenDenied
	// MetricCacheWriteDropped counts best-effort cache writes that failed
	// after a successful durable write.
	MetricCacheWriteDropped
	// MetricCleanupDeleted counts durable records removed by the expiration pipeline.
	MetricCleanupDeleted
	// MetricCleanupFailed counts durable deletes that errored (logged, not retried).
	MetricCleanupFailed

	metricCount
)

// Metrics is a set of lock-free counters. A disabled Metrics makes Inc a
// no-op so the hot path pays a single branch.
type Metrics struct {
	enabled  bool
	counters [metricCount]atomic.Int64
}

// NewMetrics returns a counter set honoring cfg.Enabled.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

// Inc adds one to the counter.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled {
		return
	}
	m.counters[id].Add(1)
}

// Get returns the current value of one counter.
func (m *Metrics) Get(id MetricID) int64 {
	if m == nil {
		return 0
	}
	return m.counters[id].Load()
}

// MetricsSnapshot is a point-in-time copy of every engine counter.
type MetricsSnapshot struct {
	LicenseGranted     int64
	LicenseDenied      int64
	LoginSuccess       int64
	LoginFailure       int64
	LoginRateLimited   int64
	KeepAlive          int64
	SessionValidated   int64
	SessionDenied      int64
	SessionCorrupted   int64
	UserTokenIssued    int64
	UserTokenValidated int64
	UserTokenDenied    int64
	CacheWriteDropped  int64
	CleanupDeleted     int64
	CleanupFailed      int64
}

// Snapshot copies every counter. Counters advance concurrently, so the
// snapshot is consistent per counter, not across counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		LicenseGranted:     m.Get(MetricLicenseGranted),
		LicenseDenied:      m.Get(MetricLicenseDenied),
		LoginSuccess:       m.Get(MetricLoginSuccess),
		LoginFailure:       m.Get(MetricLoginFailure),
		LoginRateLimited:   m.Get(MetricLoginRateLimited),
		KeepAlive:          m.Get(MetricKeepAlive),
		SessionValidated:   m.Get(MetricSessionValidated),
		SessionDenied:      m.Get(MetricSessionDenied),
		SessionCorrupted:   m.Get(MetricSessionCorrupted),
		UserTokenIssued:    m.Get(MetricUserTokenIssued),
		UserTokenValidated: m.Get(MetricUserTokenValidated),
		UserTokenDenied:    m.Get(MetricUserTokenDenied),
		CacheWriteDropped:  m.Get(MetricCacheWriteDropped),
		CleanupDeleted:     m.Get(MetricCleanupDeleted),
		CleanupFailed:      m.Get(MetricCleanupFailed),
	}
}
