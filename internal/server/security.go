package server

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RequestSizeLimitMiddleware limits request body size
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// DetectorConfig sets the per-IP thresholds of a SuspiciousActivityDetector
type DetectorConfig struct {
	Window          time.Duration
	RequestLimit    int
	FailedAuthAlert int
	Now             func() time.Time
}

// SuspiciousActivityDetector counts requests and rejected tokens per client
// IP in fixed windows. A click-heavy game means the request limit is high;
// it exists to stop scripted flooding, not fast players.
type SuspiciousActivityDetector struct {
	cfg DetectorConfig

	mu            sync.Mutex
	failedAuth    map[string]int
	requests      map[string]int
	windowStarted time.Time
}

// NewSuspiciousActivityDetector creates a detector, filling unset thresholds
// with defaults
func NewSuspiciousActivityDetector(cfg DetectorConfig) *SuspiciousActivityDetector {
	if cfg.Window <= 0 {
		cfg.Window = DefaultDetectorWindow
	}
	if cfg.RequestLimit <= 0 {
		cfg.RequestLimit = DefaultRequestLimit
	}
	if cfg.FailedAuthAlert <= 0 {
		cfg.FailedAuthAlert = DefaultFailedAuthAlertLimit
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &SuspiciousActivityDetector{
		cfg:           cfg,
		failedAuth:    make(map[string]int),
		requests:      make(map[string]int),
		windowStarted: cfg.Now(),
	}
}

// RecordFailedAuth counts a rejected token and alerts once the IP crosses the
// threshold
func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rollWindow()
	s.failedAuth[ip]++
	if s.failedAuth[ip] == s.cfg.FailedAuthAlert {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", s.failedAuth[ip])
	}
	return s.failedAuth[ip]
}

// RecordRequest counts a request and reports whether it is within the limit
func (s *SuspiciousActivityDetector) RecordRequest(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rollWindow()
	s.requests[ip]++
	if s.requests[ip] <= s.cfg.RequestLimit {
		return true
	}
	if s.requests[ip] == s.cfg.RequestLimit+1 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "window", s.cfg.Window)
	}
	return false
}

// rollWindow starts a new window once the current one has elapsed.
// Caller must hold the mutex.
func (s *SuspiciousActivityDetector) rollWindow() {
	now := s.cfg.Now()
	if now.Sub(s.windowStarted) < s.cfg.Window {
		return
	}
	s.requests = make(map[string]int)
	s.failedAuth = make(map[string]int)
	s.windowStarted = now
}

// RateLimitMiddleware rejects clients over the detector's request limit
func RateLimitMiddleware(trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !detector.RecordRequest(extractIP(r, trustedProxies)) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractIP gets the client IP address. X-Forwarded-For is only honoured when
// the direct peer is a trusted proxy, and then its rightmost hop is used.
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	for _, proxy := range trustedProxies {
		if proxy != remoteIP {
			continue
		}
		if forwarded := r.Header.Get(HeaderForwardedFor); forwarded != "" {
			hops := strings.Split(forwarded, ",")
			return strings.TrimSpace(hops[len(hops)-1])
		}
		break
	}

	return remoteIP
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(HeaderContentType, HeaderValueNoSniff)
			w.Header().Set(HeaderFrameOptions, HeaderValueDeny)
			w.Header().Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
			next.ServeHTTP(w, r)
		})
	}
}
