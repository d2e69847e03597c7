// Package http serves the dashboard JSON API over the ledger store. All
// money amounts cross the wire twice: as a fixed two-decimal string for
// display and as raw paise for arithmetic on the client.
package http

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"bankdash/internal/cache"
	"bankdash/internal/core"
	"bankdash/internal/ledger"
	applog "bankdash/internal/log"
	"bankdash/internal/middleware/ratelimit"
	"bankdash/internal/middleware/security"
	"bankdash/internal/middleware/trace"
	"bankdash/internal/sheets"
)

// Server wires the ledger store and reconciler behind the JSON API. The
// optional writer and balance updater persist reconciled transactions back to
// the configured backend; both may be nil when the fixture backend is the
// source of truth.
type Server struct {
	http.Server
	logger     *applog.Logger
	store      *ledger.Store
	reconciler *ledger.Reconciler
	writer     sheets.TransactionAppender
	balances   sheets.BalanceUpdater

	rateLimiter  *ratelimit.Limiter
	detector     *security.Detector
	traceware    *trace.Middleware
	cacheManager *cache.Manager

	chartCache     *cache.TTLCache[[]core.PeriodBucket]
	dashboardCache *cache.TTLCache[dashboardView]

	appMetrics   *appMetrics
	shutdownOnce sync.Once
}

type appMetrics struct {
	startedAt         time.Time
	transfersRecorded int64
	cacheHits         int64
	cacheMisses       int64
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, store *ledger.Store, reconciler *ledger.Reconciler, writer sheets.TransactionAppender, balances sheets.BalanceUpdater) *Server {
	mux := http.NewServeMux()
	detector := security.NewDetector()

	s := &Server{
		Server:     http.Server{Addr: addr},
		logger:     applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentHTTP),
		store:      store,
		reconciler: reconciler,
		writer:     writer,
		balances:   balances,

		rateLimiter:  ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		detector:     detector,
		traceware:    trace.NewMiddleware(detector.ExtractClientIP),
		cacheManager: cache.NewManager(),

		chartCache:     cache.NewTTLCache[[]core.PeriodBucket](32, 5*time.Minute),
		dashboardCache: cache.NewTTLCache[dashboardView](8, 30*time.Second),

		appMetrics: &appMetrics{startedAt: time.Now()},
	}

	s.cacheManager.Register(s.chartCache)
	s.cacheManager.Register(s.dashboardCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/metrics", s.handleMetrics)

	mux.HandleFunc("/api/accounts", s.handleAccounts)
	mux.HandleFunc("/api/accounts/", s.handleAccountByNumber)
	mux.HandleFunc("/api/transactions", s.handleTransactions)
	mux.HandleFunc("/api/search", s.handleSearch)
	mux.HandleFunc("/api/transfer", s.handleTransfer)
	mux.HandleFunc("/api/chart", s.handleChart)
	mux.HandleFunc("/api/dashboard", s.handleDashboard)

	mux.HandleFunc("/api/bills", s.handleBills)
	mux.HandleFunc("/api/investments", s.handleInvestments)
	mux.HandleFunc("/api/cards", s.handleCards)
	mux.HandleFunc("/api/notifications", s.handleNotifications)
	mux.HandleFunc("/api/notifications/", s.handleNotificationByID)

	mux.HandleFunc("/api/export/transactions.csv", s.handleExportCSV)
	mux.HandleFunc("/api/export/backup.json", s.handleExportJSON)

	s.Handler = s.middleware(mux)
	return s
}

// middleware builds the request chain: security headers, trace logging,
// context logger enrichment, suspicious request screening, then rate
// limiting on mutating methods.
func (s *Server) middleware(next http.Handler) http.Handler {
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	limit := s.rateLimiter.Middleware(s.detector.ExtractClientIP, func(r *http.Request) bool {
		return r.Method == http.MethodPost || r.Method == http.MethodDelete
	})
	requestLogger := applog.RequestIDMiddleware(func(r *http.Request) string {
		return trace.GetRequestID(r.Context())
	})

	handler := limit(next)
	handler = s.screenSuspicious(handler)
	handler = requestLogger(handler)
	handler = applog.Middleware(s.logger)(handler)
	handler = s.traceware.Middleware(handler)
	handler = headers.Middleware(handler)
	return handler
}

func (s *Server) screenSuspicious(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.detector.DetectSuspiciousRequest(r) {
			s.logger.WarnContext(r.Context(), "Suspicious request blocked",
				applog.FieldPath, r.URL.Path,
				applog.FieldMethod, r.Method,
				applog.FieldClientIP, s.detector.ExtractClientIP(r))
			NotFoundError("not found").Write(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Shutdown stops the HTTP listener, the rate limiter and the cache cleanup
// loop. Safe to call more than once.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		s.cacheManager.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// invalidateDerived drops cached chart buckets and dashboard summaries after
// a write changes the transaction set.
func (s *Server) invalidateDerived() {
	for _, period := range []string{chartPeriodWeek, chartPeriodMonth, chartPeriodYear} {
		s.chartCache.Delete(period)
	}
	s.dashboardCache.Delete(dashboardCacheKey)
}

func (s *Server) recordCacheHit(hit bool) {
	if hit {
		atomic.AddInt64(&s.appMetrics.cacheHits, 1)
	} else {
		atomic.AddInt64(&s.appMetrics.cacheMisses, 1)
	}
}
