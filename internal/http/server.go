package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"taktziv/internal/cache"
	"taktziv/internal/log"
	"taktziv/internal/middleware/ratelimit"
	"taktziv/internal/middleware/security"
	"taktziv/internal/middleware/trace"
	"taktziv/internal/services"
	"taktziv/internal/storage"
)

// Server exposes the dashboard JSON API. It owns the middleware chain and
// the overview cache; domain behavior lives in the services it wraps.
type Server struct {
	http.Server

	repo      *storage.Repository
	ledger    *services.LedgerService
	snapshots *services.SnapshotService
	settings  *services.SettingsService

	logger   *log.Logger
	limiter  *ratelimit.Limiter
	detector *security.Detector
	tracer   *trace.Middleware

	overviewCache *cache.LRUCache[services.Overview]
	cacheManager  *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// server.
func NewServer(addr string, repo *storage.Repository, ledger *services.LedgerService, snapshots *services.SnapshotService, settings *services.SettingsService) *Server {
	s := &Server{
		repo:      repo,
		ledger:    ledger,
		snapshots: snapshots,
		settings:  settings,

		logger:   log.New(log.Config{Component: log.ComponentHTTP}),
		limiter:  ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		detector: security.NewDetector(),

		overviewCache: cache.NewLRUCache[services.Overview](32, 30*time.Second),
		cacheManager:  cache.NewManager(),
	}
	s.tracer = trace.NewMiddleware(s.detector.ExtractClientIP, log.NewStructuredLogger(s.logger))
	s.cacheManager.Register(s.overviewCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	mux.HandleFunc("GET /funds", s.handleListFunds)
	mux.HandleFunc("POST /funds", s.handleCreateFund)
	mux.HandleFunc("PUT /funds/{id}", s.handleUpdateFund)
	mux.HandleFunc("DELETE /funds/{id}", s.handleDeleteFund)
	mux.HandleFunc("GET /funds/overview", s.handleFundsOverview)

	mux.HandleFunc("GET /cash-envelope-transactions", s.handleListTransactions)
	mux.HandleFunc("POST /cash-envelope-transactions", s.handleCreateTransaction)
	mux.HandleFunc("PUT /cash-envelope-transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /cash-envelope-transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("GET /snapshots", s.handleListSnapshots)
	mux.HandleFunc("POST /snapshots", s.handleCreateSnapshot)
	mux.HandleFunc("DELETE /snapshots/{id}", s.handleDeleteSnapshot)

	mux.HandleFunc("GET /debts", s.handleListDebts)
	mux.HandleFunc("POST /debts", s.handleCreateDebt)
	mux.HandleFunc("PATCH /debts/{id}", s.handleEditDebt)
	mux.HandleFunc("DELETE /debts/{id}", s.handleDeleteDebt)

	mux.HandleFunc("GET /tasks", s.handleListTasks)
	mux.HandleFunc("POST /tasks", s.handleCreateTask)
	mux.HandleFunc("PATCH /tasks/{id}", s.handleUpdateTask)
	mux.HandleFunc("DELETE /tasks/{id}", s.handleDeleteTask)

	mux.HandleFunc("GET /budget-years", s.handleListBudgetYears)
	mux.HandleFunc("POST /budget-years", s.handleCreateBudgetYear)
	mux.HandleFunc("POST /budget-years/{id}/activate", s.handleActivateBudgetYear)
	mux.HandleFunc("DELETE /budget-years/{id}", s.handleDeleteBudgetYear)

	mux.HandleFunc("GET /categories", s.handleListCategories)
	mux.HandleFunc("POST /categories", s.handleCreateCategory)
	mux.HandleFunc("DELETE /categories/{id}", s.handleDeleteCategory)

	mux.HandleFunc("GET /asset-types", s.handleListAssetTypes)
	mux.HandleFunc("POST /asset-types", s.handleCreateAssetType)
	mux.HandleFunc("PUT /asset-types/{id}", s.handleUpdateAssetType)
	mux.HandleFunc("DELETE /asset-types/{id}", s.handleDeleteAssetType)

	mux.HandleFunc("GET /settings", s.handleGetSettings)
	mux.HandleFunc("PUT /settings", s.handleUpdateSettings)
	mux.HandleFunc("PUT /settings/{key}", s.handleUpdateSettingKey)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.buildMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// buildMiddleware assembles the chain: security headers, suspicious-request
// detection, context logger, tracing, then write rate limiting.
func (s *Server) buildMiddleware(mux http.Handler) http.Handler {
	handler := s.limiter.Middleware(s.detector.ExtractClientIP)(mux)
	handler = s.tracer.Middleware(handler)
	handler = log.Middleware(s.logger)(handler)
	handler = s.withDetection(handler)
	handler = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(handler)
	return handler
}

// withDetection flags probe-looking requests. Detection is log-only.
func (s *Server) withDetection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.detector.DetectSuspiciousRequest(r) {
			s.logger.WarnContext(r.Context(), "Suspicious request detected",
				"method", r.Method,
				"path", r.URL.Path,
				"client_ip", s.detector.ExtractClientIP(r))
		}
		next.ServeHTTP(w, r)
	})
}

// Shutdown stops the middleware housekeeping goroutines and the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		s.cacheManager.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.Ping(r.Context()); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Readiness check failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// handleMetrics reports internal counters for ops tooling.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	m := s.tracer.GetMetrics()
	respondJSON(w, http.StatusOK, map[string]any{
		"total_requests":     m.TotalRequests,
		"last_duration_ms":   m.LastDurationMs,
		"rate_limit_hits":    s.limiter.Hits(),
		"rate_limit_clients": s.limiter.ActiveClients(),
		"overview_cache":     s.overviewCache.Size(),
	})
}
