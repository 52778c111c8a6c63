package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"billbook/internal/core"
	"billbook/internal/log"

	"github.com/shopspring/decimal"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var req core.SearchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.backend.Search.Search(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleBills serves POST /bills.
func (s *Server) handleBills(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	in, err := decodeBillInput(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	b, err := s.backend.Bills.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/bills/"+b.ID)
	writeJSON(w, http.StatusCreated, b)
}

// handleBill serves GET, PUT and DELETE on /bills/{id}.
func (s *Server) handleBill(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete) {
		return
	}
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, r, core.NewValidationError("id", "id is required"))
		return
	}

	var (
		b   core.Bill
		err error
	)
	switch r.Method {
	case http.MethodGet:
		b, err = s.backend.Bills.Get(r.Context(), id)
	case http.MethodPut:
		var in core.BillInput
		if in, err = decodeBillInput(w, r); err == nil {
			b, err = s.backend.Bills.Update(r.Context(), id, in)
		}
	case http.MethodDelete:
		b, err = s.backend.Bills.Delete(r.Context(), id)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	cats, err := s.backend.Categories.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

// billBody mirrors core.BillInput but keeps amount raw so a malformed
// number is reported against the amount field.
type billBody struct {
	Type       string          `json:"type"`
	Time       string          `json:"time"`
	CategoryID *string         `json:"categoryId"`
	Amount     json.RawMessage `json:"amount"`
}

func decodeBillInput(w http.ResponseWriter, r *http.Request) (core.BillInput, error) {
	var body billBody
	if err := decodeJSON(w, r, &body); err != nil {
		return core.BillInput{}, err
	}
	in := core.BillInput{Type: body.Type, Time: body.Time, CategoryID: body.CategoryID}

	raw := bytes.TrimSpace(body.Amount)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return in, nil
	}
	var amount decimal.Decimal
	if err := amount.UnmarshalJSON(raw); err == nil {
		in.Amount = &amount
		return in, nil
	}

	// Report the bad amount together with any other field problems.
	_, err := in.Validate()
	var ve *core.ValidationError
	if !errors.As(err, &ve) {
		return core.BillInput{}, core.NewValidationError("amount", "amount must be a decimal number")
	}
	for i := range ve.Fields {
		if ve.Fields[i].Field == "amount" {
			ve.Fields[i].Message = "amount must be a decimal number"
		}
	}
	return core.BillInput{}, ve
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).Round(time.Second).String(),
	})
}

// handleReady pings the store with a short deadline.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	status, httpStatus := "ready", http.StatusOK
	checks := map[string]any{}

	if err := s.pingStore(r); err != nil {
		s.logger.WarnContext(r.Context(), "Readiness check failed",
			log.FieldComponent, log.ComponentStorage,
			log.FieldError, err)
		checks["store"] = fmt.Sprintf("failed: %v", err)
		status, httpStatus = "not_ready", http.StatusServiceUnavailable
	} else {
		checks["store"] = "ok"
	}

	if s.backend.Events != nil {
		checks["events"] = "enabled"
	} else {
		checks["events"] = "disabled"
	}
	checks["rate_limiter"] = map[string]any{
		"active_clients": s.rateLimiter.ActiveClients(),
	}

	writeJSON(w, httpStatus, map[string]any{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks":    checks,
	})
}

func (s *Server) pingStore(r *http.Request) error {
	if s.backend.Store == nil {
		return errors.New("store not configured")
	}
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	return s.backend.Store.Ping(ctx)
}

// handleMetrics writes request, cache, rate limit and security counters in
// the Prometheus text format.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	traceMetrics := s.traceMiddleware.GetMetrics()
	rateLimitMetrics := s.rateLimiter.GetMetrics()
	securityMetrics := s.securityDetector.GetMetrics()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	writeMetric(w, "http_requests_total", "counter", "Total number of HTTP requests", traceMetrics.TotalRequests)
	writeMetric(w, "http_requests_in_flight", "gauge", "Requests currently being served", traceMetrics.InFlight)
	writeMetric(w, "http_client_errors_total", "counter", "Responses with a 4xx status", traceMetrics.ClientErrors)
	writeMetric(w, "http_server_errors_total", "counter", "Responses with a 5xx status", traceMetrics.ServerErrors)
	writeMetric(w, "http_request_duration_avg_seconds", "gauge", "Mean request duration", traceMetrics.AverageResponseTime().Seconds())

	if s.backend.Categories != nil {
		stats := s.backend.Categories.Cache().Stats()
		writeMetric(w, "category_cache_hits_total", "counter", "Category cache hits", stats.Hits)
		writeMetric(w, "category_cache_misses_total", "counter", "Category cache misses", stats.Misses)
		writeMetric(w, "category_cache_entries", "gauge", "Category cache entries", stats.Size)
	}

	writeMetric(w, "rate_limit_hits_total", "counter", "Requests rejected by the rate limiter", rateLimitMetrics.TotalHits)
	writeMetric(w, "rate_limit_clients", "gauge", "Currently tracked rate limit clients", rateLimitMetrics.ClientCount)
	writeMetric(w, "suspicious_requests_total", "counter", "Requests matching probe patterns", securityMetrics.SuspiciousRequests)
	writeMetric(w, "invalid_forwarded_ip_total", "counter", "Unparsable forwarded client addresses", securityMetrics.InvalidIPAttempts)
	writeMetric(w, "uptime_seconds", "gauge", "Process uptime in seconds", int64(time.Since(s.startedAt).Seconds()))
}

func writeMetric(w http.ResponseWriter, name, kind, help string, value any) {
	fmt.Fprintf(w, "# HELP %s %s\n", name, help)
	fmt.Fprintf(w, "# TYPE %s %s\n", name, kind)
	fmt.Fprintf(w, "%s %v\n\n", name, value)
}
