/*
handlers.go - HTTP API handlers for the accounting-time service

PURPOSE:
  Exposes the unit-of-time codec, the granularity comparator and the
  ledger via REST API. Handles HTTP request/response, JSON serialization,
  and delegates to the unitoftime and ledger packages.

ENDPOINTS:
  Units:
    GET    /api/units/{key}?as=<target>        Decode a sortable string
    POST   /api/units                          Build and encode from components

  Granularity:
    GET    /api/granularity/compare?a=&b=      The four precision predicates

  Series:
    GET    /api/series                         Series catalog
    POST   /api/series/{series}/entries        Record an entry
    POST   /api/series/{series}/entries/batch  Record entries atomically
    GET    /api/series/{series}/entries        Entries, optionally ?period= or ?from=&to=
    GET    /api/series/{series}/balance        Total over ?period=<start>,<end>
    GET    /api/series/{series}/rollup         Buckets at ?granularity=

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input (validator struct tags for bodies)
  3. Call the codec or the ledger
  4. Serialize response
  5. Map errors to status codes

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid argument, malformed sortable string, failed validation
  - 409: Duplicate idempotency key, series holds another kind
  - 422: Well-formed unit of the wrong type for ?as=
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/warp/accounting-time/factory"
	"github.com/warp/accounting-time/ledger"
	"github.com/warp/accounting-time/unitoftime"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Ledger      *ledger.Ledger
	UnitFactory *factory.UnitFactory

	// DefaultRollup is used when a roll-up request names no granularity.
	DefaultRollup unitoftime.Granularity

	// Health is checked by /healthz when set.
	Health Pinger

	logger    *slog.Logger
	validator *validator.Validate
}

// NewHandler creates a new handler over the given ledger.
func NewHandler(l *ledger.Ledger, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		Ledger:        l,
		UnitFactory:   factory.NewUnitFactory(),
		DefaultRollup: unitoftime.GranularityMonth,
		logger:        logger,
		validator:     validator.New(),
	}
}

// Healthz reports liveness, and store reachability when a Pinger is set.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if h.Health != nil {
		if err := h.Health.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "Store unreachable", err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// UNIT HANDLERS
// =============================================================================

// DecodeUnit decodes the sortable string in the path. The optional "as"
// query parameter names the type the caller expects, e.g. CalendarDay.
func (h *Handler) DecodeUnit(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	target := unitoftime.TargetUnitOfTime
	if as := r.URL.Query().Get("as"); as != "" {
		t, err := unitoftime.ParseTarget(as)
		if err != nil {
			h.writeDomainError(w, r, "Invalid target type", err)
			return
		}
		target = t
	}

	u, err := unitoftime.DecodeAs(key, target)
	if err != nil {
		h.writeDomainError(w, r, "Failed to decode unit", err)
		return
	}

	writeJSON(w, http.StatusOK, toUnitDTO(h.UnitFactory, u))
}

// EncodeUnit builds a unit from its components and returns its encoding.
func (h *Handler) EncodeUnit(w http.ResponseWriter, r *http.Request) {
	var req factory.UnitJSON
	if !h.decodeBody(w, r, &req) {
		return
	}

	u, err := h.UnitFactory.FromJSON(req)
	if err != nil {
		h.writeDomainError(w, r, "Invalid unit", err)
		return
	}

	writeJSON(w, http.StatusOK, toUnitDTO(h.UnitFactory, u))
}

// CompareGranularity answers the four precision predicates for a and b.
func (h *Handler) CompareGranularity(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	a, err := unitoftime.ParseGranularity(q.Get("a"))
	if err != nil {
		h.writeDomainError(w, r, "Invalid granularity a", err)
		return
	}
	b, err := unitoftime.ParseGranularity(q.Get("b"))
	if err != nil {
		h.writeDomainError(w, r, "Invalid granularity b", err)
		return
	}

	cmp, err := unitoftime.CompareGranularity(a, b)
	if err != nil {
		h.writeDomainError(w, r, "Failed to compare granularities", err)
		return
	}

	writeJSON(w, http.StatusOK, GranularityComparisonDTO{
		A:                a.String(),
		B:                b.String(),
		Compare:          cmp,
		LessGranular:     cmp < 0,
		AsOrLessGranular: cmp <= 0,
		MoreGranular:     cmp > 0,
		AsOrMoreGranular: cmp >= 0,
	})
}

// =============================================================================
// SERIES HANDLERS
// =============================================================================

// ListSeries returns every series that holds at least one entry.
func (h *Handler) ListSeries(w http.ResponseWriter, r *http.Request) {
	series, err := h.Ledger.Series(r.Context())
	if err != nil {
		h.writeDomainError(w, r, "Failed to list series", err)
		return
	}

	dtos := make([]SeriesDTO, len(series))
	for i, s := range series {
		dtos[i] = toSeriesDTO(s)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// RecordEntry records one amount against a unit of time.
func (h *Handler) RecordEntry(w http.ResponseWriter, r *http.Request) {
	series := ledger.SeriesID(chi.URLParam(r, "series"))

	var req RecordEntryRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	e, err := h.toEntry(series, req)
	if err != nil {
		h.writeDomainError(w, r, "Invalid entry", err)
		return
	}

	recorded, err := h.Ledger.Record(r.Context(), e)
	if err != nil {
		h.writeDomainError(w, r, "Failed to record entry", err)
		return
	}

	h.logger.InfoContext(r.Context(), "entry recorded",
		slog.String("series", string(recorded.Series)),
		slog.String("unit", recorded.Key()),
		slog.String("amount", recorded.Amount.String()),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	writeJSON(w, http.StatusCreated, toEntryDTO(recorded))
}

// RecordBatch records several entries; either all are kept or none.
func (h *Handler) RecordBatch(w http.ResponseWriter, r *http.Request) {
	series := ledger.SeriesID(chi.URLParam(r, "series"))

	var req RecordBatchRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	entries := make([]ledger.Entry, len(req.Entries))
	for i, er := range req.Entries {
		e, err := h.toEntry(series, er)
		if err != nil {
			h.writeDomainError(w, r, fmt.Sprintf("Invalid entry %d", i), err)
			return
		}
		entries[i] = e
	}

	recorded, err := h.Ledger.RecordBatch(r.Context(), entries)
	if err != nil {
		h.writeDomainError(w, r, "Failed to record entries", err)
		return
	}

	h.logger.InfoContext(r.Context(), "entries recorded",
		slog.String("series", string(series)),
		slog.Int("count", len(recorded)),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	writeJSON(w, http.StatusCreated, toEntryDTOs(recorded))
}

// ListEntries returns a series' entries in chronological order. A period
// (or from/to pair) restricts the result.
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	series := ledger.SeriesID(chi.URLParam(r, "series"))

	period, ok, err := periodFromQuery(r)
	if err != nil {
		h.writeDomainError(w, r, "Invalid period", err)
		return
	}

	var entries []ledger.Entry
	if ok {
		entries, err = h.Ledger.EntriesIn(r.Context(), series, period)
	} else {
		entries, err = h.Ledger.Entries(r.Context(), series)
	}
	if err != nil {
		h.writeDomainError(w, r, "Failed to get entries", err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryDTOs(entries))
}

// GetBalance totals a series over a reporting period.
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	series := ledger.SeriesID(chi.URLParam(r, "series"))

	period, ok, err := periodFromQuery(r)
	if err != nil {
		h.writeDomainError(w, r, "Invalid period", err)
		return
	}
	if !ok {
		writeError(w, http.StatusBadRequest, "period is required", nil)
		return
	}

	summary, err := h.Ledger.Balance(r.Context(), series, period)
	if err != nil {
		h.writeDomainError(w, r, "Failed to compute balance", err)
		return
	}

	writeJSON(w, http.StatusOK, SummaryDTO{
		Series:  string(summary.Series),
		Period:  summary.Period.SortableString(),
		Total:   summary.Total.String(),
		Entries: summary.Entries,
	})
}

// GetRollup totals a series per unit of the requested granularity.
func (h *Handler) GetRollup(w http.ResponseWriter, r *http.Request) {
	series := ledger.SeriesID(chi.URLParam(r, "series"))

	g := h.DefaultRollup
	if s := r.URL.Query().Get("granularity"); s != "" {
		parsed, err := unitoftime.ParseGranularity(s)
		if err != nil {
			h.writeDomainError(w, r, "Invalid granularity", err)
			return
		}
		g = parsed
	}

	buckets, err := h.Ledger.Rollup(r.Context(), series, g)
	if err != nil {
		h.writeDomainError(w, r, "Failed to roll up series", err)
		return
	}

	dtos := make([]BucketDTO, len(buckets))
	for i, b := range buckets {
		dtos[i] = BucketDTO{
			Unit:    b.Unit.SortableString(),
			Total:   b.Total.String(),
			Entries: b.Entries,
		}
	}
	writeJSON(w, http.StatusOK, RollupDTO{
		Series:      string(series),
		Granularity: g.String(),
		Buckets:     dtos,
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) toEntry(series ledger.SeriesID, req RecordEntryRequest) (ledger.Entry, error) {
	var (
		u   unitoftime.UnitOfTime
		err error
	)
	if req.Components != nil {
		u, err = h.UnitFactory.FromJSON(*req.Components)
	} else {
		u, err = unitoftime.DecodeAs(req.Unit, unitoftime.TargetUnitOfTime)
	}
	if err != nil {
		return ledger.Entry{}, err
	}
	if req.Components != nil && req.Unit != "" && req.Unit != u.SortableString() {
		return ledger.Entry{}, fmt.Errorf("%w: unit %q disagrees with components %q",
			unitoftime.ErrInvalidArgument, req.Unit, u.SortableString())
	}

	return ledger.Entry{
		Series:         series,
		Unit:           u,
		Amount:         req.Amount,
		Memo:           req.Memo,
		IdempotencyKey: req.IdempotencyKey,
	}, nil
}

// periodFromQuery reads ?period=<start>,<end>, or ?from= and ?to= where a
// missing side is open. ok is false when none is given.
func periodFromQuery(r *http.Request) (period unitoftime.ReportingPeriod, ok bool, err error) {
	q := r.URL.Query()

	if s := q.Get("period"); s != "" {
		period, err = unitoftime.ParseReportingPeriod(s)
		return period, err == nil, err
	}

	from, to := q.Get("from"), q.Get("to")
	if from == "" && to == "" {
		return period, false, nil
	}

	var start, end unitoftime.UnitOfTime
	if from != "" {
		if start, err = unitoftime.DecodeAs(from, unitoftime.TargetUnitOfTime); err != nil {
			return period, false, fmt.Errorf("from: %w", err)
		}
	}
	if to != "" {
		if end, err = unitoftime.DecodeAs(to, unitoftime.TargetUnitOfTime); err != nil {
			return period, false, fmt.Errorf("to: %w", err)
		}
	}
	if start == nil {
		if start, err = unitoftime.Unbounded(end.Family()); err != nil {
			return period, false, err
		}
	}
	if end == nil {
		if end, err = unitoftime.Unbounded(start.Family()); err != nil {
			return period, false, err
		}
	}

	period, err = unitoftime.NewReportingPeriod(start, end)
	return period, err == nil, err
}

// decodeBody decodes and validates a JSON body, writing a 400 on failure.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	if err := h.validator.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			details := make(map[string]string, len(fieldErrs))
			for _, fe := range fieldErrs {
				details[fe.Namespace()] = fe.Tag()
			}
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:   "Validation failed",
				Code:    "validation_failed",
				Details: details,
			})
			return false
		}
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	return true
}

// statusFor maps an error from unitoftime or ledger to an HTTP status and
// a short machine-readable code.
func statusFor(err error) (int, string) {
	switch {
	case ledger.IsConflict(err):
		return http.StatusConflict, "conflict"
	case errors.Is(err, unitoftime.ErrTypeMismatch):
		return http.StatusUnprocessableEntity, "type_mismatch"
	case errors.Is(err, unitoftime.ErrMalformed):
		return http.StatusBadRequest, "malformed"
	case ledger.IsClientError(err):
		return http.StatusBadRequest, "invalid_argument"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, message string, err error) {
	status, code := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), message,
			slog.Any("error", err),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
		writeJSON(w, status, ErrorResponse{Error: message, Code: code})
		return
	}
	writeJSON(w, status, ErrorResponse{Error: message, Code: code, Details: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
