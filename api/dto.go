/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the unitoftime and ledger packages from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Units:
    UnitDTO (sortable string plus components)

  Granularity:
    GranularityComparisonDTO

  Ledger:
    RecordEntryRequest, RecordBatchRequest, EntryDTO,
    SummaryDTO, BucketDTO, SeriesDTO

VALIDATION:
  Request bodies carry validator struct tags and are checked with
  go-playground/validator before they reach the ledger.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/unit.go: UnitJSON type
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/accounting-time/factory"
	"github.com/warp/accounting-time/ledger"
	"github.com/warp/accounting-time/unitoftime"
)

// =============================================================================
// UNITS
// =============================================================================

// UnitDTO represents a unit of time in API responses.
type UnitDTO struct {
	Key         string           `json:"key"`
	Kind        string           `json:"kind"`
	Family      string           `json:"family"`
	Granularity string           `json:"granularity"`
	Components  factory.UnitJSON `json:"components"`
}

// GranularityComparisonDTO answers the four granularity predicates for a
// pair. Compare is negative when A is less granular than B.
type GranularityComparisonDTO struct {
	A                string `json:"a"`
	B                string `json:"b"`
	Compare          int    `json:"compare"`
	LessGranular     bool   `json:"less_granular"`
	AsOrLessGranular bool   `json:"as_or_less_granular"`
	MoreGranular     bool   `json:"more_granular"`
	AsOrMoreGranular bool   `json:"as_or_more_granular"`
}

// =============================================================================
// LEDGER
// =============================================================================

// RecordEntryRequest is the request to record one amount against a unit.
// The unit is given either as a sortable string or as components.
type RecordEntryRequest struct {
	Unit           string            `json:"unit,omitempty" validate:"required_without=Components"`
	Components     *factory.UnitJSON `json:"components,omitempty" validate:"omitempty"`
	Amount         decimal.Decimal   `json:"amount"`
	Memo           string            `json:"memo,omitempty" validate:"max=500"`
	IdempotencyKey string            `json:"idempotency_key,omitempty" validate:"max=200"`
}

// RecordBatchRequest records several entries atomically.
type RecordBatchRequest struct {
	Entries []RecordEntryRequest `json:"entries" validate:"required,min=1,max=1000,dive"`
}

// EntryDTO represents a recorded entry in API responses.
type EntryDTO struct {
	ID             string `json:"id"`
	Series         string `json:"series"`
	Unit           string `json:"unit"`
	Kind           string `json:"kind"`
	Amount         string `json:"amount"`
	Memo           string `json:"memo,omitempty"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
	RecordedAt     string `json:"recorded_at"`
}

// SummaryDTO is the total of a series over a reporting period.
type SummaryDTO struct {
	Series  string `json:"series"`
	Period  string `json:"period"`
	Total   string `json:"total"`
	Entries int    `json:"entries"`
}

// BucketDTO is one row of a roll-up.
type BucketDTO struct {
	Unit    string `json:"unit"`
	Total   string `json:"total"`
	Entries int    `json:"entries"`
}

// RollupDTO is a series rolled up to one granularity.
type RollupDTO struct {
	Series      string      `json:"series"`
	Granularity string      `json:"granularity"`
	Buckets     []BucketDTO `json:"buckets"`
}

// SeriesDTO describes a series in the catalog.
type SeriesDTO struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Family      string `json:"family"`
	Granularity string `json:"granularity"`
	Entries     int    `json:"entries"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toUnitDTO(f *factory.UnitFactory, u unitoftime.UnitOfTime) UnitDTO {
	return UnitDTO{
		Key:         u.SortableString(),
		Kind:        u.Kind().String(),
		Family:      u.Family().String(),
		Granularity: u.Granularity().String(),
		Components:  f.ToJSON(u),
	}
}

func toEntryDTO(e ledger.Entry) EntryDTO {
	return EntryDTO{
		ID:             string(e.ID),
		Series:         string(e.Series),
		Unit:           e.Key(),
		Kind:           e.Kind().String(),
		Amount:         e.Amount.String(),
		Memo:           e.Memo,
		IdempotencyKey: e.IdempotencyKey,
		RecordedAt:     e.RecordedAt.Format(time.RFC3339),
	}
}

func toEntryDTOs(entries []ledger.Entry) []EntryDTO {
	dtos := make([]EntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = toEntryDTO(e)
	}
	return dtos
}

func toSeriesDTO(s ledger.SeriesInfo) SeriesDTO {
	return SeriesDTO{
		ID:          string(s.ID),
		Kind:        s.Kind.String(),
		Family:      s.Kind.Family().String(),
		Granularity: s.Kind.Granularity().String(),
		Entries:     s.Entries,
	}
}
