package unitoftime

import (
	"database/sql/driver"
	"fmt"
)

// =============================================================================
// UNIT - Any unit of time through encoding/json and database/sql
// =============================================================================

// Unit carries a unit of any kind through text and SQL boundaries using
// its sortable string. A NULL column or a nil unit is ErrNullInput.
type Unit struct {
	UnitOfTime
}

func (u Unit) MarshalText() ([]byte, error) {
	if u.UnitOfTime == nil {
		return nil, ErrNullInput
	}
	return []byte(u.SortableString()), nil
}

func (u *Unit) UnmarshalText(text []byte) error {
	decoded, err := DecodeAs(string(text), TargetUnitOfTime)
	if err != nil {
		return err
	}
	u.UnitOfTime = decoded
	return nil
}

// Scan implements sql.Scanner.
func (u *Unit) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		return ErrNullInput
	case string:
		return u.UnmarshalText([]byte(v))
	case []byte:
		return u.UnmarshalText(v)
	default:
		return fmt.Errorf("%w: cannot scan %T into a unit of time", ErrInvalidArgument, src)
	}
}

// Value implements driver.Valuer.
func (u Unit) Value() (driver.Value, error) {
	if u.UnitOfTime == nil {
		return nil, ErrNullInput
	}
	return u.SortableString(), nil
}

// =============================================================================
// CONCRETE TEXT FORMS - Decoding into exactly one kind
// =============================================================================

func unmarshalInto[T UnitOfTime](dst *T, text []byte) error {
	v, err := Decode[T](string(text))
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func (d CalendarDay) MarshalText() ([]byte, error)        { return []byte(d.SortableString()), nil }
func (d *CalendarDay) UnmarshalText(text []byte) error    { return unmarshalInto(d, text) }
func (m CalendarMonth) MarshalText() ([]byte, error)      { return []byte(m.SortableString()), nil }
func (m *CalendarMonth) UnmarshalText(text []byte) error  { return unmarshalInto(m, text) }
func (q CalendarQuarter) MarshalText() ([]byte, error)    { return []byte(q.SortableString()), nil }
func (q *CalendarQuarter) UnmarshalText(text []byte) error { return unmarshalInto(q, text) }
func (y CalendarYear) MarshalText() ([]byte, error)       { return []byte(y.SortableString()), nil }
func (y *CalendarYear) UnmarshalText(text []byte) error   { return unmarshalInto(y, text) }
func (u CalendarUnbounded) MarshalText() ([]byte, error)  { return []byte(u.SortableString()), nil }
func (u *CalendarUnbounded) UnmarshalText(text []byte) error {
	return unmarshalInto(u, text)
}

func (m FiscalMonth) MarshalText() ([]byte, error)       { return []byte(m.SortableString()), nil }
func (m *FiscalMonth) UnmarshalText(text []byte) error   { return unmarshalInto(m, text) }
func (q FiscalQuarter) MarshalText() ([]byte, error)     { return []byte(q.SortableString()), nil }
func (q *FiscalQuarter) UnmarshalText(text []byte) error { return unmarshalInto(q, text) }
func (y FiscalYear) MarshalText() ([]byte, error)        { return []byte(y.SortableString()), nil }
func (y *FiscalYear) UnmarshalText(text []byte) error    { return unmarshalInto(y, text) }
func (u FiscalUnbounded) MarshalText() ([]byte, error)   { return []byte(u.SortableString()), nil }
func (u *FiscalUnbounded) UnmarshalText(text []byte) error {
	return unmarshalInto(u, text)
}

func (m GenericMonth) MarshalText() ([]byte, error)       { return []byte(m.SortableString()), nil }
func (m *GenericMonth) UnmarshalText(text []byte) error   { return unmarshalInto(m, text) }
func (q GenericQuarter) MarshalText() ([]byte, error)     { return []byte(q.SortableString()), nil }
func (q *GenericQuarter) UnmarshalText(text []byte) error { return unmarshalInto(q, text) }
func (y GenericYear) MarshalText() ([]byte, error)        { return []byte(y.SortableString()), nil }
func (y *GenericYear) UnmarshalText(text []byte) error    { return unmarshalInto(y, text) }
func (u GenericUnbounded) MarshalText() ([]byte, error)   { return []byte(u.SortableString()), nil }
func (u *GenericUnbounded) UnmarshalText(text []byte) error {
	return unmarshalInto(u, text)
}
