package unitoftime

// =============================================================================
// CHRONOLOGICAL ORDER - Within one kind
// =============================================================================

// Compare orders two units of the same kind chronologically, returning -1,
// 0 or +1. Unbounded units of one family are equal. Units of different
// kinds are not comparable.
func Compare(a, b UnitOfTime) (int, error) {
	if a == nil || b == nil {
		return 0, ErrNullInput
	}
	if a.Kind() != b.Kind() {
		return 0, ErrKindMismatch
	}
	oa, ob := a.ordinal(), b.ordinal()
	switch {
	case oa < ob:
		return -1, nil
	case oa > ob:
		return 1, nil
	default:
		return 0, nil
	}
}

// Before reports whether a is strictly earlier than b. Units that cannot
// be compared are never before each other.
func Before(a, b UnitOfTime) bool {
	c, err := Compare(a, b)
	return err == nil && c < 0
}

// =============================================================================
// COARSENING - The enclosing unit at a coarser granularity
// =============================================================================

// Coarsen returns the unit of granularity g and the same family that
// contains u. Asking for a finer granularity than u's fails with
// ErrGranularityMismatch; asking for GranularityUnbounded yields the
// family's unbounded unit.
func Coarsen(u UnitOfTime, g Granularity) (UnitOfTime, error) {
	if u == nil {
		return nil, ErrNullInput
	}
	coarser, err := IsAsOrLessGranular(g, u.Granularity())
	if err != nil {
		return nil, err
	}
	if !coarser {
		return nil, ErrGranularityMismatch
	}
	if g == u.Granularity() {
		return u, nil
	}
	if g == GranularityUnbounded {
		return Unbounded(u.Family())
	}

	// From here u is bounded and strictly finer than g.
	switch v := u.(type) {
	case CalendarDay:
		month := CalendarMonth{year: v.year, month: v.month}
		if g == GranularityMonth {
			return month, nil
		}
		return Coarsen(month, g)
	case CalendarMonth:
		if g == GranularityQuarter {
			return CalendarQuarter{year: v.year, quarter: quarterOfMonth(int(v.month))}, nil
		}
		return CalendarYear{year: v.year}, nil
	case CalendarQuarter:
		return CalendarYear{year: v.year}, nil
	case FiscalMonth:
		if g == GranularityQuarter {
			return FiscalQuarter{year: v.year, quarter: quarterOfMonth(int(v.month))}, nil
		}
		return FiscalYear{year: v.year}, nil
	case FiscalQuarter:
		return FiscalYear{year: v.year}, nil
	case GenericMonth:
		if g == GranularityQuarter {
			return GenericQuarter{year: v.year, quarter: quarterOfMonth(int(v.month))}, nil
		}
		return GenericYear{year: v.year}, nil
	case GenericQuarter:
		return GenericYear{year: v.year}, nil
	}
	return nil, ErrGranularityMismatch
}
