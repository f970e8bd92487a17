package ledger

import "time"

// Window is one concrete period instance, a half-open [Start, End) interval.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// months returns the calendar-month step for month-based periods, 0 for weekly.
func (p Period) months() int {
	switch p {
	case PeriodMonthly:
		return 1
	case PeriodQuarterly:
		return 3
	case PeriodYearly:
		return 12
	}
	return 0
}

// advance returns the start of the k-th period instance, always stepping from
// the anchor so calendar arithmetic stays tied to the original start date.
func (p Period) advance(anchor time.Time, k int) time.Time {
	if p == PeriodWeekly {
		return anchor.AddDate(0, 0, 7*k)
	}
	return anchor.AddDate(0, p.months()*k, 0)
}

// CurrentWindow resolves the period instance containing now. For now before
// start the first instance is returned, so a budget starting in the future
// simply has no matching transactions yet.
func (p Period) CurrentWindow(start, now time.Time) Window {
	start = midnightUTC(start)
	now = midnightUTC(now)

	if now.Before(start) {
		return Window{Start: start, End: p.advance(start, 1)}
	}

	var k int
	if p == PeriodWeekly {
		k = int(now.Sub(start).Hours()) / (24 * 7)
	} else {
		elapsed := (now.Year()-start.Year())*12 + int(now.Month()) - int(start.Month())
		k = elapsed / p.months()
	}

	// AddDate normalizes month ends (Jan 31 + 1 month rolls over), so the
	// estimate can land one instance off in either direction.
	for p.advance(start, k).After(now) {
		k--
	}
	for !p.advance(start, k+1).After(now) {
		k++
	}

	return Window{Start: p.advance(start, k), End: p.advance(start, k+1)}
}

func midnightUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
