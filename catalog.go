package main

import "time"

// Catalog navigates the performance schedule by date. Pagination is
// expressed as "nearest date with at least one entry", so browsing skips
// empty days.
type Catalog struct {
	repo Repository
}

// NewCatalog creates a Catalog over the given repository.
func NewCatalog(repo Repository) *Catalog {
	return &Catalog{repo: repo}
}

// PerformancesOn returns the performances scheduled on the given day,
// in catalog-insertion order.
func (c *Catalog) PerformancesOn(date time.Time) ([]*Performance, error) {
	all, err := c.repo.ListPerformances()
	if err != nil {
		return nil, err
	}
	var onDate []*Performance
	for _, p := range all {
		if p.Date.Equal(date) {
			onDate = append(onDate, p)
		}
	}
	return onDate, nil
}

// NextDate returns the minimum catalog date strictly after the reference
// date. The second result is false when no later date exists.
func (c *Catalog) NextDate(after time.Time) (time.Time, bool, error) {
	all, err := c.repo.ListPerformances()
	if err != nil {
		return time.Time{}, false, err
	}
	var next time.Time
	found := false
	for _, p := range all {
		if !p.Date.After(after) {
			continue
		}
		if !found || p.Date.Before(next) {
			next = p.Date
			found = true
		}
	}
	return next, found, nil
}

// PreviousDate returns the maximum catalog date strictly before the
// reference date. The second result is false when no earlier date exists.
func (c *Catalog) PreviousDate(before time.Time) (time.Time, bool, error) {
	all, err := c.repo.ListPerformances()
	if err != nil {
		return time.Time{}, false, err
	}
	var prev time.Time
	found := false
	for _, p := range all {
		if !p.Date.Before(before) {
			continue
		}
		if !found || p.Date.After(prev) {
			prev = p.Date
			found = true
		}
	}
	return prev, found, nil
}

// UpcomingDate returns the nearest date with performances after today.
func (c *Catalog) UpcomingDate(today time.Time) (time.Time, bool, error) {
	return c.NextDate(today)
}

// dateOnly truncates a timestamp to its UTC calendar day.
func dateOnly(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
