package commands

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/rentalai/rentalai/internal/model"
	"github.com/rentalai/rentalai/internal/period"
	"github.com/rentalai/rentalai/internal/snapshot"
)

var errNoDatedRows = errors.New("no dated rows to file; pass --period")

// yearly reports whether bank's statements are filed per year rather than
// per month.
func yearly(bank string) bool {
	return strings.HasSuffix(bank, "-ytd")
}

// saveSnapshots files rows under the data directory. Year-to-date statements
// are split per calendar year; other statements go to the month most rows
// fall in. A non-nil override files everything under that period.
func (a *app) saveSnapshots(bank, source string, rows []model.Transaction, override *period.Period, now time.Time) ([]snapshot.Snapshot, error) {
	switch {
	case override != nil:
		return a.store(snapshot.New(bank, source, *override, rows, now))
	case yearly(bank):
		return a.saveYearly(bank, source, rows, now)
	}
	p, ok := period.Dominant(rows)
	if !ok {
		return nil, errNoDatedRows
	}
	return a.store(snapshot.New(bank, source, p, rows, now))
}

// saveYearly writes one snapshot per calendar year present in rows.
func (a *app) saveYearly(bank, source string, rows []model.Transaction, now time.Time) ([]snapshot.Snapshot, error) {
	byYear := map[int][]model.Transaction{}
	for _, t := range rows {
		if t.Date.IsZero() {
			a.log.Debug().Str("narration", t.Narration).Msg("undated row left out of yearly snapshot")
			continue
		}
		byYear[t.Date.Year()] = append(byYear[t.Date.Year()], t)
	}
	if len(byYear) == 0 {
		return nil, errNoDatedRows
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	snaps := make([]snapshot.Snapshot, 0, len(years))
	for _, y := range years {
		snaps = append(snaps, snapshot.New(bank, source, period.Year(y), byYear[y], now))
	}
	return a.store(snaps...)
}

func (a *app) store(snaps ...snapshot.Snapshot) ([]snapshot.Snapshot, error) {
	st := snapshot.NewStore(a.dir)
	for _, s := range snaps {
		path, err := st.Save(s)
		if err != nil {
			return nil, err
		}
		a.log.Info().Str("bank", s.Bank).Str("period", s.Period().String()).Str("path", path).Msg("snapshot saved")
	}
	return snaps, nil
}

func parsePeriodFlag(s string) (*period.Period, error) {
	if s == "" {
		return nil, nil
	}
	p, err := period.Parse(s)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
