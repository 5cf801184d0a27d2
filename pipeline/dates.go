package pipeline

import (
	"path/filepath"
	"strings"

	"github.com/vic2tools/econstat/economy"
)

// dateKey is a sortable in-game date. Save files are named after the game
// date they capture (1836.1.1.txt), so chronological order comes from the
// filename, not the filesystem timestamp.
type dateKey struct {
	year, month, day int
}

// dateKeyOf extracts the date from a save filename. Unparseable names sort
// first, keeping them visible instead of silently sorted away.
func dateKeyOf(path string) dateKey {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	year, month, day, ok := economy.ParseGameDate(stem)
	if !ok {
		return dateKey{}
	}

	return dateKey{year: year, month: month, day: day}
}

func dateKeyOfDate(date string) dateKey {
	year, month, day, ok := economy.ParseGameDate(date)
	if !ok {
		return dateKey{}
	}

	return dateKey{year: year, month: month, day: day}
}

func (k dateKey) less(o dateKey) bool {
	if k.year != o.year {
		return k.year < o.year
	}

	if k.month != o.month {
		return k.month < o.month
	}

	return k.day < o.day
}
