// Package streak derives consecutive-day streaks from devotional
// progress and journal activity.
package streak

import (
	"sort"
	"time"

	"devotional-api/internal/model"
)

// Badge tiers by current streak length.
const (
	BadgeNone    = "none"
	BadgeBronze  = "bronze"
	BadgeSilver  = "silver"
	BadgeGold    = "gold"
	BadgeRadiant = "radiant"
)

// Engine computes streaks against an injectable clock so "today" can be
// fixed in tests. It holds no other state; Calculate is a pure function
// of its inputs and the clock.
type Engine struct {
	now func() time.Time
}

// NewEngine returns an Engine using the given clock, or time.Now when
// now is nil.
func NewEngine(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// Calculate derives the streak state from read-only snapshots of the
// user's devotional progress and journal entries. It never mutates its
// inputs and never fails: records with missing or zero dates are simply
// not counted as activity.
//
// A day is active when at least one completion or journal entry falls on
// that local calendar day. The current streak counts back from today,
// or from yesterday when today has no activity yet, so the streak does
// not read as broken before the day is over. Records stamped after today
// (clock corrections between write and read) are dropped so they cannot
// mask a live streak or pad the history scan.
func (e *Engine) Calculate(progress []model.DevotionalProgress, entries []model.JournalEntry) model.StreakResult {
	now := e.now()
	loc := now.Location()
	today := midnight(now, loc)

	seen := make(map[string]time.Time)
	mark := func(t time.Time) {
		if t.IsZero() {
			return
		}
		d := midnight(t.In(loc), loc)
		if d.After(today) {
			return
		}
		seen[d.Format("2006-01-02")] = d
	}
	for _, p := range progress {
		for _, c := range p.Completions {
			mark(c.CompletedAt)
		}
	}
	for _, entry := range entries {
		mark(entry.CreatedAt)
	}

	if len(seen) == 0 {
		return model.StreakResult{Badge: BadgeNone}
	}

	days := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	yesterday := today.AddDate(0, 0, -1)

	current := 0
	if days[0].Equal(today) || days[0].Equal(yesterday) {
		current = 1
		for i := 1; i < len(days); i++ {
			if !days[i].Equal(days[i-1].AddDate(0, 0, -1)) {
				break
			}
			current++
		}
	}

	longest, run := 0, 0
	for i := range days {
		if i > 0 && days[i].Equal(days[i-1].AddDate(0, 0, -1)) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	return model.StreakResult{
		CurrentStreak: current,
		LongestStreak: longest,
		Badge:         badge(current),
	}
}

func midnight(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func badge(current int) string {
	switch {
	case current >= 100:
		return BadgeRadiant
	case current >= 30:
		return BadgeGold
	case current >= 7:
		return BadgeSilver
	case current >= 3:
		return BadgeBronze
	default:
		return BadgeNone
	}
}
