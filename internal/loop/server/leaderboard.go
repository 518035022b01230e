package server

import (
	"cmp"
	"slices"
)

// TopScoreEntry is one entry on the leaderboard.
type TopScoreEntry struct {
	Username  string `json:"username"`
	Score     int    `json:"score"`
	sessionID int    // Tie-break: earlier sessions rank first
}

// Leaderboard keeps the best finished-match hit count per session.
type Leaderboard struct {
	size    int
	entries []TopScoreEntry
}

// NewLeaderboard creates a leaderboard holding at most size entries.
func NewLeaderboard(size int) *Leaderboard {
	return &Leaderboard{size: size}
}

// Record submits a finished match. A session only keeps its best score.
func (l *Leaderboard) Record(sessionID int, username string, score int) {
	if i := slices.IndexFunc(l.entries, func(e TopScoreEntry) bool { return e.sessionID == sessionID }); i >= 0 {
		if l.entries[i].Score >= score {
			return
		}
		l.entries = slices.Delete(l.entries, i, i+1)
	}
	l.entries = append(l.entries, TopScoreEntry{Username: username, Score: score, sessionID: sessionID})
	slices.SortStableFunc(l.entries, func(a, b TopScoreEntry) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.sessionID, b.sessionID)
	})
	if len(l.entries) > l.size {
		l.entries = l.entries[:l.size]
	}
}

// Top returns a copy of the ranked entries.
func (l *Leaderboard) Top() []TopScoreEntry {
	return slices.Clone(l.entries)
}
