package models

// ExamResult is the breakdown produced for one calculator submission.
// It lives in view state only and is discarded on navigation.
//
// Arithmetic identities every generated result satisfies:
//
//	Percentage      = 100 * Score / TotalMarks
//	Correct + Incorrect    = Attempted
//	Attempted + Unattempted = question count of the paper
type ExamResult struct {
	Rank            int     `json:"rank"`
	Score           int     `json:"score"`
	TotalMarks      int     `json:"totalMarks"`
	Percentage      float64 `json:"percentage"`
	CategoryRank    int     `json:"categoryRank,omitempty"`
	NormalizedMarks float64 `json:"normalizedMarks"`
	Attempted       int     `json:"attempted"`
	Unattempted     int     `json:"unattempted"`
	Correct         int     `json:"correct"`
	Incorrect       int     `json:"incorrect"`
	Category        string  `json:"category,omitempty"`
}

// LeaderboardEntry is one row of the generated leaderboard shown next to
// a result. Ranks are 1..N, ascending, unique.
type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	Name       string `json:"name"`
	Score      int    `json:"score"`
	Percentage int    `json:"percentage"`
}
