package model

// LeaderboardEntry is one ranked row of the student leaderboard.
type LeaderboardEntry struct {
	Rank         int     `json:"rank"`
	StudentID    uint    `json:"studentId"`
	StudentName  string  `json:"studentName"`
	YearLevel    *int    `json:"yearLevel,omitempty"`
	GradedCount  int64   `json:"gradedCount"`
	AverageScore float64 `json:"averageScore"`
}

// AllModels lists the tables in dependency order for migrations.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Prompt{},
		&Response{},
		&Grade{},
	}
}
