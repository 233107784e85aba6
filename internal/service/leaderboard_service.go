package service

import (
	"context"
	"math"
	"newel_classroom/internal/model"
	"newel_classroom/internal/repository"
)

type LeaderboardService struct {
	LeaderboardRepo *repository.LeaderboardRepository
}

func NewLeaderboardService(leaderboardRepo *repository.LeaderboardRepository) *LeaderboardService {
	return &LeaderboardService{LeaderboardRepo: leaderboardRepo}
}

// ComputeLeaderboard ranks graded students by average score. Students with
// no grades are left out.
func (s *LeaderboardService) ComputeLeaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	rows, err := s.LeaderboardRepo.StudentAverages(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]model.LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, model.LeaderboardEntry{
			Rank:         i + 1,
			StudentID:    row.StudentID,
			StudentName:  row.Name,
			YearLevel:    row.YearLevel,
			GradedCount:  row.GradedCount,
			AverageScore: roundScore(row.AverageScore),
		})
	}
	return entries, nil
}

func roundScore(avg float64) float64 {
	return math.Round(avg*100) / 100
}
