package repository

import (
	"context"
	"newel_classroom/internal/model"

	"gorm.io/gorm"
)

// StudentAverage is one aggregated row: a student and the mean of their grades.
type StudentAverage struct {
	StudentID    uint
	Name         string
	YearLevel    *int
	GradedCount  int64
	AverageScore float64
}

type LeaderboardRepository struct {
	DB *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) *LeaderboardRepository {
	return &LeaderboardRepository{DB: db}
}

// StudentAverages joins users -> responses -> grades, grouped per student.
// Students without any grade drop out of the inner joins.
func (r *LeaderboardRepository) StudentAverages(ctx context.Context) ([]StudentAverage, error) {
	var rows []StudentAverage
	err := r.DB.WithContext(ctx).
		Table("users").
		Select("users.id AS student_id, users.name AS name, users.year_level AS year_level, "+
			"COUNT(grades.id) AS graded_count, AVG(grades.score) AS average_score").
		Joins("JOIN responses ON responses.student_id = users.id").
		Joins("JOIN grades ON grades.response_id = responses.id").
		Where("users.user_type = ?", model.Student).
		Group("users.id, users.name, users.year_level").
		Having("COUNT(grades.id) > 0").
		Order("average_score DESC").
		Order("users.id ASC").
		Scan(&rows).Error
	return rows, err
}
