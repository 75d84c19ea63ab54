package service

import (
	"context"
	"fmt"
	"math"

	"github.com/msomdec/interview-prep/internal/domain"
)

// DashboardStats summarises a user's completed interviews.
type DashboardStats struct {
	Completed    int
	Technical    int
	Behavioral   int
	AverageScore int // rounded, 0 with no completed interviews
	BestScore    int
}

// ComputeStats derives dashboard numbers from the user's history.
func ComputeStats(user *domain.User) DashboardStats {
	var stats DashboardStats
	total := 0
	for _, iv := range user.Interviews {
		if iv.Status != domain.InterviewStatusCompleted {
			continue
		}
		stats.Completed++
		switch iv.Mode {
		case domain.ModeTechnical:
			stats.Technical++
		case domain.ModeBehavioral:
			stats.Behavioral++
		}
		if iv.Score != nil {
			total += *iv.Score
			stats.BestScore = max(stats.BestScore, *iv.Score)
		}
	}
	if stats.Completed > 0 {
		stats.AverageScore = int(math.Round(float64(total) / float64(stats.Completed)))
	}
	return stats
}

// Stats loads the user and computes their dashboard numbers.
func (s *InterviewService) Stats(ctx context.Context, userID string) (DashboardStats, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return DashboardStats{}, fmt.Errorf("get user: %w", err)
	}
	return ComputeStats(user), nil
}

// History returns the user's completed interviews newest first, paginated,
// along with the total number of completed interviews.
func (s *InterviewService) History(ctx context.Context, userID string, limit, offset int) ([]domain.Interview, int, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("get user: %w", err)
	}

	completed := make([]domain.Interview, 0, len(user.Interviews))
	for i := len(user.Interviews) - 1; i >= 0; i-- {
		if user.Interviews[i].Status == domain.InterviewStatusCompleted {
			completed = append(completed, user.Interviews[i])
		}
	}

	total := len(completed)
	offset = max(offset, 0)
	if offset >= total {
		return []domain.Interview{}, total, nil
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return completed[offset:end], total, nil
}
