package service

import (
	"onlinetest_backend/internal/repository"
	"onlinetest_backend/pkg/claims"
)

type DashboardService struct {
	AttemptRepo *repository.AttemptRepository
}

func NewDashboardService(attemptRepo *repository.AttemptRepository) *DashboardService {
	return &DashboardService{AttemptRepo: attemptRepo}
}

// ScoreBucket is one band of the distribution chart.
type ScoreBucket struct {
	Label string `json:"label"`
	Low   int    `json:"low"`
	High  int    `json:"high"`
	Count int64  `json:"count"`
}

var scoreBands = []ScoreBucket{
	{Label: "below-60", Low: 0, High: 59},
	{Label: "60-74", Low: 60, High: 74},
	{Label: "75-84", Low: 75, High: 84},
	{Label: "85-100", Low: 85, High: 100},
}

// ScoreDistribution buckets the caller's latest attempt per assignment
// into fixed bands. Only the most recent attempt counts, so a retried
// failure does not appear twice.
func (s *DashboardService) ScoreDistribution(principal *claims.Principal) ([]ScoreBucket, error) {
	out := make([]ScoreBucket, len(scoreBands))
	copy(out, scoreBands)
	for i := range out {
		count, err := s.AttemptRepo.CountLatestByPercentageRange(principal.CompanyID, principal.UserID, out[i].Low, out[i].High)
		if err != nil {
			return nil, err
		}
		out[i].Count = count
	}
	return out, nil
}
