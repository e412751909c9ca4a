package service

import (
	"fmt"
	"math"
	"sort"

	"github.com/mhasanmeet/quizvent/internal/dto"
	"github.com/mhasanmeet/quizvent/internal/model"
	"github.com/mhasanmeet/quizvent/internal/repository"
	"github.com/rs/zerolog/log"
)

// LeaderboardService computes standings for a quiz. The computation is a
// pure function of the persisted participation records: it is deterministic,
// stateless, and recomputed on every request.
type LeaderboardService interface {
	Rank(quizID uint, status string) ([]dto.LeaderboardEntryDTO, error)
}

type leaderboardService struct {
	quizRepo          repository.QuizRepository
	participationRepo repository.ParticipationRepository
}

func NewLeaderboardService(quizRepo repository.QuizRepository, participationRepo repository.ParticipationRepository) LeaderboardService {
	return &leaderboardService{quizRepo: quizRepo, participationRepo: participationRepo}
}

// Rank orders participations by total score descending, breaking ties by
// earlier submission. An empty status ranks every record; callers decide the
// filtering policy.
func (s *leaderboardService) Rank(quizID uint, status string) ([]dto.LeaderboardEntryDTO, error) {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("Leaderboard: quiz not found")
		return nil, fmt.Errorf("quiz not found with ID %d: %w", quizID, err)
	}

	participations, err := s.participationRepo.FindAllByQuiz(quizID, status)
	if err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("Leaderboard: failed to load participations")
		return nil, fmt.Errorf("error fetching participations for quiz %d: %w", quizID, err)
	}

	return RankParticipations(quiz, participations), nil
}

// RankParticipations is the pure ranking core, exposed for reuse and tests.
func RankParticipations(quiz *model.Quiz, participations []model.Participation) []dto.LeaderboardEntryDTO {
	ranked := make([]model.Participation, len(participations))
	copy(ranked, participations)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].TotalScore != ranked[j].TotalScore {
			return ranked[i].TotalScore > ranked[j].TotalScore
		}
		return ranked[i].CreatedAt.Before(ranked[j].CreatedAt)
	})

	n := len(ranked)
	entries := make([]dto.LeaderboardEntryDTO, 0, n)
	for i, p := range ranked {
		rank := i + 1
		percentile := 100.0
		if n > 1 {
			percentile = math.Round(float64(n-rank)/float64(n-1)*10000) / 100
		}
		entries = append(entries, dto.LeaderboardEntryDTO{
			Rank:          rank,
			StudentID:     p.StudentID,
			ObtainedMarks: p.TotalScore,
			Percentile:    percentile,
			Passed:        p.TotalScore >= quiz.PassingMarks,
			Status:        p.Status,
			SubmittedAt:   p.CreatedAt,
		})
	}
	return entries
}
