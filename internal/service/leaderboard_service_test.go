package service

import (
	"testing"
	"time"

	"github.com/mhasanmeet/quizvent/internal/model"
)

func leaderboardQuiz() *model.Quiz {
	return &model.Quiz{ID: 1, Title: "Finals", TotalMarks: 100, PassingMarks: 70}
}

func TestRankOrdersByScoreThenSubmissionTime(t *testing.T) {
	quiz := leaderboardQuiz()
	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(5 * time.Minute)
	t3 := t1.Add(10 * time.Minute)

	// Student 20 scored the same as student 10 but submitted later.
	participations := []model.Participation{
		{ID: 2, StudentID: 20, QuizID: 1, TotalScore: 80, Status: model.ParticipationStatusCompleted, CreatedAt: t2},
		{ID: 3, StudentID: 30, QuizID: 1, TotalScore: 60, Status: model.ParticipationStatusFailed, CreatedAt: t3},
		{ID: 1, StudentID: 10, QuizID: 1, TotalScore: 80, Status: model.ParticipationStatusCompleted, CreatedAt: t1},
	}

	entries := RankParticipations(quiz, participations)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	wantOrder := []uint{10, 20, 30}
	for i, want := range wantOrder {
		if entries[i].StudentID != want {
			t.Errorf("rank %d: expected student %d, got %d", i+1, want, entries[i].StudentID)
		}
		if entries[i].Rank != i+1 {
			t.Errorf("entry %d: expected rank %d, got %d", i, i+1, entries[i].Rank)
		}
	}

	wantPercentiles := []float64{100, 50, 0}
	for i, want := range wantPercentiles {
		if entries[i].Percentile != want {
			t.Errorf("rank %d: expected percentile %v, got %v", i+1, want, entries[i].Percentile)
		}
	}

	if !entries[0].Passed || !entries[1].Passed {
		t.Errorf("scores of 80 against passing marks 70 must be marked passed")
	}
	if entries[2].Passed {
		t.Errorf("score of 60 against passing marks 70 must not be marked passed")
	}
}

func TestRankSingleParticipant(t *testing.T) {
	entries := RankParticipations(leaderboardQuiz(), []model.Participation{
		{ID: 1, StudentID: 10, QuizID: 1, TotalScore: 40, CreatedAt: time.Now()},
	})
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Rank != 1 {
		t.Errorf("expected rank 1, got %d", entries[0].Rank)
	}
	if entries[0].Percentile != 100 {
		t.Errorf("a lone participant sits at the 100th percentile, got %v", entries[0].Percentile)
	}
}

func TestRankEmptyInput(t *testing.T) {
	entries := RankParticipations(leaderboardQuiz(), nil)
	if len(entries) != 0 {
		t.Fatalf("expected no entries for no participations, got %d", len(entries))
	}
}

func TestRankIsDeterministic(t *testing.T) {
	quiz := leaderboardQuiz()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	participations := []model.Participation{
		{ID: 1, StudentID: 10, TotalScore: 50, CreatedAt: base},
		{ID: 2, StudentID: 20, TotalScore: 50, CreatedAt: base.Add(time.Second)},
		{ID: 3, StudentID: 30, TotalScore: 90, CreatedAt: base.Add(2 * time.Second)},
		{ID: 4, StudentID: 40, TotalScore: 10, CreatedAt: base.Add(3 * time.Second)},
	}

	first := RankParticipations(quiz, participations)
	for i := 0; i < 10; i++ {
		again := RankParticipations(quiz, participations)
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("run %d entry %d differs: %+v vs %+v", i, j, first[j], again[j])
			}
		}
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	quiz := leaderboardQuiz()
	base := time.Now()
	participations := []model.Participation{
		{ID: 1, StudentID: 10, TotalScore: 10, CreatedAt: base},
		{ID: 2, StudentID: 20, TotalScore: 90, CreatedAt: base.Add(time.Second)},
	}

	RankParticipations(quiz, participations)
	if participations[0].StudentID != 10 || participations[1].StudentID != 20 {
		t.Errorf("input slice was reordered by ranking")
	}
}

func TestLeaderboardStatusFilter(t *testing.T) {
	repo := newFakeParticipationRepo()
	quizRepo := &fakeQuizRepo{quiz: leaderboardQuiz()}
	seed := []model.Participation{
		{StudentID: 10, QuizID: 1, TotalScore: 80, Status: model.ParticipationStatusCompleted},
		{StudentID: 20, QuizID: 1, TotalScore: 90, Status: model.ParticipationStatusPending},
		{StudentID: 30, QuizID: 1, TotalScore: 20, Status: model.ParticipationStatusFailed},
	}
	for i := range seed {
		seed[i].CreatedAt = time.Now().Add(time.Duration(i) * time.Second)
		if err := repo.Create(&seed[i]); err != nil {
			t.Fatalf("seeding participation: %v", err)
		}
	}

	svc := NewLeaderboardService(quizRepo, repo)

	all, err := svc.Rank(1, "")
	if err != nil {
		t.Fatalf("Rank returned error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("unfiltered leaderboard must rank every record, got %d entries", len(all))
	}

	completed, err := svc.Rank(1, model.ParticipationStatusCompleted)
	if err != nil {
		t.Fatalf("Rank with status filter returned error: %v", err)
	}
	if len(completed) != 1 || completed[0].StudentID != 10 {
		t.Errorf("expected only student 10 in the completed leaderboard, got %+v", completed)
	}
	if completed[0].Rank != 1 || completed[0].Percentile != 100 {
		t.Errorf("filtered set must be ranked on its own, got rank %d percentile %v", completed[0].Rank, completed[0].Percentile)
	}
}
