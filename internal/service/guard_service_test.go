package service

import (
	"testing"
	"time"

	"github.com/mhasanmeet/quizvent/internal/model"
)

func TestCheckParticipationNoRecord(t *testing.T) {
	repo := newFakeParticipationRepo()
	guard := NewGuardService(repo)

	check, err := guard.CheckParticipation(7, 1)
	if err != nil {
		t.Fatalf("CheckParticipation returned error: %v", err)
	}
	if check.HasParticipated {
		t.Errorf("expected HasParticipated=false for a fresh student, got true")
	}
	if check.Status != "" {
		t.Errorf("expected empty status, got %q", check.Status)
	}
}

func TestCheckParticipationBlocksEveryStatus(t *testing.T) {
	statuses := []string{
		model.ParticipationStatusPending,
		model.ParticipationStatusCompleted,
		model.ParticipationStatusFailed,
	}

	for _, status := range statuses {
		repo := newFakeParticipationRepo()
		if err := repo.Create(&model.Participation{StudentID: 7, QuizID: 1, Status: status, CreatedAt: time.Now()}); err != nil {
			t.Fatalf("seeding participation: %v", err)
		}
		guard := NewGuardService(repo)

		check, err := guard.CheckParticipation(7, 1)
		if err != nil {
			t.Fatalf("status %s: CheckParticipation returned error: %v", status, err)
		}
		if !check.HasParticipated {
			t.Errorf("status %s must block a new attempt, got HasParticipated=false", status)
		}
		if check.Status != status {
			t.Errorf("expected status %q echoed back, got %q", status, check.Status)
		}
	}
}

func TestCheckParticipationIsPerQuiz(t *testing.T) {
	repo := newFakeParticipationRepo()
	if err := repo.Create(&model.Participation{StudentID: 7, QuizID: 1, Status: model.ParticipationStatusCompleted}); err != nil {
		t.Fatalf("seeding participation: %v", err)
	}
	guard := NewGuardService(repo)

	check, err := guard.CheckParticipation(7, 2)
	if err != nil {
		t.Fatalf("CheckParticipation returned error: %v", err)
	}
	if check.HasParticipated {
		t.Errorf("participation in quiz 1 must not block quiz 2")
	}
}
