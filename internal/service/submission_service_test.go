package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mhasanmeet/quizvent/internal/attempt"
	"github.com/mhasanmeet/quizvent/internal/model"
	"github.com/mhasanmeet/quizvent/internal/quizerr"
)

func submissionQuiz() *model.Quiz {
	return &model.Quiz{
		ID:              1,
		Title:           "Go Basics",
		DurationMinutes: 10,
		TotalMarks:      25,
		PassingMarks:    15,
		IsActive:        true,
		Questions: []model.Question{
			{ID: 1, QuizID: 1, Text: "Pick B", Type: model.QuestionTypeMCQ, Marks: 5, OrderInQuiz: 1, CorrectAnswer: "B",
				Options: []model.QuestionOption{{OrderNum: 1, Text: "A"}, {OrderNum: 2, Text: "B"}}},
			{ID: 2, QuizID: 1, Text: "Explain interfaces", Type: model.QuestionTypeWritten, Marks: 10, OrderInQuiz: 2},
			{ID: 3, QuizID: 1, Text: "Name a builtin", Type: model.QuestionTypeShort, Marks: 10, OrderInQuiz: 3},
		},
	}
}

func inProgressAttempt(t *testing.T) *attempt.Attempt {
	t.Helper()
	a, err := attempt.New("attempt-1", 7, submissionQuiz())
	if err != nil {
		t.Fatalf("building attempt: %v", err)
	}
	if err := a.Start(); err != nil {
		t.Fatalf("starting attempt: %v", err)
	}
	if err := a.Answer(1, "B"); err != nil {
		t.Fatalf("answering MCQ: %v", err)
	}
	if err := a.Answer(2, "An interface is a method set contract."); err != nil {
		t.Fatalf("answering written question: %v", err)
	}
	return a
}

func TestSubmitCommitsPendingParticipation(t *testing.T) {
	repo := newFakeParticipationRepo()
	answers := &fakeAnswerRepo{}
	uploads := newFakeUploadStore()
	svc := NewSubmissionService(repo, answers, uploads)

	a := inProgressAttempt(t)
	result, err := svc.Submit(a, nil, SubmitReasonManual)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if result.Reason != SubmitReasonManual {
		t.Errorf("expected reason %q, got %q", SubmitReasonManual, result.Reason)
	}
	if result.Participation.Status != model.ParticipationStatusPending {
		t.Errorf("a fresh submission must be pending review, got %q", result.Participation.Status)
	}
	if result.Participation.TotalScore != 5 {
		t.Errorf("only the correct MCQ scores at submit time: expected total 5, got %d", result.Participation.TotalScore)
	}
	if len(result.Participation.Answers) != 3 {
		t.Errorf("expected one persisted answer per question, got %d", len(result.Participation.Answers))
	}
	if a.Snapshot().Phase != attempt.PhaseCompleted {
		t.Errorf("attempt must be completed after a committed submission, got %s", a.Snapshot().Phase)
	}

	stored, err := repo.FindByStudentAndQuiz(7, 1)
	if err != nil {
		t.Fatalf("participation was not persisted: %v", err)
	}
	if stored.TotalScore != 5 {
		t.Errorf("persisted total %d does not match attempt total 5", stored.TotalScore)
	}
}

func TestSubmitUploadsImagesForSubjectiveAnswers(t *testing.T) {
	repo := newFakeParticipationRepo()
	answers := &fakeAnswerRepo{}
	uploads := newFakeUploadStore()
	svc := NewSubmissionService(repo, answers, uploads)

	a := inProgressAttempt(t)
	images := map[uint][]UploadFile{
		1: {{Name: "ignored.png", Data: []byte("x")}}, // MCQ, must be skipped
		2: {{Name: "sketch1.png", Data: []byte("x")}, {Name: "sketch2.png", Data: []byte("y")}},
	}

	result, err := svc.Submit(a, images, SubmitReasonManual)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if len(result.UploadWarnings) != 0 {
		t.Fatalf("expected no upload warnings, got %v", result.UploadWarnings)
	}

	if got := uploads.savedFor(2); got != 2 {
		t.Errorf("expected 2 stored images for question 2, got %d", got)
	}
	if got := uploads.savedFor(1); got != 0 {
		t.Errorf("images attached to an MCQ answer must be ignored, got %d stored", got)
	}

	stored, _ := repo.FindByStudentAndQuiz(7, 1)
	var writtenAnswerID uint
	for _, ans := range stored.Answers {
		if ans.QuestionID == 2 {
			writtenAnswerID = ans.ID
		}
	}
	if got := len(answers.imagesForAnswer(writtenAnswerID)); got != 2 {
		t.Errorf("expected 2 image records linked to the written answer, got %d", got)
	}
}

func TestSubmitTruncatesImagesPerAnswer(t *testing.T) {
	repo := newFakeParticipationRepo()
	uploads := newFakeUploadStore()
	svc := NewSubmissionService(repo, &fakeAnswerRepo{}, uploads)

	a := inProgressAttempt(t)
	var files []UploadFile
	for i := 0; i < MaxImagesPerAnswer+3; i++ {
		files = append(files, UploadFile{Name: fmt.Sprintf("page%d.png", i), Data: []byte("x")})
	}

	if _, err := svc.Submit(a, map[uint][]UploadFile{2: files}, SubmitReasonManual); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if got := uploads.savedFor(2); got != MaxImagesPerAnswer {
		t.Errorf("expected uploads capped at %d, got %d", MaxImagesPerAnswer, got)
	}
}

func TestSubmitUploadFailureDoesNotAffectCommit(t *testing.T) {
	repo := newFakeParticipationRepo()
	uploads := newFakeUploadStore()
	uploads.failForQID[2] = true
	svc := NewSubmissionService(repo, &fakeAnswerRepo{}, uploads)

	a := inProgressAttempt(t)
	images := map[uint][]UploadFile{
		2: {{Name: "fails.png", Data: []byte("x")}},
		3: {{Name: "works.png", Data: []byte("x")}},
	}

	result, err := svc.Submit(a, images, SubmitReasonManual)
	if err != nil {
		t.Fatalf("an upload failure must never fail the submission, got error: %v", err)
	}
	if len(result.UploadWarnings) != 1 {
		t.Fatalf("expected exactly one upload warning, got %v", result.UploadWarnings)
	}

	// The failing question does not block its sibling.
	if got := uploads.savedFor(3); got != 1 {
		t.Errorf("expected the sibling question's image stored, got %d", got)
	}

	stored, err := repo.FindByStudentAndQuiz(7, 1)
	if err != nil {
		t.Fatalf("participation was not persisted: %v", err)
	}
	if stored.Status != model.ParticipationStatusPending || stored.TotalScore != 5 {
		t.Errorf("committed record was altered by an upload failure: status %q total %d", stored.Status, stored.TotalScore)
	}
	if a.Snapshot().Phase != attempt.PhaseCompleted {
		t.Errorf("attempt must stay completed despite upload failures")
	}
}

func TestSubmitCreateFailureLeavesAttemptRetryable(t *testing.T) {
	repo := newFakeParticipationRepo()
	repo.failCreate = errors.New("connection refused")
	svc := NewSubmissionService(repo, &fakeAnswerRepo{}, newFakeUploadStore())

	a := inProgressAttempt(t)
	if _, err := svc.Submit(a, nil, SubmitReasonManual); err == nil {
		t.Fatal("expected an error when the participation create fails")
	}
	if a.Snapshot().Phase != attempt.PhaseInProgress {
		t.Fatalf("attempt must stay in progress after a failed commit, got %s", a.Snapshot().Phase)
	}

	// The same attempt submits cleanly once the database recovers.
	repo.failCreate = nil
	if _, err := svc.Submit(a, nil, SubmitReasonManual); err != nil {
		t.Fatalf("retry after recovery failed: %v", err)
	}
	if a.Snapshot().Phase != attempt.PhaseCompleted {
		t.Errorf("attempt must complete on the retried submission")
	}
}

func TestSubmitRejectsCompletedAttempt(t *testing.T) {
	repo := newFakeParticipationRepo()
	svc := NewSubmissionService(repo, &fakeAnswerRepo{}, newFakeUploadStore())

	a := inProgressAttempt(t)
	if _, err := svc.Submit(a, nil, SubmitReasonManual); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	_, err := svc.Submit(a, nil, SubmitReasonManual)
	var stateErr *quizerr.InvalidStateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("expected InvalidStateError on double submit, got %v", err)
	}
}
