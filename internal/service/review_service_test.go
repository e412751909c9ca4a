package service

import (
	"errors"
	"testing"
	"time"

	"github.com/mhasanmeet/quizvent/internal/dto"
	"github.com/mhasanmeet/quizvent/internal/model"
	"github.com/mhasanmeet/quizvent/internal/quizerr"
)

func reviewFixture(t *testing.T) (*fakeParticipationRepo, *fakeAnswerRepo, *fakeQuestionRepo, *fakeQuizRepo, uint) {
	t.Helper()

	quiz := submissionQuiz()
	quizRepo := &fakeQuizRepo{quiz: quiz}
	questionRepo := &fakeQuestionRepo{questions: map[uint]*model.Question{}}
	for i := range quiz.Questions {
		questionRepo.questions[quiz.Questions[i].ID] = &quiz.Questions[i]
	}

	participationRepo := newFakeParticipationRepo()
	p := &model.Participation{
		StudentID:  7,
		QuizID:     1,
		TotalScore: 5,
		Status:     model.ParticipationStatusPending,
		CreatedAt:  time.Now(),
		Answers: []model.Answer{
			{QuestionID: 1, SelectedOption: "B", IsCorrect: true, MarksObtained: 5},
			{QuestionID: 2, ParticipantAnswer: "An interface is a method set contract."},
			{QuestionID: 3, ParticipantAnswer: "len"},
		},
	}
	if err := participationRepo.Create(p); err != nil {
		t.Fatalf("seeding participation: %v", err)
	}
	return participationRepo, &fakeAnswerRepo{}, questionRepo, quizRepo, p.ID
}

func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

func TestGradeAnswerRecomputesTotal(t *testing.T) {
	participationRepo, answerRepo, questionRepo, quizRepo, pid := reviewFixture(t)
	svc := NewReviewService(participationRepo, answerRepo, questionRepo, quizRepo, nil, newFakeUploadStore())

	result, err := svc.GradeAnswer(pid, 2, dto.GradeAnswerDTO{MarksObtained: intPtr(8), IsCorrect: boolPtr(true)})
	if err != nil {
		t.Fatalf("GradeAnswer returned error: %v", err)
	}
	if result.TotalScore != 13 {
		t.Errorf("expected total 5+8=13 after grading, got %d", result.TotalScore)
	}

	stored, _ := participationRepo.FindByIDWithDetails(pid)
	if stored.TotalScore != 13 {
		t.Errorf("persisted total not recomputed: got %d", stored.TotalScore)
	}
	if len(answerRepo.updated) != 1 || answerRepo.updated[0].MarksObtained != 8 {
		t.Errorf("graded answer was not saved: %+v", answerRepo.updated)
	}
}

func TestGradeAnswerRejectsMarksAboveQuestionMax(t *testing.T) {
	participationRepo, answerRepo, questionRepo, quizRepo, pid := reviewFixture(t)
	svc := NewReviewService(participationRepo, answerRepo, questionRepo, quizRepo, nil, newFakeUploadStore())

	if _, err := svc.GradeAnswer(pid, 2, dto.GradeAnswerDTO{MarksObtained: intPtr(11), IsCorrect: boolPtr(true)}); !errors.Is(err, quizerr.ErrMarksExceedMaximum) {
		t.Fatalf("expected ErrMarksExceedMaximum when marks exceed the question maximum of 10, got %v", err)
	}
	if len(answerRepo.updated) != 0 {
		t.Errorf("nothing should be saved on a rejected grade")
	}
}

func TestFinalizeDerivesStatusFromPassingMarks(t *testing.T) {
	participationRepo, answerRepo, questionRepo, quizRepo, pid := reviewFixture(t)
	svc := NewReviewService(participationRepo, answerRepo, questionRepo, quizRepo, nil, newFakeUploadStore())

	// 5 (MCQ) + 8 + 7 = 20 against passing marks of 15.
	if _, err := svc.GradeAnswer(pid, 2, dto.GradeAnswerDTO{MarksObtained: intPtr(8), IsCorrect: boolPtr(true)}); err != nil {
		t.Fatalf("grading question 2: %v", err)
	}
	if _, err := svc.GradeAnswer(pid, 3, dto.GradeAnswerDTO{MarksObtained: intPtr(7), IsCorrect: boolPtr(true)}); err != nil {
		t.Fatalf("grading question 3: %v", err)
	}

	result, err := svc.Finalize(pid, dto.FinalizeParticipationDTO{})
	if err != nil {
		t.Fatalf("Finalize returned error: %v", err)
	}
	if result.Status != model.ParticipationStatusCompleted {
		t.Errorf("total 20 >= passing 15 must finalize as completed, got %q", result.Status)
	}
}

func TestFinalizeBelowPassingMarksFails(t *testing.T) {
	participationRepo, _, questionRepo, quizRepo, pid := reviewFixture(t)
	svc := NewReviewService(participationRepo, &fakeAnswerRepo{}, questionRepo, quizRepo, nil, newFakeUploadStore())

	result, err := svc.Finalize(pid, dto.FinalizeParticipationDTO{})
	if err != nil {
		t.Fatalf("Finalize returned error: %v", err)
	}
	if result.Status != model.ParticipationStatusFailed {
		t.Errorf("total 5 < passing 15 must finalize as failed, got %q", result.Status)
	}
}

func TestFinalizeHonorsExplicitStatus(t *testing.T) {
	participationRepo, _, questionRepo, quizRepo, pid := reviewFixture(t)
	svc := NewReviewService(participationRepo, &fakeAnswerRepo{}, questionRepo, quizRepo, nil, newFakeUploadStore())

	result, err := svc.Finalize(pid, dto.FinalizeParticipationDTO{Status: strPtr(model.ParticipationStatusCompleted)})
	if err != nil {
		t.Fatalf("Finalize returned error: %v", err)
	}
	if result.Status != model.ParticipationStatusCompleted {
		t.Errorf("explicit status must win over the derived one, got %q", result.Status)
	}
}

func TestFinalizeRejectsTerminalParticipation(t *testing.T) {
	participationRepo, _, questionRepo, quizRepo, pid := reviewFixture(t)
	svc := NewReviewService(participationRepo, &fakeAnswerRepo{}, questionRepo, quizRepo, nil, newFakeUploadStore())

	if _, err := svc.Finalize(pid, dto.FinalizeParticipationDTO{}); err != nil {
		t.Fatalf("first finalize: %v", err)
	}
	if _, err := svc.Finalize(pid, dto.FinalizeParticipationDTO{}); !errors.Is(err, quizerr.ErrParticipationTerminal) {
		t.Fatalf("expected ErrParticipationTerminal on a second finalize, got %v", err)
	}
	if _, err := svc.GradeAnswer(pid, 2, dto.GradeAnswerDTO{MarksObtained: intPtr(1), IsCorrect: boolPtr(false)}); !errors.Is(err, quizerr.ErrParticipationTerminal) {
		t.Fatalf("expected ErrParticipationTerminal when grading a finalized participation, got %v", err)
	}
}
