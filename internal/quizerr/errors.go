package quizerr

import (
	"errors"
	"fmt"
)

var (
	ErrAttemptNotFound    = errors.New("attempt not found")
	ErrAttemptActive      = errors.New("an attempt is already in progress for this quiz")
	ErrQuestionNotInQuiz  = errors.New("question does not belong to this quiz")
	ErrQuizHasNoQuestions = errors.New("quiz has no questions")
	ErrQuizInactive       = errors.New("quiz is not active")

	ErrAnswerNotFound        = errors.New("answer not found")
	ErrParticipationTerminal = errors.New("participation is already finalized")
	ErrMarksExceedMaximum    = errors.New("marks exceed the question maximum")
	ErrQuestionNotReviewable = errors.New("question is graded automatically and cannot be reviewed")
)

// AlreadyParticipatedError blocks a new attempt when a participation record
// already exists for the (student, quiz) pair. Status carries the prior
// outcome so callers can present an appropriate message.
type AlreadyParticipatedError struct {
	Status string
}

func (e *AlreadyParticipatedError) Error() string {
	return fmt.Sprintf("already participated in this quiz (status: %s)", e.Status)
}

// InvalidStateError is returned when a mutation is attempted on an attempt
// that has already completed. This indicates a caller bug and fails loudly.
type InvalidStateError struct {
	Op    string
	Phase string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("operation %q not allowed in phase %q", e.Op, e.Phase)
}

// SubmissionInProgressError rejects a duplicate submit while a prior call is
// still outstanding. The second caller is rejected, never queued.
type SubmissionInProgressError struct {
	AttemptID string
}

func (e *SubmissionInProgressError) Error() string {
	return fmt.Sprintf("submission already in progress for attempt %s", e.AttemptID)
}
