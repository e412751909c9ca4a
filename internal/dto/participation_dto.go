package dto

import "time"

// ParticipationCheckRequestDTO asks whether a student already has a
// participation record for a quiz.
type ParticipationCheckRequestDTO struct {
	StudentID uint `json:"student_id" binding:"required"`
	QuizID    uint `json:"quiz_id" binding:"required"`
}

// ParticipationCheckDTO is the guard's answer. Status is only set when
// HasParticipated is true.
type ParticipationCheckDTO struct {
	HasParticipated bool   `json:"has_participated"`
	Status          string `json:"status,omitempty"`
}

// AnswerResponseDTO is one persisted answer within a participation.
type AnswerResponseDTO struct {
	ID                uint     `json:"id"`
	QuestionID        uint     `json:"question_id"`
	SelectedOption    string   `json:"selected_option"`
	ParticipantAnswer string   `json:"participant_answer,omitempty"`
	IsCorrect         bool     `json:"is_correct"`
	MarksObtained     int      `json:"marks_obtained"`
	ImageURLs         []string `json:"image_urls,omitempty"`
}

// ParticipationDTO is the persisted participation record.
type ParticipationDTO struct {
	ID         uint                `json:"id"`
	StudentID  uint                `json:"student_id"`
	QuizID     uint                `json:"quiz_id"`
	TotalScore int                 `json:"total_score"`
	Status     string              `json:"status"`
	Answers    []AnswerResponseDTO `json:"answers,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}

// LeaderboardEntryDTO is a derived ranking record, never stored.
type LeaderboardEntryDTO struct {
	Rank          int       `json:"rank"`
	StudentID     uint      `json:"student_id"`
	ObtainedMarks int       `json:"obtained_marks"`
	Percentile    float64   `json:"percentile"`
	Passed        bool      `json:"passed"`
	Status        string    `json:"status"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// GradeAnswerDTO is the manual-review mutation for one subjective answer.
type GradeAnswerDTO struct {
	MarksObtained *int  `json:"marks_obtained" binding:"required,min=0"`
	IsCorrect     *bool `json:"is_correct" binding:"required"`
}

// FinalizeParticipationDTO closes the review of a participation. When Status
// is omitted it is derived from the recomputed total against passing marks.
type FinalizeParticipationDTO struct {
	Status *string `json:"status" binding:"omitempty,oneof=completed failed"`
}

// GradeSuggestionDTO is the advisory output of the review-assist model.
type GradeSuggestionDTO struct {
	SuggestedMarks float64 `json:"suggested_marks"`
	Feedback       string  `json:"feedback"`
}

// AddEventParticipantDTO registers a student into an event.
type AddEventParticipantDTO struct {
	StudentID uint `json:"student_id" binding:"required"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
