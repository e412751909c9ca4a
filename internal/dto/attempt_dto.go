package dto

// StartAttemptDTO opens a new attempt for a student on a quiz.
type StartAttemptDTO struct {
	StudentID uint `json:"student_id" binding:"required"`
}

// AnswerUpdateDTO records or replaces the answer for one question.
type AnswerUpdateDTO struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	Value      string `json:"value"`
}

// AttemptAnswerDTO is one entry of an attempt's answer set.
type AttemptAnswerDTO struct {
	QuestionID        uint   `json:"question_id"`
	SelectedOption    string `json:"selected_option"`
	ParticipantAnswer string `json:"participant_answer,omitempty"`
	IsCorrect         bool   `json:"is_correct"`
	MarksObtained     int    `json:"marks_obtained"`
}

// AttemptStateDTO is a snapshot of an in-progress attempt.
type AttemptStateDTO struct {
	AttemptID            string             `json:"attempt_id"`
	StudentID            uint               `json:"student_id"`
	QuizID               uint               `json:"quiz_id"`
	Phase                string             `json:"phase"`
	CurrentQuestionIndex int                `json:"current_question_index"`
	TimeLeftSeconds      int                `json:"time_left_seconds"`
	TotalScore           int                `json:"total_score"`
	Answers              []AttemptAnswerDTO `json:"answers"`
}

// SubmitResultDTO reports the outcome of a submission. UploadWarnings lists
// per-question image uploads that failed; they never fail the submission.
type SubmitResultDTO struct {
	Participation  ParticipationDTO `json:"participation"`
	Reason         string           `json:"reason"` // "manual" or "timeout"
	UploadWarnings []string         `json:"upload_warnings,omitempty"`
}
