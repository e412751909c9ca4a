package dto

import "time"

// QuestionCreateDTO is used within QuizCreateDTO for admin quiz creation.
type QuestionCreateDTO struct {
	Text          string   `json:"text" binding:"required"`
	Type          string   `json:"type" binding:"required,oneof=MCQ Short Written"`
	Marks         int      `json:"marks" binding:"required,gt=0"`
	OrderInQuiz   int      `json:"order_in_quiz" binding:"required,min=1"`
	Options       []string `json:"options,omitempty"`        // MCQ only
	CorrectAnswer string   `json:"correct_answer,omitempty"` // MCQ only, must equal one option
}

// QuizCreateDTO is for admin to create a new quiz with all its questions.
type QuizCreateDTO struct {
	EventID         *uint               `json:"event_id"`
	Title           string              `json:"title" binding:"required"`
	Description     string              `json:"description,omitempty"`
	Instructions    string              `json:"instructions,omitempty"`
	DurationMinutes int                 `json:"duration_minutes" binding:"required,gt=0"`
	PassingMarks    int                 `json:"passing_marks" binding:"min=0"`
	Questions       []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

// EventCreateDTO is for admin event creation.
type EventCreateDTO struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description,omitempty"`
}

// QuestionResponseDTO carries full question details, including the correct
// answer. Admin-facing only.
type QuestionResponseDTO struct {
	ID            uint     `json:"id"`
	QuizID        uint     `json:"quiz_id"`
	Text          string   `json:"text"`
	Type          string   `json:"type"`
	Marks         int      `json:"marks"`
	OrderInQuiz   int      `json:"order_in_quiz"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
}

// StudentQuestionDTO is the participant-facing view of a question: the
// correct answer is stripped.
type StudentQuestionDTO struct {
	ID          uint     `json:"id"`
	QuizID      uint     `json:"quiz_id"`
	Text        string   `json:"text"`
	Type        string   `json:"type"`
	Marks       int      `json:"marks"`
	OrderInQuiz int      `json:"order_in_quiz"`
	Options     []string `json:"options,omitempty"`
}

// QuizResponseDTO is the admin view of a quiz with its questions.
type QuizResponseDTO struct {
	ID              uint                  `json:"id"`
	EventID         *uint                 `json:"event_id,omitempty"`
	Title           string                `json:"title"`
	Description     string                `json:"description,omitempty"`
	Instructions    string                `json:"instructions,omitempty"`
	DurationMinutes int                   `json:"duration_minutes"`
	TotalMarks      int                   `json:"total_marks"`
	PassingMarks    int                   `json:"passing_marks"`
	IsActive        bool                  `json:"is_active"`
	Questions       []QuestionResponseDTO `json:"questions,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
}

// QuizDetailDTO is the participant-facing quiz view.
type QuizDetailDTO struct {
	ID              uint                 `json:"id"`
	EventID         *uint                `json:"event_id,omitempty"`
	Title           string               `json:"title"`
	Description     string               `json:"description,omitempty"`
	Instructions    string               `json:"instructions,omitempty"`
	DurationMinutes int                  `json:"duration_minutes"`
	TotalMarks      int                  `json:"total_marks"`
	PassingMarks    int                  `json:"passing_marks"`
	IsActive        bool                 `json:"is_active"`
	Questions       []StudentQuestionDTO `json:"questions,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
}

// QuizSummaryDTO is used for listing quizzes.
type QuizSummaryDTO struct {
	ID              uint      `json:"id"`
	EventID         *uint     `json:"event_id,omitempty"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	TotalMarks      int       `json:"total_marks"`
	PassingMarks    int       `json:"passing_marks"`
	IsActive        bool      `json:"is_active"`
	QuestionCount   int       `json:"question_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// EventResponseDTO mirrors a created event.
type EventResponseDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
