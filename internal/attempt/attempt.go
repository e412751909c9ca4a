package attempt

import (
	"sort"
	"sync"
	"time"

	"github.com/mhasanmeet/quizvent/internal/model"
	"github.com/mhasanmeet/quizvent/internal/quizerr"
	"github.com/mhasanmeet/quizvent/internal/scoring"
)

type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseInProgress Phase = "in_progress"
	PhaseCompleted  Phase = "completed"
)

// Attempt is the in-memory state of a single quiz-taking session. It lives
// only until it is submitted (becoming a Participation) or abandoned.
// Answers are keyed by question id: repeated edits to the same question
// replace the entry in place, they never append.
type Attempt struct {
	mu sync.Mutex

	id        string
	studentID uint
	quiz      *model.Quiz

	questions   []model.Question // ordered by OrderInQuiz
	questionIdx map[uint]int

	answers      map[uint]model.Answer
	currentIndex int
	timeLeft     int
	phase        Phase
	submitting   bool
	timedOut     bool

	startedAt time.Time
	now       func() time.Time
}

// New builds an attempt in the NotStarted phase. The quiz must carry its
// questions; an attempt over an empty quiz is rejected up front.
func New(id string, studentID uint, quiz *model.Quiz) (*Attempt, error) {
	return NewWithClock(id, studentID, quiz, time.Now)
}

// NewWithClock allows deterministic timestamps in tests.
func NewWithClock(id string, studentID uint, quiz *model.Quiz, now func() time.Time) (*Attempt, error) {
	if len(quiz.Questions) == 0 {
		return nil, quizerr.ErrQuizHasNoQuestions
	}

	questions := make([]model.Question, len(quiz.Questions))
	copy(questions, quiz.Questions)
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].OrderInQuiz < questions[j].OrderInQuiz
	})

	idx := make(map[uint]int, len(questions))
	for i, q := range questions {
		idx[q.ID] = i
	}

	return &Attempt{
		id:          id,
		studentID:   studentID,
		quiz:        quiz,
		questions:   questions,
		questionIdx: idx,
		phase:       PhaseNotStarted,
		now:         now,
	}, nil
}

// Start transitions NotStarted -> InProgress: one empty answer per question,
// position at the first question, full duration on the clock. The caller
// must have passed the participation guard before invoking this.
func (a *Attempt) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.phase != PhaseNotStarted {
		return &quizerr.InvalidStateError{Op: "start", Phase: string(a.phase)}
	}

	a.answers = make(map[uint]model.Answer, len(a.questions))
	for _, q := range a.questions {
		a.answers[q.ID] = model.Answer{QuestionID: q.ID}
	}
	a.currentIndex = 0
	a.timeLeft = a.quiz.DurationMinutes * 60
	a.startedAt = a.now()
	a.phase = PhaseInProgress
	return nil
}

// Answer records a value for a question, re-grading it through the scoring
// engine and replacing the keyed entry in place.
func (a *Attempt) Answer(questionID uint, value string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.phase != PhaseInProgress {
		return &quizerr.InvalidStateError{Op: "answer", Phase: string(a.phase)}
	}

	i, ok := a.questionIdx[questionID]
	if !ok {
		return quizerr.ErrQuestionNotInQuiz
	}
	question := a.questions[i]

	isCorrect, marks := scoring.Score(&question, value)
	answer := model.Answer{
		QuestionID:     questionID,
		SelectedOption: value,
		IsCorrect:      isCorrect,
		MarksObtained:  marks,
	}
	if question.Type != model.QuestionTypeMCQ {
		answer.ParticipantAnswer = value
	}
	a.answers[questionID] = answer
	return nil
}

// Next advances the current question, clamped at the last one.
func (a *Attempt) Next() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.phase != PhaseInProgress {
		return &quizerr.InvalidStateError{Op: "next", Phase: string(a.phase)}
	}
	if a.currentIndex < len(a.questions)-1 {
		a.currentIndex++
	}
	return nil
}

// Previous moves back one question, clamped at the first one.
func (a *Attempt) Previous() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.phase != PhaseInProgress {
		return &quizerr.InvalidStateError{Op: "previous", Phase: string(a.phase)}
	}
	if a.currentIndex > 0 {
		a.currentIndex--
	}
	return nil
}

// Tick advances the countdown by one second. It reports true exactly once,
// when the timer reaches zero, so the caller can trigger the timeout
// submission. The clock keeps its zero reading while a submission is in
// flight; re-entry is guarded separately by BeginSubmit.
func (a *Attempt) Tick() (timedOut bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.phase != PhaseInProgress || a.timedOut {
		return false
	}
	if a.timeLeft > 0 {
		a.timeLeft--
	}
	if a.timeLeft == 0 {
		a.timedOut = true
		return true
	}
	return false
}

// BeginSubmit marks the attempt as submitting. Concurrent submit calls are
// rejected, not queued.
func (a *Attempt) BeginSubmit() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.phase == PhaseCompleted {
		return &quizerr.InvalidStateError{Op: "submit", Phase: string(a.phase)}
	}
	if a.phase != PhaseInProgress {
		return &quizerr.InvalidStateError{Op: "submit", Phase: string(a.phase)}
	}
	if a.submitting {
		return &quizerr.SubmissionInProgressError{AttemptID: a.id}
	}
	a.submitting = true
	return nil
}

// FinishSubmit completes the submission cycle. When the participation record
// was committed the attempt becomes Completed; otherwise it returns to a
// plain InProgress state so the student may retry.
func (a *Attempt) FinishSubmit(committed bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.submitting = false
	if committed {
		a.phase = PhaseCompleted
	}
}

// Abandon discards the attempt before submission. No participation record
// exists, so the guard will allow a fresh start later.
func (a *Attempt) Abandon() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.phase == PhaseCompleted {
		return &quizerr.InvalidStateError{Op: "abandon", Phase: string(a.phase)}
	}
	a.phase = PhaseNotStarted
	a.answers = nil
	return nil
}

func (a *Attempt) ID() string        { return a.id }
func (a *Attempt) StudentID() uint   { return a.studentID }
func (a *Attempt) QuizID() uint      { return a.quiz.ID }
func (a *Attempt) Quiz() *model.Quiz { return a.quiz }

// QuestionByID returns the snapshot question for an id, if it belongs to the quiz.
func (a *Attempt) QuestionByID(questionID uint) (*model.Question, bool) {
	i, ok := a.questionIdx[questionID]
	if !ok {
		return nil, false
	}
	q := a.questions[i]
	return &q, true
}

// State is a consistent snapshot of the attempt for transport layers.
type State struct {
	ID                   string
	StudentID            uint
	QuizID               uint
	Phase                Phase
	CurrentQuestionIndex int
	TimeLeftSeconds      int
	TotalScore           int
	Answers              []model.Answer // ordered by question position
}

// Snapshot copies the attempt state under the lock.
func (a *Attempt) Snapshot() State {
	a.mu.Lock()
	defer a.mu.Unlock()

	state := State{
		ID:                   a.id,
		StudentID:            a.studentID,
		QuizID:               a.quiz.ID,
		Phase:                a.phase,
		CurrentQuestionIndex: a.currentIndex,
		TimeLeftSeconds:      a.timeLeft,
	}
	for _, q := range a.questions {
		if ans, ok := a.answers[q.ID]; ok {
			state.Answers = append(state.Answers, ans)
			state.TotalScore += ans.MarksObtained
		}
	}
	return state
}

// TotalScore sums marks over the current answer set.
func (a *Attempt) TotalScore() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	total := 0
	for _, ans := range a.answers {
		total += ans.MarksObtained
	}
	return total
}
