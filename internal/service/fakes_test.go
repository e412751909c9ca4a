package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/mhasanmeet/quizvent/internal/model"
	"github.com/mhasanmeet/quizvent/internal/repository"
	"gorm.io/gorm"
)

// In-memory repository doubles. They mimic the relevant database behavior:
// gorm.ErrRecordNotFound on misses and unique-index rejection of a second
// participation for the same (student, quiz).

type fakeParticipationRepo struct {
	mu         sync.Mutex
	nextID     uint
	byID       map[uint]*model.Participation
	failCreate error
}

func newFakeParticipationRepo() *fakeParticipationRepo {
	return &fakeParticipationRepo{byID: make(map[uint]*model.Participation)}
}

func (r *fakeParticipationRepo) Create(p *model.Participation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	for _, existing := range r.byID {
		if existing.StudentID == p.StudentID && existing.QuizID == p.QuizID {
			return fmt.Errorf("duplicate key value violates unique constraint \"idx_participation_student_quiz\"")
		}
	}
	r.nextID++
	p.ID = r.nextID
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	for i := range p.Answers {
		r.nextID++
		p.Answers[i].ID = r.nextID
		p.Answers[i].ParticipationID = p.ID
	}
	stored := *p
	stored.Answers = append([]model.Answer(nil), p.Answers...)
	r.byID[p.ID] = &stored
	return nil
}

func (r *fakeParticipationRepo) Update(p *model.Participation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *p
	stored.Answers = append([]model.Answer(nil), p.Answers...)
	r.byID[p.ID] = &stored
	return nil
}

func (r *fakeParticipationRepo) FindByID(id uint) (*model.Participation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *p
	return &out, nil
}

func (r *fakeParticipationRepo) FindByIDWithDetails(id uint) (*model.Participation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *p
	out.Answers = append([]model.Answer(nil), p.Answers...)
	return &out, nil
}

func (r *fakeParticipationRepo) FindByStudentAndQuiz(studentID, quizID uint) (*model.Participation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.byID {
		if p.StudentID == studentID && p.QuizID == quizID {
			out := *p
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeParticipationRepo) FindAllByQuiz(quizID uint, status string) ([]model.Participation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Participation
	for _, p := range r.byID {
		if p.QuizID != quizID {
			continue
		}
		if status != "" && p.Status != status {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeParticipationRepo) FindAllByStatus(status string) ([]model.Participation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Participation
	for _, p := range r.byID {
		if p.Status == status {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeQuizRepo struct {
	quiz *model.Quiz
}

func (r *fakeQuizRepo) Create(quiz *model.Quiz) error {
	r.quiz = quiz
	return nil
}

func (r *fakeQuizRepo) FindByID(id uint) (*model.Quiz, error) {
	if r.quiz == nil || r.quiz.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return r.quiz, nil
}

func (r *fakeQuizRepo) FindByIDWithQuestions(id uint) (*model.Quiz, error) {
	return r.FindByID(id)
}

func (r *fakeQuizRepo) FindAllWithQuestionCount() ([]repository.QuizWithQuestionCount, error) {
	if r.quiz == nil {
		return nil, nil
	}
	return []repository.QuizWithQuestionCount{{Quiz: *r.quiz, QuestionCount: len(r.quiz.Questions)}}, nil
}

type fakeAnswerRepo struct {
	mu           sync.Mutex
	updated      []model.Answer
	images       []model.AnswerImage
	failAddImage error
}

func (r *fakeAnswerRepo) Update(answer *model.Answer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updated = append(r.updated, *answer)
	return nil
}

func (r *fakeAnswerRepo) FindByParticipationAndQuestion(participationID, questionID uint) (*model.Answer, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAnswerRepo) AddImage(image *model.AnswerImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAddImage != nil {
		return r.failAddImage
	}
	r.images = append(r.images, *image)
	return nil
}

func (r *fakeAnswerRepo) imagesForAnswer(answerID uint) []model.AnswerImage {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.AnswerImage
	for _, img := range r.images {
		if img.AnswerID == answerID {
			out = append(out, img)
		}
	}
	return out
}

type eventRegistration struct {
	eventID   uint
	studentID uint
}

type fakeEventRepo struct {
	mu     sync.Mutex
	events map[uint]*model.Event
	added  []eventRegistration
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[uint]*model.Event)}
}

func (r *fakeEventRepo) Create(event *model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event.ID = uint(len(r.events) + 1)
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) FindByID(id uint) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return event, nil
}

func (r *fakeEventRepo) AddParticipant(eventID, studentID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.added = append(r.added, eventRegistration{eventID: eventID, studentID: studentID})
	return nil
}

type fakeQuestionRepo struct {
	questions map[uint]*model.Question
}

func (r *fakeQuestionRepo) FindByID(id uint) (*model.Question, error) {
	q, ok := r.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return q, nil
}

func (r *fakeQuestionRepo) FindByQuizID(quizID uint) ([]model.Question, error) {
	var out []model.Question
	for _, q := range r.questions {
		if q.QuizID == quizID {
			out = append(out, *q)
		}
	}
	return out, nil
}

// fakeUploadStore records saves and can be told to fail for specific
// questions.
type fakeUploadStore struct {
	mu         sync.Mutex
	savedByQID map[uint]int
	failForQID map[uint]bool
}

func newFakeUploadStore() *fakeUploadStore {
	return &fakeUploadStore{savedByQID: make(map[uint]int), failForQID: make(map[uint]bool)}
}

func (s *fakeUploadStore) Save(participationID, questionID uint, file UploadFile) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failForQID[questionID] {
		return "", fmt.Errorf("disk full")
	}
	s.savedByQID[questionID]++
	return fmt.Sprintf("/uploads/participations/%d/%d/%s", participationID, questionID, file.Name), nil
}

func (s *fakeUploadStore) Read(url string) ([]byte, error) {
	return nil, fmt.Errorf("not stored: %s", url)
}

func (s *fakeUploadStore) savedFor(questionID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.savedByQID[questionID]
}
