package scoring

import "github.com/mhasanmeet/quizvent/internal/model"

// Score grades a submitted value against a question. It is a pure function
// and is invoked on every answer mutation so the running total always
// reflects the current answer set.
//
// MCQ answers are compared with exact, case-sensitive string equality against
// the question's correct answer; marks are all-or-nothing. Short and Written
// answers cannot be graded automatically: they score zero here and are
// adjusted later during manual review.
func Score(question *model.Question, submitted string) (isCorrect bool, marksObtained int) {
	if question.Type != model.QuestionTypeMCQ {
		return false, 0
	}
	if submitted == question.CorrectAnswer {
		return true, question.Marks
	}
	return false, 0
}
