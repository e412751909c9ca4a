package admin

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mhasanmeet/quizvent/internal/quizerr"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestWriteReviewErrorStatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"participation not found", fmt.Errorf("participation not found with ID 9: %w", gorm.ErrRecordNotFound), http.StatusNotFound},
		{"answer not found", fmt.Errorf("participation 9 has no answer for question 3: %w", quizerr.ErrAnswerNotFound), http.StatusNotFound},
		{"already finalized", fmt.Errorf("participation 9 is already completed: %w", quizerr.ErrParticipationTerminal), http.StatusConflict},
		{"marks too high", fmt.Errorf("marks 11 exceed the question maximum of 10: %w", quizerr.ErrMarksExceedMaximum), http.StatusBadRequest},
		{"auto-graded question", fmt.Errorf("question 1 is MCQ: %w", quizerr.ErrQuestionNotReviewable), http.StatusBadRequest},
		{"unclassified", fmt.Errorf("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		recorder := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(recorder)
		writeReviewError(ctx, tc.err)
		if recorder.Code != tc.want {
			t.Errorf("%s: expected status %d, got %d", tc.name, tc.want, recorder.Code)
		}
	}
}
