package service

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/mhasanmeet/quizvent/config"
	"github.com/mhasanmeet/quizvent/internal/model"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// AssistImage is an uploaded answer image read back for the assist model.
type AssistImage struct {
	URL  string
	Data []byte
}

// GradeAssistService drafts an advisory score and feedback for a subjective
// answer. The suggestion is never written to the participation; the admin
// remains the authority.
type GradeAssistService interface {
	SuggestGrade(question *model.Question, answerText string, images []AssistImage) (feedback string, score float64, err error)
}

type gradeAssistService struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

func NewGradeAssistService(cfg *config.Config) (GradeAssistService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. GradeAssistService will be non-functional.")
		return &gradeAssistService{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel("gemini-1.5-flash")
	return &gradeAssistService{client: model, cfg: cfg}, nil
}

func (s *gradeAssistService) SuggestGrade(question *model.Question, answerText string, images []AssistImage) (string, float64, error) {
	if s.client == nil {
		return "", 0, fmt.Errorf("grade assist is disabled: no API key configured")
	}

	prompt := fmt.Sprintf(
		"You are assisting a quiz reviewer. Grade the following %s answer out of %d marks.\n"+
			"Question: %s\n"+
			"Participant answer: %s\n"+
			"Respond in exactly this format:\nScore: <number between 0 and %d>\nFeedback: <two or three sentences>",
		question.Type, question.Marks, question.Text, answerText, question.Marks,
	)

	parts := []genai.Part{genai.Text(prompt)}
	for _, img := range images {
		mimeType := mime.TypeByExtension(filepath.Ext(img.URL))
		if !strings.HasPrefix(mimeType, "image/") {
			log.Warn().Str("url", img.URL).Msg("Skipping attachment with undeterminable image MIME type")
			continue
		}
		// genai expects the bare subtype, e.g. "png" for image/png.
		parts = append(parts, genai.ImageData(strings.TrimPrefix(mimeType, "image/"), img.Data))
	}

	ctx := context.Background()
	resp, err := s.client.GenerateContent(ctx, parts...)
	if err != nil {
		return "", 0, fmt.Errorf("gemini request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", 0, fmt.Errorf("gemini returned an empty response")
	}

	raw := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			raw += string(text)
		}
	}

	scoreStr, feedback, err := parseScoreAndFeedback(raw)
	if err != nil {
		return feedback, 0, err
	}
	score, err := strconv.ParseFloat(scoreStr, 64)
	if err != nil {
		return feedback, 0, fmt.Errorf("could not parse score %q from model response: %w", scoreStr, err)
	}
	if score < 0 {
		score = 0
	}
	if score > float64(question.Marks) {
		score = float64(question.Marks)
	}
	return feedback, score, nil
}

func parseScoreAndFeedback(rawResponse string) (scoreStr string, feedbackStr string, err error) {
	scorePrefix := "Score:"
	feedbackPrefix := "Feedback:"

	scoreIndex := strings.Index(rawResponse, scorePrefix)
	if scoreIndex == -1 {
		return "", rawResponse, fmt.Errorf("response does not contain 'Score:' prefix")
	}

	endOfScoreLine := strings.Index(rawResponse[scoreIndex:], "\n")
	if endOfScoreLine == -1 {
		scoreStr = strings.TrimSpace(rawResponse[scoreIndex+len(scorePrefix):])
	} else {
		scoreStr = strings.TrimSpace(rawResponse[scoreIndex+len(scorePrefix) : scoreIndex+endOfScoreLine])
	}

	feedbackIndex := strings.Index(rawResponse, feedbackPrefix)
	if feedbackIndex != -1 && feedbackIndex > scoreIndex {
		feedbackStr = strings.TrimSpace(rawResponse[feedbackIndex+len(feedbackPrefix):])
	} else if endOfScoreLine != -1 && len(rawResponse) > scoreIndex+endOfScoreLine+1 {
		feedbackStr = strings.TrimSpace(rawResponse[scoreIndex+endOfScoreLine+1:])
	} else {
		feedbackStr = "Feedback not found in the expected format after the score."
	}

	fields := strings.Fields(scoreStr)
	if len(fields) > 0 {
		scoreStr = fields[0]
	}
	return scoreStr, feedbackStr, nil
}
