package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mhasanmeet/quizvent/config"
	"github.com/rs/zerolog/log"
)

// MaxImagesPerAnswer caps the number of supporting images per answer.
const MaxImagesPerAnswer = 5

// UploadFile is an in-memory file received from a multipart submission.
type UploadFile struct {
	Name string
	Data []byte
}

// UploadStore persists answer images and serves them back for review.
type UploadStore interface {
	Save(participationID, questionID uint, file UploadFile) (url string, err error)
	Read(url string) ([]byte, error)
}

type localUploadStore struct {
	dir string
}

func NewUploadStore(cfg *config.Config) UploadStore {
	return &localUploadStore{dir: cfg.UploadDir}
}

func (s *localUploadStore) Save(participationID, questionID uint, file UploadFile) (string, error) {
	rel := filepath.Join("participations",
		fmt.Sprintf("%d", participationID),
		fmt.Sprintf("%d", questionID),
		uuid.NewString()+strings.ToLower(filepath.Ext(file.Name)),
	)
	full := filepath.Join(s.dir, rel)

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(full, file.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write uploaded file: %w", err)
	}

	url := "/uploads/" + filepath.ToSlash(rel)
	log.Info().Str("url", url).Int("bytes", len(file.Data)).Msg("Answer image stored")
	return url, nil
}

func (s *localUploadStore) Read(url string) ([]byte, error) {
	rel := strings.TrimPrefix(url, "/uploads/")
	if rel == url {
		return nil, fmt.Errorf("unrecognized upload url %q", url)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, filepath.FromSlash(rel)))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file %q: %w", url, err)
	}
	return data, nil
}
