package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/form-intray/internal/colors"
	"github.com/cristianoliveira/form-intray/internal/submission"
	"github.com/google/uuid"
)

const maxPayloadBytes = 1 << 20

// LikeClient defines dependencies required to like a submission.
type LikeClient interface {
	Initialize(ctx context.Context) error
	LikeSubmission(ctx context.Context, s submission.Submission) error
}

// LikeInput represents like command inputs after flag parsing.
type LikeInput struct {
	// Payload is a JSON submission, either {"id":..,"data":{..}} or a bare data object.
	Payload io.Reader
	// NewID generates an ID when the payload has none.
	NewID func() string
}

// LikeUseCase coordinates liking a submission outside the TUI.
type LikeUseCase struct {
	client LikeClient
}

// NewLikeUseCase creates a new like use-case.
func NewLikeUseCase(client LikeClient) *LikeUseCase {
	if client == nil {
		panic("NewLikeUseCase: client dependency cannot be nil")
	}
	return &LikeUseCase{client: client}
}

// Execute parses the payload and persists it as liked. A failed liked-list load is
// only a warning: the save does not depend on it.
func (u *LikeUseCase) Execute(ctx context.Context, input LikeInput) error {
	newID := input.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	s, err := ParseSubmission(input.Payload, newID)
	if err != nil {
		return err
	}

	if err := u.client.Initialize(ctx); err != nil {
		colors.Warning(fmt.Sprintf("like: %v", err))
	}
	if err := u.client.LikeSubmission(ctx, s); err != nil {
		return fmt.Errorf("like: %w", err)
	}

	colors.Success("Liked " + describe(s))
	return nil
}

// ParseSubmission decodes a submission from r. A payload without "id" and "data"
// keys is taken as the data object itself.
func ParseSubmission(r io.Reader, newID func() string) (submission.Submission, error) {
	if r == nil {
		return submission.Submission{}, errors.New("like: payload is required")
	}
	raw, err := io.ReadAll(io.LimitReader(r, maxPayloadBytes))
	if err != nil {
		return submission.Submission{}, fmt.Errorf("like: read payload: %w", err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return submission.Submission{}, errors.New("like: payload cannot be empty")
	}

	var envelope struct {
		ID   *string         `json:"id"`
		Data submission.Data `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return submission.Submission{}, fmt.Errorf("like: invalid JSON: %w", err)
	}

	var s submission.Submission
	if envelope.ID != nil || envelope.Data != nil {
		s = submission.New(strings.TrimSpace(deref(envelope.ID)), envelope.Data)
	} else {
		var data submission.Data
		if err := json.Unmarshal(raw, &data); err != nil {
			return submission.Submission{}, fmt.Errorf("like: data fields must be strings: %w", err)
		}
		s = submission.New("", data)
	}
	if s.ID == "" {
		s.ID = newID()
	}
	if s.Data == nil {
		s.Data = submission.Data{}
	}
	return s, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func describe(s submission.Submission) string {
	if name := s.Data.FullName(); name != "" {
		return name + " (" + s.ID + ")"
	}
	return s.ID
}
