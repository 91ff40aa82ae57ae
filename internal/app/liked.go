package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/cristianoliveira/form-intray/internal/colors"
	"github.com/cristianoliveira/form-intray/internal/controller"
	"github.com/cristianoliveira/form-intray/internal/tui/render"
)

const (
	// FormatSimple prints one line per liked submission.
	FormatSimple = "simple"
	// FormatJSON prints the liked collection as a JSON array.
	FormatJSON = "json"
)

// LikedClient defines dependencies required to list liked submissions.
type LikedClient interface {
	Initialize(ctx context.Context) error
	Snapshot() controller.State
}

// LikedInput represents liked command inputs after flag parsing.
type LikedInput struct {
	Format string
}

// LikedUseCase coordinates listing liked submissions.
type LikedUseCase struct {
	client LikedClient
}

// NewLikedUseCase creates a new liked use-case.
func NewLikedUseCase(client LikedClient) *LikedUseCase {
	if client == nil {
		panic("NewLikedUseCase: client dependency cannot be nil")
	}
	return &LikedUseCase{client: client}
}

// ValidateLikedFormat validates the liked output format.
func ValidateLikedFormat(format string) error {
	switch format {
	case "", FormatSimple, FormatJSON:
		return nil
	default:
		return fmt.Errorf("liked: unknown format: %s", format)
	}
}

// Execute loads the liked collection and prints it to w.
func (u *LikedUseCase) Execute(ctx context.Context, input LikedInput, w io.Writer) error {
	if err := ValidateLikedFormat(input.Format); err != nil {
		return err
	}
	if err := u.client.Initialize(ctx); err != nil {
		return fmt.Errorf("liked: %w", err)
	}
	liked := u.client.Snapshot().Liked

	if input.Format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(liked); err != nil {
			return fmt.Errorf("liked: encode: %w", err)
		}
		return nil
	}

	if len(liked) == 0 {
		_, _ = fmt.Fprintf(w, "%s%s%s\n", colors.Blue, "No liked submissions yet.", colors.Reset)
		return nil
	}
	for _, s := range liked {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", s.ID, render.LikedText(s))
	}
	return nil
}
