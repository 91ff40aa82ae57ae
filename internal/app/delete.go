package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/cristianoliveira/form-intray/internal/colors"
)

// DeleteClient defines dependencies required to delete liked submissions.
type DeleteClient interface {
	Initialize(ctx context.Context) error
	DeleteLiked(ctx context.Context, id string) error
}

// DeleteInput represents delete command inputs after flag parsing.
type DeleteInput struct {
	Args []string
}

// DeleteUseCase coordinates deleting liked submissions.
type DeleteUseCase struct {
	client DeleteClient
}

// NewDeleteUseCase creates a new delete use-case.
func NewDeleteUseCase(client DeleteClient) *DeleteUseCase {
	if client == nil {
		panic("NewDeleteUseCase: client dependency cannot be nil")
	}
	return &DeleteUseCase{client: client}
}

// Execute deletes every ID in input.Args, stopping at the first failure.
func (u *DeleteUseCase) Execute(ctx context.Context, input DeleteInput) error {
	if len(input.Args) == 0 {
		return fmt.Errorf("delete: specify at least one id")
	}
	for _, id := range input.Args {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("delete: id cannot be empty")
		}
	}

	if err := u.client.Initialize(ctx); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	for _, id := range input.Args {
		if err := u.client.DeleteLiked(ctx, id); err != nil {
			return fmt.Errorf("delete: %w", err)
		}
		colors.Success("Submission " + id + " deleted")
	}
	return nil
}
