/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"

	"github.com/cristianoliveira/form-intray/internal/config"
	"github.com/cristianoliveira/form-intray/internal/controller"
	"github.com/cristianoliveira/form-intray/internal/errors"
	"github.com/cristianoliveira/form-intray/internal/logging"
	"github.com/cristianoliveira/form-intray/internal/storage"
)

// storeFactory builds the configured liked-submission store. Tests replace it.
var storeFactory = storage.NewFromConfig

func newController(store storage.Store, reporter errors.ErrorHandler) *controller.Controller {
	return controller.New(store,
		controller.WithLogger(logging.GetGlobal()),
		controller.WithReporter(reporter),
		controller.WithLikedBlocksAdmission(config.GetBool("liked_blocks_admission", true)),
	)
}

// withController opens the store, runs fn with a fresh controller and closes the store.
func withController(ctx context.Context, reporter errors.ErrorHandler, fn func(*controller.Controller) error) error {
	store, err := storeFactory(ctx)
	if err != nil {
		return err
	}
	defer storage.Close(store)
	return fn(newController(store, reporter))
}
