package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-contactform/internal/tui"
	"github.com/goliatone/go-contactform/pkg/contact"
)

func newSubmitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "submit",
		Short: "Fill in and send the contact form from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.submit(cmd.Context())
		},
	}
}

func (a *app) submit(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	driver := a.prompt
	if driver == nil {
		driver = tui.NewSurveyDriver(a.out)
	}

	controller := a.controller()
	defer controller.Close()

	if err := tui.CollectContact(ctx, driver, controller.Form()); err != nil {
		if errors.Is(err, tui.ErrDeclined) {
			return driver.Info(ctx, "Submission cancelled: agreement is required.")
		}
		return err
	}

	post, err := controller.Submit(ctx)
	if err != nil {
		if errors.Is(err, contact.ErrInvalidForm) {
			return err
		}
		return fmt.Errorf("%s: %w", contact.MsgSubmitFailed, err)
	}
	return driver.Info(ctx, fmt.Sprintf("Message sent as post #%d: %s", post.ID, post.Title))
}
