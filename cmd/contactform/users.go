package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-contactform/internal/tui"
	"github.com/goliatone/go-contactform/pkg/model"
)

func newUsersCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "users",
		Short: "Print users and the latest posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("limit") {
				a.cfg.API.PostsLimit = limit
				a.cfg = a.cfg.Normalize()
			}
			return a.printUsers(cmd.Context())
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "number of posts to print (overrides config)")
	return cmd
}

func (a *app) printUsers(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	client := a.client()

	var (
		users []model.User
		posts []model.Post
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = client.ListUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		posts, err = client.ListPosts(gctx, a.cfg.API.PostsLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	userTable := tui.NewTable("Users", "ID", "Name", "Email", "Phone", "Website")
	userTable.Empty = "No users."
	for _, u := range users {
		userTable.AddRow(strconv.Itoa(u.ID), u.Name, u.Email, u.Phone, u.Website)
	}

	postTable := tui.NewTable("Posts", "ID", "User", "Title")
	postTable.Empty = "No posts."
	for _, p := range posts {
		postTable.AddRow(strconv.Itoa(p.ID), strconv.Itoa(p.UserID), p.Title)
	}

	_, err := fmt.Fprintf(a.out, "%s\n%s", userTable.View(), postTable.View())
	return err
}
