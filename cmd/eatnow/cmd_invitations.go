package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kdudkov/eatnow/internal/app"
	"github.com/kdudkov/eatnow/pkg/model"
)

type invitationView struct {
	ID        string `yaml:"id"`
	With      string `yaml:"with"`
	WithID    string `yaml:"with_id"`
	AvatarURL string `yaml:"avatar_url"`
	Category  string `yaml:"category"`
	SentByMe  bool   `yaml:"sent_by_me"`
}

func newInvitationsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:       "invitations <sent|received|accepted>",
		Short:     "List invitations of a category",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(model.CategorySent), string(model.CategoryReceived), string(model.CategoryAccepted)},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.session(cmd)
			if err != nil {
				return err
			}

			defer a.Close()

			category := model.CategorySent

			if len(args) == 1 {
				if category, err = model.ParseCategory(args[0]); err != nil {
					return err
				}
			}

			if err := a.Invitations.Select(cmd.Context(), category); err != nil {
				return err
			}

			views := invitationViews(a)

			return opts.render(cmd, views, func(w io.Writer) {
				if len(views) == 0 {
					fmt.Fprintf(w, "no %s invitations\n", category)
					return
				}

				for _, v := range views {
					fmt.Fprintf(w, "%-8s %-20s %-8s %s\n", v.ID, v.With, v.WithID, v.AvatarURL)
				}
			})
		},
	}
}

func invitationViews(a *app.App) []invitationView {
	list := a.Invitations.Invitations()
	res := make([]invitationView, 0, len(list))
	me := a.Session.ID()

	for _, inv := range list {
		res = append(res, invitationView{
			ID:        inv.InvitationID.String(),
			With:      a.Invitations.DisplayName(inv),
			WithID:    a.Invitations.CounterpartID(inv),
			AvatarURL: a.Invitations.AvatarURL(inv),
			Category:  string(inv.Category),
			SentByMe:  inv.IsSentBy(me),
		})
	}

	return res
}
