package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kdudkov/eatnow/pkg/model"
)

type profileFlags struct {
	username     string
	description  string
	email        string
	availability bool
	shareGPS     bool
	year         string
	major        string
	gender       string
	age          string
	college      string
}

func newProfileCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile [id]",
		Short: "Show your profile or the profile of another user",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.session(cmd)
			if err != nil {
				return err
			}

			defer a.Close()

			var u *model.User

			if len(args) == 1 && args[0] != a.Session.ID() {
				if u, err = a.Users.GetUserProfile(cmd.Context(), args[0]); err != nil {
					return err
				}
			} else {
				if err := a.Users.GetLatestUserProfile(cmd.Context()); err != nil {
					return err
				}

				me := a.Users.User()
				u = &me
			}

			return opts.render(cmd, u, func(w io.Writer) { printUser(w, u) })
		},
	}

	cmd.AddCommand(newProfileUpdateCmd(opts))

	return cmd
}

func newProfileUpdateCmd(opts *options) *cobra.Command {
	pf := new(profileFlags)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change profile fields and send them to the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.session(cmd)
			if err != nil {
				return err
			}

			defer a.Close()

			// start from the server copy so untouched fields survive
			if err := a.Users.GetLatestUserProfile(cmd.Context()); err != nil {
				return err
			}

			changed := cmd.Flags().Changed

			a.Users.Update(func(u *model.User) {
				setIf(changed("username"), &u.Username, pf.username)
				setIf(changed("description"), &u.Description, pf.description)
				setIf(changed("email"), &u.Email, pf.email)
				setIf(changed("availability"), &u.Availability, pf.availability)
				setIf(changed("share-gps"), &u.ShareGPS, pf.shareGPS)
				setIf(changed("year"), &u.YearOfEntry, pf.year)
				setIf(changed("major"), &u.Major, pf.major)
				setIf(changed("gender"), &u.Gender, pf.gender)
				setIf(changed("age"), &u.Age, pf.age)
				setIf(changed("college"), &u.College, pf.college)
			})

			if err := a.Users.UploadUserProfile(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "profile updated")

			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&pf.username, "username", "", "user name")
	f.StringVar(&pf.description, "description", "", "about you")
	f.StringVar(&pf.email, "email", "", "email")
	f.BoolVar(&pf.availability, "availability", false, "available to eat now")
	f.BoolVar(&pf.shareGPS, "share-gps", false, "share your location")
	f.StringVar(&pf.year, "year", "", "year of entry")
	f.StringVar(&pf.major, "major", "", "major")
	f.StringVar(&pf.gender, "gender", "", "gender")
	f.StringVar(&pf.age, "age", "", "age")
	f.StringVar(&pf.college, "college", "", "college")

	return cmd
}

func setIf[T any](ok bool, dst *T, v T) {
	if ok {
		*dst = v
	}
}

func newLocationCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "location",
		Short: "Send your current position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.session(cmd)
			if err != nil {
				return err
			}

			defer a.Close()

			ack, err := a.Users.UploadLocation(cmd.Context())
			if err != nil {
				return err
			}

			u := a.Users.User()
			fmt.Fprintf(cmd.OutOrStdout(), "%.6f %.6f: %s\n", u.Latitude, u.Longitude, ack)

			return nil
		},
	}
}
