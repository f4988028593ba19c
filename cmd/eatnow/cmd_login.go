package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kdudkov/eatnow/pkg/model"
)

func newLoginCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "login <id>",
		Short: "Store the user id as the session token and load the profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := opts.newApp(cmd)
			if err != nil {
				return err
			}

			defer a.Close()

			if err := a.Login(cmd.Context(), args[0]); err != nil {
				return err
			}

			u := a.Users.User()

			return opts.render(cmd, u, func(w io.Writer) { printUser(w, &u) })
		},
	}
}

func newLogoutCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, _, err := opts.newApp(cmd)
			if err != nil {
				return err
			}

			defer a.Close()

			if err := a.Logout(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "logged out")

			return nil
		},
	}
}

func printUser(w io.Writer, u *model.User) {
	fmt.Fprintf(w, "id:           %s\n", u.ID)
	fmt.Fprintf(w, "username:     %s\n", u.Username)
	fmt.Fprintf(w, "description:  %s\n", u.Description)
	fmt.Fprintf(w, "email:        %s\n", u.Email)
	fmt.Fprintf(w, "available:    %t\n", u.Availability)
	fmt.Fprintf(w, "share gps:    %t\n", u.ShareGPS)
	fmt.Fprintf(w, "year:         %s\n", u.YearOfEntry)
	fmt.Fprintf(w, "major:        %s\n", u.Major)
	fmt.Fprintf(w, "gender:       %s\n", u.Gender)
	fmt.Fprintf(w, "age:          %s\n", u.Age)
	fmt.Fprintf(w, "college:      %s\n", u.College)

	if u.Latitude != 0 || u.Longitude != 0 {
		fmt.Fprintf(w, "position:     %.6f %.6f\n", u.Latitude, u.Longitude)
	}
}
