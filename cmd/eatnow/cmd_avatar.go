package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newAvatarCmd(opts *options) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "avatar <id>",
		Short: "Download the profile picture of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.session(cmd)
			if err != nil {
				return err
			}

			defer a.Close()

			dat, err := a.Users.Avatar(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			name := out
			if name == "" {
				name = args[0] + ".img"
			}

			if err := os.WriteFile(name, dat, 0o644); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d bytes\n", name, len(dat))

			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "file to write, <id>.img by default")

	return cmd
}
