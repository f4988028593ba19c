package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kdudkov/eatnow/internal/dateselect"
)

func newTimeSlotCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeslot",
		Short: "Choose when to eat",
	}

	var day, hour string

	set := &cobra.Command{
		Use:   "set",
		Short: "Store a one hour slot starting at the chosen time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, _, err := opts.newApp(cmd)
			if err != nil {
				return err
			}

			defer a.Close()

			if err := a.TimeSlot.SetDay(day); err != nil {
				return err
			}

			if err := a.TimeSlot.SetHour(hour); err != nil {
				return err
			}

			slot, err := a.TimeSlot.Confirm(cmd.Context())
			if err != nil {
				return err
			}

			return opts.render(cmd, slot, func(w io.Writer) {
				fmt.Fprintf(w, "%s - %s\n", slot.Start, slot.End)
			})
		},
	}

	set.Flags().StringVar(&day, "day", dateselect.DefaultDay, "today or tomorrow")
	set.Flags().StringVar(&hour, "hour", dateselect.DefaultHour, "start time, HH:mm")

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the stored slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, _, err := opts.newApp(cmd)
			if err != nil {
				return err
			}

			defer a.Close()

			slot, err := a.TimeSlot.Current(cmd.Context())
			if err != nil {
				return err
			}

			return opts.render(cmd, slot, func(w io.Writer) {
				if slot == nil {
					fmt.Fprintln(w, "no time slot selected")
					return
				}

				fmt.Fprintf(w, "%s - %s\n", slot.Start, slot.End)
			})
		},
	}

	cmd.AddCommand(set, show)

	return cmd
}
