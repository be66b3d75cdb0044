package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"service-booking/internal/availability"
	"service-booking/internal/data/entity"
	"service-booking/pkg/utils"

	"github.com/spf13/cobra"
)

func newSlotsCmd() *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Print the bookable dates and time slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := utils.LoadConfig()
			if err != nil {
				return err
			}

			loc := config.App.Location()
			now := time.Now().In(loc)
			if at != "" {
				if now, err = time.ParseInLocation("2006-01-02T15:04", at, loc); err != nil {
					return fmt.Errorf("--at must be formatted as 2006-01-02T15:04: %w", err)
				}
			}

			w := availability.Window{
				StartHour:   config.Booking.ServiceStartHour,
				EndHour:     config.Booking.ServiceEndHour,
				BufferHours: config.Booking.BufferHours,
				SlotHours:   config.Booking.SlotHours,
			}
			return printSlots(cmd.OutOrStdout(), now, w, config.Booking.HorizonDays)
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "evaluate at this local time (2006-01-02T15:04) instead of now")
	return cmd
}

func printSlots(out io.Writer, now time.Time, w availability.Window, horizonDays int) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "now %s, same-day cutoff %02d:00\n\n", now.Format("Mon, Jan 2 15:04"), w.CutoffHour())
	fmt.Fprintln(tw, "DATE\tLABEL\tSLOTS")

	for _, d := range availability.AvailableDates(now, w, horizonDays) {
		slots := availability.AvailableTimes(d.Date, now, w)
		starts := make([]string, len(slots))
		for i, s := range slots {
			starts[i] = s.Start
		}
		if len(starts) == 0 {
			starts = []string{"-"}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Value, d.Label, strings.Join(starts, " "))
	}

	fmt.Fprintf(tw, "\ndomains: %s, %s, %s\n", entity.DomainHomeServices, entity.DomainApplianceRepairs, entity.DomainProfessionalServices)
	return tw.Flush()
}
