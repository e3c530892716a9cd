package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/five82/nowcast/internal/app"
	"github.com/five82/nowcast/internal/frames"
	"github.com/five82/nowcast/internal/timestamp"
)

// framesOutput is the JSON shape printed by `nowcast frames --json`.
type framesOutput struct {
	Date               string         `json:"date"`
	LongDate           string         `json:"longDate"`
	BaseTimestamp      string         `json:"baseTimestamp"`
	FormattedTimestamp string         `json:"formattedTimestamp"`
	Frames             []frames.Frame `json:"timeIntervals"`
	Images             []string       `json:"images"`
}

func newFramesCmd(opts *app.Options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "frames [YYYY-MM-DD]",
		Short: "Print the frame sequence for a date",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(*opts)
			if err != nil {
				return err
			}
			date := ""
			if len(args) == 1 {
				date = args[0]
				if err := cfg.CheckDate(date); err != nil {
					return err
				}
			}
			seq, err := app.Sequence(cfg, date)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(framesOutput{
					Date:               seq.ISODate(),
					LongDate:           seq.LongDate,
					BaseTimestamp:      seq.BaseTimestamp,
					FormattedTimestamp: timestamp.Format(seq.BaseTimestamp),
					Frames:             seq.Frames,
					Images:             seq.Images,
				})
			}

			_, err = fmt.Fprintf(out, "%s - Satellite data from %s\n%s\n",
				seq.LongDate, timestamp.Format(seq.BaseTimestamp), renderFramesTable(seq))
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func renderFramesTable(seq frames.Sequence) string {
	rows := make([][]string, 0, seq.Len())
	for i, f := range seq.Frames {
		rows = append(rows, []string{strconv.Itoa(i + 1), f.Label, f.DisplayDate, f.Kind.Label(), seq.Images[i]})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Time", "Date", "Type", "Image").
		Rows(rows...).
		String()
}
