package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/mariner/internal/api"
	"github.com/JaimeStill/mariner/internal/identifications"
	"github.com/JaimeStill/mariner/internal/infrastructure"
	"github.com/JaimeStill/mariner/pkg/formatting"
	"github.com/JaimeStill/mariner/pkg/pagination"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var (
		limit   int
		offset  int
		search  string
		filters identifications.Filters
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded identifications, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page := pagination.PageRequest{Limit: limit, Offset: offset}
			if search != "" {
				page.Search = &search
			}

			return ctx.offline(cmd.ErrOrStderr(), func(_ *infrastructure.Infrastructure, domain *api.Domain) error {
				items, err := domain.Identifications.List(cmd.Context(), page, filters)
				if err != nil {
					return err
				}
				total, err := domain.Identifications.Count(cmd.Context(), page, filters)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(items) == 0 {
					fmt.Fprintln(out, "No identifications found.")
					return nil
				}
				fmt.Fprintln(out, renderHistory(out, items))
				fmt.Fprintf(out, "Showing %d of %d\n", len(items), total)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum rows to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "Rows to skip")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by boat type, brand, or vessel name")
	cmd.Flags().StringVar(&filters.BoatType, "type", "", "Exact boat type")
	cmd.Flags().StringVar(&filters.MMSI, "mmsi", "", "Exact MMSI")
	cmd.Flags().StringVar(&filters.Vessel, "vessel", "", "Vessel name substring")

	return cmd
}

func renderHistory(w io.Writer, items []identifications.Identification) string {
	rows := make([][]string, 0, len(items))
	for _, i := range items {
		rows = append(rows, []string{
			strconv.FormatInt(i.ID, 10),
			i.IdentifiedAt.Local().Format(time.DateTime),
			i.BoatType,
			deref(i.BoatBrand),
			formatting.FormatPercent(i.Confidence, 0),
			deref(i.VesselName),
			deref(i.MMSI),
		})
	}

	return renderTable(
		w,
		[]string{"ID", "Identified", "Type", "Brand", "Confidence", "Vessel", "MMSI"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight},
	)
}
