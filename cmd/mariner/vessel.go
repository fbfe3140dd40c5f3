package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/mariner/internal/api"
	"github.com/JaimeStill/mariner/internal/infrastructure"
	"github.com/JaimeStill/mariner/internal/vessels"
)

func newVesselCommand(ctx *commandContext) *cobra.Command {
	var byIMO bool

	cmd := &cobra.Command{
		Use:   "vessel <mmsi>",
		Short: "Look up a vessel by MMSI (or IMO with --imo)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.offline(cmd.ErrOrStderr(), func(infra *infrastructure.Infrastructure, _ *api.Domain) error {
				var v *vessels.Vessel
				if byIMO {
					v = infra.Vessels.LookupIMO(cmd.Context(), args[0])
				} else {
					v = infra.Vessels.LookupMMSI(cmd.Context(), args[0])
				}
				if v == nil {
					return vessels.ErrNotFound
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderFields(out, [][2]string{
					{"Name", v.Name},
					{"MMSI", v.MMSI},
					{"IMO", v.IMO},
					{"Type", v.Type},
					{"Length", v.Length},
					{"Tonnage", v.Tonnage},
					{"Owner", v.Owner},
					{"Location", v.Location},
					{"Flag", v.Flag},
					{"Source", string(v.Source)},
				}))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&byIMO, "imo", false, "Treat the argument as an IMO number")
	return cmd
}
