package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/mariner/internal/api"
	"github.com/JaimeStill/mariner/internal/infrastructure"
	"github.com/JaimeStill/mariner/pkg/openapi"
)

func newOpenAPICommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			infra, err := infrastructure.New(cfg)
			if err != nil {
				return err
			}
			spec := api.Spec(cfg, infra)

			if output != "" {
				return openapi.WriteJSON(spec, output)
			}

			data, err := openapi.MarshalJSON(spec)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}
