package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/mariner/internal/api"
	"github.com/JaimeStill/mariner/internal/identifications"
	"github.com/JaimeStill/mariner/internal/infrastructure"
	"github.com/JaimeStill/mariner/pkg/formatting"
)

func newIdentifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "identify <image>",
		Short: "Identify a boat photo and record the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}

			return ctx.offline(cmd.ErrOrStderr(), func(_ *infrastructure.Infrastructure, domain *api.Domain) error {
				result, err := domain.Identifications.Identify(cmd.Context(), identifications.IdentifyCommand{
					Filename:    filepath.Base(path),
					ContentType: http.DetectContentType(data),
					Data:        data,
				})
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderIdentifyResult(out, result, int64(len(data))))
				return nil
			})
		},
	}
}

func renderIdentifyResult(w io.Writer, r *identifications.IdentifyResult, size int64) string {
	c := r.Classification
	fields := [][2]string{
		{"ID", strconv.FormatInt(r.Identification.ID, 10)},
		{"Image", r.ImageURL},
		{"Size", formatting.FormatBytes(size, 1)},
		{"Mode", string(c.Mode)},
		{"Boat type", c.BoatType},
		{"Brand", deref(c.Brand)},
		{"Model", deref(c.Model)},
		{"Confidence", formatting.FormatPercent(c.Confidence, 1)},
		{"Labels", strings.Join(c.LabelNames(), ", ")},
		{"Colors", strings.Join(c.ColorValues(), ", ")},
	}

	if v := r.Vessel; v != nil {
		fields = append(fields,
			[2]string{"Vessel", v.Name},
			[2]string{"MMSI", v.MMSI},
			[2]string{"IMO", v.IMO},
			[2]string{"Owner", v.Owner},
			[2]string{"Location", v.Location},
			[2]string{"Source", string(v.Source)},
		)
	}

	return renderFields(w, fields)
}
