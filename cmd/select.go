package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/smazurov/framefit/internal/resolution"
	"github.com/spf13/cobra"
)

// CreateSelectCmd creates the select command.
func CreateSelectCmd() *cobra.Command {
	var target string
	var preview string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "select [WxH ...]",
		Short: "Pick the best resolution for a target",
		Long: `Chooses among candidate resolutions the one that best fits --target: ` +
			`an exact match in either orientation, then the largest candidate within 0.05 of the ` +
			`target aspect ratio, then the largest candidate. Candidates may be separated by spaces or commas. ` +
			`With --preview the candidates are treated as picture sizes and a size equal to the preview wins.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelect(cmd.OutOrStdout(), args, target, preview, jsonOut)
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "1080x1920", "Requested resolution")
	cmd.Flags().StringVar(&preview, "preview", "", "Chosen preview size; selects a picture size instead")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the result as JSON")
	return cmd
}

func runSelect(w io.Writer, args []string, targetArg, previewArg string, jsonOut bool) error {
	candidates, err := resolution.ParseList(strings.Join(args, " "))
	if err != nil {
		return err
	}
	target, err := resolution.Parse(targetArg)
	if err != nil {
		return fmt.Errorf("target: %w", err)
	}

	var sel resolution.Selection
	if previewArg != "" {
		preview, parseErr := resolution.Parse(previewArg)
		if parseErr != nil {
			return fmt.Errorf("preview: %w", parseErr)
		}
		sel, err = resolution.SelectPicture(candidates, preview, target)
	} else {
		sel, err = resolution.Select(candidates, target)
	}
	if err != nil {
		return err
	}

	if jsonOut {
		return json.NewEncoder(w).Encode(sel)
	}
	_, err = fmt.Fprintf(w, "%s (%s)\n", sel.Resolution, sel.Tier)
	return err
}
