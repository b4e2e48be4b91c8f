package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/smazurov/framefit/internal/capture"
	"github.com/smazurov/framefit/internal/config"
	"github.com/smazurov/framefit/internal/devices"
	"github.com/smazurov/framefit/internal/logging"
	"github.com/smazurov/framefit/internal/resolution"
	"github.com/spf13/cobra"
)

// devicesOptions mirrors the server options the devices command shares.
type devicesOptions struct {
	Config       string
	ProfilesFile string `toml:"profiles.file" env:"PROFILES_FILE"`
	Target       string `toml:"capture.target" env:"CAPTURE_TARGET"`
	JSON         bool
}

// deviceReport is one line of devices output.
type deviceReport struct {
	DeviceID    string `json:"device_id"`
	DeviceName  string `json:"device_name"`
	Source      string `json:"source"`
	Preview     string `json:"preview,omitempty"`
	PreviewTier string `json:"preview_tier,omitempty"`
	Picture     string `json:"picture,omitempty"`
	PictureTier string `json:"picture_tier,omitempty"`
	Error       string `json:"error,omitempty"`
}

// CreateDevicesCmd creates the devices command.
func CreateDevicesCmd() *cobra.Command {
	opts := &devicesOptions{}

	cmd := &cobra.Command{
		Use:          "devices",
		Short:        "List devices and their negotiated sizes",
		Long:         `Lists V4L2 capture devices and profile devices with the preview and picture sizes chosen for --target.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadConfig(opts, cmd); err != nil {
				return err
			}
			logging.Initialize(config.LoadLoggingConfig(opts.Config))

			var target resolution.Target
			if opts.Target != "" {
				parsed, err := resolution.Parse(opts.Target)
				if err != nil {
					return fmt.Errorf("target: %w", err)
				}
				target = parsed
			}

			source, _, err := devices.Open(opts.ProfilesFile)
			if err != nil {
				return err
			}
			return runDevices(cmd.OutOrStdout(), capture.NewNegotiator(source, nil), target, opts.JSON)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "config.toml", "Path to configuration file")
	cmd.Flags().StringVar(&opts.ProfilesFile, "profiles-file", "", "Device profile file (TOML or YAML)")
	cmd.Flags().StringVarP(&opts.Target, "target", "t", "", "Requested resolution (default 1080x1920)")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Print the result as JSON")
	return cmd
}

func runDevices(w io.Writer, n *capture.Negotiator, target resolution.Target, jsonOut bool) error {
	found, err := n.Devices()
	if err != nil {
		return err
	}

	reports := make([]deviceReport, 0, len(found))
	for _, d := range found {
		report := deviceReport{DeviceID: d.DeviceID, DeviceName: d.DeviceName, Source: d.Source}
		result, err := n.Negotiate(d.DeviceID, target)
		if err != nil {
			report.Error = err.Error()
		} else {
			report.Preview = result.Preview.Resolution.String()
			report.PreviewTier = string(result.Preview.Tier)
			report.Picture = result.Picture.Resolution.String()
			report.PictureTier = string(result.Picture.Tier)
		}
		reports = append(reports, report)
	}

	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	if len(reports) == 0 {
		_, err := fmt.Fprintln(w, "No devices found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DEVICE\tNAME\tSOURCE\tPREVIEW\tPICTURE")
	for _, r := range reports {
		if r.Error != "" {
			fmt.Fprintf(tw, "%s\t%s\t%s\terror: %s\t\n", r.DeviceID, r.DeviceName, r.Source, r.Error)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s (%s)\t%s (%s)\n",
			r.DeviceID, r.DeviceName, r.Source, r.Preview, r.PreviewTier, r.Picture, r.PictureTier)
	}
	return tw.Flush()
}
