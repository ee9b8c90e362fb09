package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"streamdetails/internal/streams"
)

func newLabelCommand() *cobra.Command {
	labelCmd := &cobra.Command{
		Use:         "label",
		Short:       "Classify resolutions and aspect ratios",
		Annotations: map[string]string{"skipConfigLoad": "true"},
	}

	labelCmd.AddCommand(&cobra.Command{
		Use:   "resolution <width> <height>",
		Short: "Print the resolution label for a frame size",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			width, err := parseDimension("width", args[0])
			if err != nil {
				return err
			}
			height, err := parseDimension("height", args[1])
			if err != nil {
				return err
			}
			label := streams.ResolutionLabel(width, height)
			if label == "" {
				label = "unknown"
			}
			fmt.Fprintln(cmd.OutOrStdout(), label)
			return nil
		},
	})

	labelCmd.AddCommand(&cobra.Command{
		Use:   "aspect <ratio>",
		Short: "Print the aspect label for a ratio such as 1.78 or 16:9",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ratio, err := parseRatio(args[0])
			if err != nil {
				return err
			}
			label := streams.AspectLabel(ratio)
			if label == "" {
				label = "unknown"
			}
			fmt.Fprintln(cmd.OutOrStdout(), label)
			return nil
		},
	})

	return labelCmd
}

func parseDimension(name, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	return n, nil
}

func parseRatio(value string) (float32, error) {
	value = strings.TrimSpace(value)
	if num, den, ok := strings.Cut(value, ":"); ok {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 != nil || err2 != nil || n < 0 || d <= 0 {
			return 0, fmt.Errorf("invalid ratio %q", value)
		}
		return float32(n / d), nil
	}
	f, err := strconv.ParseFloat(value, 32)
	if err != nil || f < 0 {
		return 0, fmt.Errorf("invalid ratio %q", value)
	}
	return float32(f), nil
}
