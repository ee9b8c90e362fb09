package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"streamdetails/internal/store"
)

func newStoreCommand(ctx *commandContext) *cobra.Command {
	storeCmd := &cobra.Command{
		Use:   "store",
		Short: "Manage the stream details database",
	}

	storeCmd.AddCommand(newStorePutCommand(ctx))
	storeCmd.AddCommand(newStoreGetCommand(ctx))
	storeCmd.AddCommand(newStoreListCommand(ctx))
	storeCmd.AddCommand(newStoreRemoveCommand(ctx))
	storeCmd.AddCommand(newStoreStatsCommand(ctx))

	return storeCmd
}

func newStorePutCommand(ctx *commandContext) *cobra.Command {
	var reportPath string

	cmd := &cobra.Command{
		Use:   "put <media-path>",
		Short: "Store the streams of a media file, probing it unless --ffprobe is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			details, err := loadDetails(cmd.Context(), cfg, reportPath, args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(s *store.Store) error {
				rec, err := s.Put(cmd.Context(), args[0], details)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Stored %s (%s) as %s\n", rec.MediaPath, countSummary(rec.Details), rec.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&reportPath, "ffprobe", "", "Saved ffprobe JSON report to use instead of running ffprobe")
	return cmd
}

func newStoreGetCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "get <media-path>",
		Short: "Show the stored streams of a media file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return ctx.withStore(func(s *store.Store) error {
				rec, err := s.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if rec == nil {
					return fmt.Errorf("no stream details stored for %s", strings.TrimSpace(args[0]))
				}
				if jsonOutput {
					return writeJSON(cmd, recordView(rec, true))
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s\n", rec.MediaPath)
				fmt.Fprintf(out, "ID: %s  Updated: %s  Sealed: %s\n", rec.ID, rec.UpdatedAt.Local().Format(time.DateTime), yesNo(rec.Sealed))
				renderDetails(out, rec.Details, cfg.SubtitleRanking())
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON")
	return cmd
}

func newStoreListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored media files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(s *store.Store) error {
				records, err := s.List(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput {
					views := make([]storeRecordView, 0, len(records))
					for _, rec := range records {
						views = append(views, recordView(rec, false))
					}
					return writeJSON(cmd, views)
				}
				out := cmd.OutOrStdout()
				if len(records) == 0 {
					fmt.Fprintln(out, "No stored media")
					return nil
				}
				rows := make([][]string, 0, len(records))
				for _, rec := range records {
					rows = append(rows, []string{
						rec.MediaPath,
						fmt.Sprintf("%d/%d/%d", rec.VideoCount, rec.AudioCount, rec.SubtitleCount),
						rec.VideoCodec,
						rec.Resolution,
						rec.Aspect,
						strings.TrimSpace(rec.AudioCodec + " " + channelsOrBlank(rec)),
						rec.SubtitleLanguage,
					})
				}
				headers := []string{"Media", "V/A/S", "Video", "Res", "Aspect", "Audio", "Subtitle"}
				aligns := []columnAlignment{alignLeft, alignRight, alignLeft, alignRight, alignRight, alignLeft, alignLeft}
				fmt.Fprintln(out, renderTable(out, headers, rows, aligns))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON")
	return cmd
}

func newStoreRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <media-path>",
		Short: "Remove the stored streams of a media file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(s *store.Store) error {
				removed, err := s.Remove(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !removed {
					fmt.Fprintf(cmd.OutOrStdout(), "Nothing stored for %s\n", strings.TrimSpace(args[0]))
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", strings.TrimSpace(args[0]))
				return nil
			})
		},
	}
}

func newStoreStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count stored media by resolution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(s *store.Store) error {
				stats, err := s.Stats(cmd.Context())
				if err != nil {
					return err
				}
				labels := make([]string, 0, len(stats))
				total := 0
				for label, count := range stats {
					labels = append(labels, label)
					total += count
				}
				sort.Strings(labels)
				rows := make([][]string, 0, len(labels)+1)
				for _, label := range labels {
					name := label
					if name == "" {
						name = "no video"
					}
					rows = append(rows, []string{name, fmt.Sprint(stats[label])})
				}
				rows = append(rows, []string{"total", fmt.Sprint(total)})
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderTable(out, []string{"Resolution", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))
				return nil
			})
		},
	}
}

func channelsOrBlank(rec *store.Record) string {
	if rec.AudioCount == 0 {
		return ""
	}
	return formatChannels(rec.AudioChannels) + "ch"
}

type storeRecordView struct {
	ID               string `json:"id"`
	MediaPath        string `json:"media_path"`
	Sealed           bool   `json:"sealed"`
	VideoCount       int    `json:"video_count"`
	AudioCount       int    `json:"audio_count"`
	SubtitleCount    int    `json:"subtitle_count"`
	VideoCodec       string `json:"video_codec,omitempty"`
	Resolution       string `json:"resolution,omitempty"`
	Aspect           string `json:"aspect,omitempty"`
	DurationSeconds  int    `json:"duration_seconds,omitempty"`
	AudioCodec       string `json:"audio_codec,omitempty"`
	AudioChannels    int    `json:"audio_channels"`
	SubtitleLanguage string `json:"subtitle_language,omitempty"`
	UpdatedAt        string `json:"updated_at"`
	Streams          any    `json:"streams,omitempty"`
}

func recordView(rec *store.Record, withStreams bool) storeRecordView {
	view := storeRecordView{
		ID:               rec.ID,
		MediaPath:        rec.MediaPath,
		Sealed:           rec.Sealed,
		VideoCount:       rec.VideoCount,
		AudioCount:       rec.AudioCount,
		SubtitleCount:    rec.SubtitleCount,
		VideoCodec:       rec.VideoCodec,
		Resolution:       rec.Resolution,
		Aspect:           rec.Aspect,
		DurationSeconds:  rec.DurationSeconds,
		AudioCodec:       rec.AudioCodec,
		AudioChannels:    rec.AudioChannels,
		SubtitleLanguage: rec.SubtitleLanguage,
		UpdatedAt:        rec.UpdatedAt.Format(time.RFC3339),
	}
	if withStreams && rec.Details != nil {
		view.Streams = rec.Details
	}
	return view
}
