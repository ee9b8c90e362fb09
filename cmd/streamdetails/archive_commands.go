package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"streamdetails/internal/config"
	"streamdetails/internal/fileutil"
	"streamdetails/internal/logging"
	"streamdetails/internal/media/ffprobe"
	"streamdetails/internal/streams"
	"streamdetails/internal/variant"
)

func newEncodeCommand(ctx *commandContext) *cobra.Command {
	var reportPath string
	var mediaPath string
	var outPath string
	var sealed bool

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Archive the streams of an ffprobe report or media file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if strings.TrimSpace(outPath) == "" {
				return errors.New("--out is required")
			}
			if (strings.TrimSpace(reportPath) == "") == (strings.TrimSpace(mediaPath) == "") {
				return errors.New("exactly one of --ffprobe or --media is required")
			}
			target, err := config.ExpandPath(outPath)
			if err != nil {
				return fmt.Errorf("resolve output path: %w", err)
			}

			start := time.Now()
			details, err := loadDetails(cmd.Context(), cfg, reportPath, mediaPath)
			if err != nil {
				return err
			}
			data, err := streams.Encode(details, sealedSetting(cmd, sealed, cfg), cfg.ArchiveOptions()...)
			if err != nil {
				return err
			}

			runCtx := logging.WithPath(cmd.Context(), target)
			if err := fileutil.WriteLocked(runCtx, target, 0o644, func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}); err != nil {
				return fmt.Errorf("write archive: %w", err)
			}
			logging.WithContext(runCtx, logging.NewComponentLogger(logger, "encode")).Info("wrote stream details archive",
				logging.Int("bytes", len(data)),
				logging.Bool("sealed", sealedSetting(cmd, sealed, cfg)),
				logging.Duration("elapsed", time.Since(start)),
			)

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes (%s) to %s\n", len(data), countSummary(details), target)
			return nil
		},
	}

	cmd.Flags().StringVar(&reportPath, "ffprobe", "", "ffprobe -show_streams -show_format JSON report")
	cmd.Flags().StringVar(&mediaPath, "media", "", "Media file to inspect with ffprobe")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Destination archive file")
	cmd.Flags().BoolVar(&sealed, "sealed", false, "Wrap the archive in a checksum frame (default from archive.checksum)")
	return cmd
}

func newDecodeCommand(ctx *commandContext) *cobra.Command {
	var canonical bool
	var sealed bool

	cmd := &cobra.Command{
		Use:   "decode <file>",
		Short: "Print an archive as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			details, err := readArchive(cmd.Context(), args[0], sealedSetting(cmd, sealed, cfg), cfg)
			if err != nil {
				return err
			}
			if canonical {
				data, err := variant.CanonicalJSON(details.Project())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			return writeJSON(cmd, details)
		},
	}

	cmd.Flags().BoolVar(&canonical, "canonical", false, "Emit RFC 8785 canonical JSON on one line")
	cmd.Flags().BoolVar(&sealed, "sealed", false, "Expect a checksum frame (default from archive.checksum)")
	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var sealed bool

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Show the streams in an archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			details, err := readArchive(cmd.Context(), args[0], sealedSetting(cmd, sealed, cfg), cfg)
			if err != nil {
				return err
			}
			renderDetails(cmd.OutOrStdout(), details, cfg.SubtitleRanking())
			return nil
		},
	}

	cmd.Flags().BoolVar(&sealed, "sealed", false, "Expect a checksum frame (default from archive.checksum)")
	return cmd
}

// loadDetails reads a saved ffprobe report, or runs ffprobe on mediaPath when
// no report is given.
func loadDetails(ctx context.Context, cfg *config.Config, reportPath, mediaPath string) (*streams.Details, error) {
	if strings.TrimSpace(reportPath) != "" {
		expanded, err := config.ExpandPath(reportPath)
		if err != nil {
			return nil, fmt.Errorf("resolve report path: %w", err)
		}
		result, err := ffprobe.Load(expanded)
		if err != nil {
			return nil, err
		}
		return result.Details(), nil
	}

	expanded, err := config.ExpandPath(mediaPath)
	if err != nil {
		return nil, fmt.Errorf("resolve media path: %w", err)
	}
	if timeout := cfg.ProbeTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	result, err := ffprobe.Inspect(ctx, cfg.Probe.FFprobeBinary, expanded)
	if err != nil {
		return nil, err
	}
	return result.Details(), nil
}

func readArchive(ctx context.Context, path string, sealed bool, cfg *config.Config) (*streams.Details, error) {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve archive path: %w", err)
	}
	data, err := fileutil.ReadLocked(ctx, expanded)
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}
	details, err := streams.Decode(data, sealed, cfg.ArchiveOptions()...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", expanded, err)
	}
	return details, nil
}

func countSummary(d *streams.Details) string {
	return fmt.Sprintf("%d video, %d audio, %d subtitle", d.VideoCount(), d.AudioCount(), d.SubtitleCount())
}

func renderDetails(out io.Writer, d *streams.Details, ranking streams.SubtitleRanking) {
	headers := []string{"Kind", "#", "Best", "Codec", "Size", "Aspect", "Duration", "Stereo", "Channels", "Language"}
	aligns := []columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft, alignRight, alignLeft}

	bestVideo, _ := d.BestVideo()
	bestAudio, _ := d.BestAudio()
	bestSub, _ := d.BestSubtitle(ranking)
	videoMarked, audioMarked, subMarked := false, false, false
	mark := func(done *bool, isBest bool) string {
		if isBest && !*done {
			*done = true
			return "*"
		}
		return ""
	}

	var rows [][]string
	for i, v := range d.Videos() {
		rows = append(rows, []string{
			"video", fmt.Sprint(i + 1), mark(&videoMarked, v == bestVideo), v.Codec,
			fmt.Sprintf("%dx%d", v.Width, v.Height),
			fmt.Sprintf("%.3f", v.Aspect),
			formatSeconds(v.Duration), v.StereoMode, "", "",
		})
	}
	for i, a := range d.Audios() {
		rows = append(rows, []string{
			"audio", fmt.Sprint(i + 1), mark(&audioMarked, a == bestAudio), a.Codec,
			"", "", "", "", formatChannels(a.Channels), a.Language,
		})
	}
	for i, s := range d.Subtitles() {
		rows = append(rows, []string{
			"subtitle", fmt.Sprint(i + 1), mark(&subMarked, s == bestSub), "",
			"", "", "", "", "", s.Language,
		})
	}

	if len(rows) == 0 {
		fmt.Fprintln(out, "No streams")
		return
	}
	fmt.Fprintln(out, renderTable(out, headers, rows, aligns))
	if label := d.ResolutionLabel(); label != "" {
		fmt.Fprintf(out, "Resolution: %s  Aspect: %s\n", label, d.AspectLabel())
	}
}

func formatSeconds(total int) string {
	if total <= 0 {
		return ""
	}
	return fmt.Sprintf("%d:%02d:%02d", total/3600, total/60%60, total%60)
}

func formatChannels(n int) string {
	if n == streams.UnknownChannels {
		return "?"
	}
	return fmt.Sprint(n)
}
