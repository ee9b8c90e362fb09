package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"streamdetails/internal/logging"
	"streamdetails/internal/streams"
)

// Record is one stored media item. The summary fields are derived from
// Details when the record is written so listings need not decode payloads.
type Record struct {
	ID               string
	MediaPath        string
	Details          *streams.Details
	Sealed           bool
	VideoCount       int
	AudioCount       int
	SubtitleCount    int
	VideoCodec       string
	Resolution       string
	Aspect           string
	DurationSeconds  int
	AudioCodec       string
	AudioChannels    int
	SubtitleLanguage string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

const recordColumns = `id, media_path, payload, sealed, video_count, audio_count, subtitle_count,
    video_codec, resolution, aspect, duration_seconds, audio_codec, audio_channels,
    subtitle_language, created_at, updated_at`

const summaryColumns = `id, media_path, NULL, sealed, video_count, audio_count, subtitle_count,
    video_codec, resolution, aspect, duration_seconds, audio_codec, audio_channels,
    subtitle_language, created_at, updated_at`

func normalizeMediaPath(mediaPath string) (string, error) {
	trimmed := strings.TrimSpace(mediaPath)
	if trimmed == "" {
		return "", ErrEmptyMediaPath
	}
	return trimmed, nil
}

// Put inserts or replaces the details stored for mediaPath. The record ID is
// kept across replacements.
func (s *Store) Put(ctx context.Context, mediaPath string, details *streams.Details) (*Record, error) {
	key, err := normalizeMediaPath(mediaPath)
	if err != nil {
		return nil, err
	}
	if details == nil {
		details = streams.New()
	}

	payload, err := streams.Encode(details, s.sealed, s.opts...)
	if err != nil {
		return nil, err
	}

	rec := s.summarize(key, details)
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = s.execWithRetry(
		ctx,
		`INSERT INTO stream_details (`+recordColumns+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(media_path) DO UPDATE SET
            payload = excluded.payload,
            sealed = excluded.sealed,
            video_count = excluded.video_count,
            audio_count = excluded.audio_count,
            subtitle_count = excluded.subtitle_count,
            video_codec = excluded.video_codec,
            resolution = excluded.resolution,
            aspect = excluded.aspect,
            duration_seconds = excluded.duration_seconds,
            audio_codec = excluded.audio_codec,
            audio_channels = excluded.audio_channels,
            subtitle_language = excluded.subtitle_language,
            updated_at = excluded.updated_at`,
		uuid.NewString(),
		key,
		payload,
		rec.Sealed,
		rec.VideoCount,
		rec.AudioCount,
		rec.SubtitleCount,
		rec.VideoCodec,
		rec.Resolution,
		rec.Aspect,
		rec.DurationSeconds,
		rec.AudioCodec,
		rec.AudioChannels,
		rec.SubtitleLanguage,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert stream details: %w", err)
	}

	logging.WithContext(logging.WithRecordKey(ctx, key), s.logger).Info("stored stream details",
		logging.Int("videos", rec.VideoCount),
		logging.Int("audios", rec.AudioCount),
		logging.Int("subtitles", rec.SubtitleCount),
		logging.Int("payload_bytes", len(payload)),
	)
	return s.Get(ctx, key)
}

func (s *Store) summarize(key string, d *streams.Details) Record {
	rec := Record{
		MediaPath:     key,
		Details:       d,
		Sealed:        s.sealed,
		VideoCount:    d.VideoCount(),
		AudioCount:    d.AudioCount(),
		SubtitleCount: d.SubtitleCount(),
		Resolution:    d.ResolutionLabel(),
		Aspect:        d.AspectLabel(),
		AudioChannels: streams.UnknownChannels,
	}
	if v, ok := d.BestVideo(); ok {
		rec.VideoCodec = v.Codec
		rec.DurationSeconds = v.Duration
	}
	if a, ok := d.BestAudio(); ok {
		rec.AudioCodec = a.Codec
		rec.AudioChannels = a.Channels
	}
	if sub, ok := d.BestSubtitle(s.ranking); ok {
		rec.SubtitleLanguage = sub.Language
	}
	return rec
}

// Get returns the record for mediaPath with its payload decoded, or nil
// when nothing is stored. Decode failures wrap ErrCorruptPayload.
func (s *Store) Get(ctx context.Context, mediaPath string) (*Record, error) {
	key, err := normalizeMediaPath(mediaPath)
	if err != nil {
		return nil, err
	}
	row := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT `+recordColumns+` FROM stream_details WHERE media_path = ?`, key)
	rec, err := s.scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		if errors.Is(err, ErrCorruptPayload) {
			logging.WarnWithContext(logging.WithContext(logging.WithRecordKey(ctx, key), s.logger),
				"stored payload failed to decode", "store_corrupt_payload",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "re-import the media item with store put"),
			)
		}
		return nil, err
	}
	return rec, nil
}

// List returns summary records ordered by media path. Details is left nil.
func (s *Store) List(ctx context.Context) ([]*Record, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT `+summaryColumns+` FROM stream_details ORDER BY media_path`)
	if err != nil {
		return nil, fmt.Errorf("list stream details: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := s.scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Remove deletes the record for mediaPath and reports whether one existed.
func (s *Store) Remove(ctx context.Context, mediaPath string) (bool, error) {
	key, err := normalizeMediaPath(mediaPath)
	if err != nil {
		return false, err
	}
	res, err := s.execWithRetry(ctx, `DELETE FROM stream_details WHERE media_path = ?`, key)
	if err != nil {
		return false, fmt.Errorf("remove stream details: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if affected > 0 {
		logging.WithContext(logging.WithRecordKey(ctx, key), s.logger).Info("removed stream details")
	}
	return affected > 0, nil
}

// Stats counts stored records by resolution label. Records without video are
// counted under the empty label.
func (s *Store) Stats(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT resolution, COUNT(1) FROM stream_details GROUP BY resolution`)
	if err != nil {
		return nil, fmt.Errorf("stream details stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var label string
		var count int
		if err := rows.Scan(&label, &count); err != nil {
			return nil, err
		}
		stats[label] = count
	}
	return stats, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanRecord(row scanner) (*Record, error) {
	var (
		rec       Record
		payload   []byte
		createdAt string
		updatedAt string
	)
	if err := row.Scan(
		&rec.ID,
		&rec.MediaPath,
		&payload,
		&rec.Sealed,
		&rec.VideoCount,
		&rec.AudioCount,
		&rec.SubtitleCount,
		&rec.VideoCodec,
		&rec.Resolution,
		&rec.Aspect,
		&rec.DurationSeconds,
		&rec.AudioCodec,
		&rec.AudioChannels,
		&rec.SubtitleLanguage,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	rec.CreatedAt = parseTimestamp(createdAt)
	rec.UpdatedAt = parseTimestamp(updatedAt)

	if payload != nil {
		details, err := streams.Decode(payload, rec.Sealed, s.opts...)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrCorruptPayload, rec.MediaPath, err)
		}
		rec.Details = details
	}
	return &rec, nil
}

func parseTimestamp(value string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}
