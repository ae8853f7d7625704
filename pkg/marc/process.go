package marc

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/joshuapare/marckit/internal/logger"
	"github.com/joshuapare/marckit/pkg/pipeline"
)

// Stats summarizes a processing run.
type Stats struct {
	RunID    string
	Read     int // records decoded successfully
	Written  int
	Invalid  int // records that failed to decode or encode
	Dropped  int // records rejected by OnRecord
	Changed  int // records whose digest changed
	Duration time.Duration
}

// Process reads every record from in, applies p, and writes the result to
// out. It does not close either side. A nil p passes records through.
//
// Records that fail to decode or encode are logged and counted as invalid;
// with opts.KeepGoing false the first one aborts the run. Stream failures
// and context cancellation always abort. The returned Stats are valid even
// when err is non-nil.
func Process(ctx context.Context, in RecordReader, out RecordWriter, p *pipeline.Pipeline, opts *ProcessOptions) (stats Stats, err error) {
	if opts == nil {
		opts = DefaultProcessOptions()
	}
	stats = Stats{RunID: uuid.NewString()}
	start := time.Now()
	defer func() { stats.Duration = time.Since(start) }()

	base := opts.Logger
	if base == nil {
		base = logger.L()
	}
	log := base.With(zap.String("run_id", stats.RunID))

	for index := 0; ; index++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		rec, err := in.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if !IsRecordError(err) {
				return stats, err
			}
			stats.Invalid++
			log.Warn("skipping invalid record", zap.Int("index", index), zap.Error(err))
			if !opts.KeepGoing {
				return stats, err
			}
			continue
		}
		stats.Read++

		before := Digest(rec)
		var res pipeline.Result
		if p != nil {
			res = p.Apply(rec)
		}
		changed := Digest(rec) != before
		if changed {
			stats.Changed++
		}
		log.Debug("record processed",
			zap.Int("index", index),
			zap.String("id", rec.ControlNumber()),
			zap.Strings("steps", res.Ops()),
			zap.Bool("changed", changed),
		)

		if opts.OnRecord != nil && !opts.OnRecord(index, rec, res) {
			stats.Dropped++
			continue
		}

		if err := out.Write(rec); err != nil {
			if !IsEncodeError(err) {
				return stats, err
			}
			stats.Invalid++
			log.Warn("skipping unencodable record",
				zap.Int("index", index), zap.String("id", rec.ControlNumber()), zap.Error(err))
			if !opts.KeepGoing {
				return stats, err
			}
			continue
		}
		stats.Written++
	}

	log.Info("run complete",
		zap.Int("read", stats.Read),
		zap.Int("written", stats.Written),
		zap.Int("invalid", stats.Invalid),
		zap.Int("changed", stats.Changed),
		zap.Duration("elapsed", time.Since(start)),
	)
	return stats, nil
}

// ProcessFile runs p over the records of inPath and writes them to outPath.
// Formats follow the file names unless opts say otherwise.
func ProcessFile(ctx context.Context, p *pipeline.Pipeline, inPath, outPath string, opts *ProcessOptions) (stats Stats, err error) {
	if opts == nil {
		opts = DefaultProcessOptions()
	}
	in, err := Open(inPath, opts.Read)
	if err != nil {
		return stats, err
	}
	defer in.Close()

	out, err := Create(outPath, opts.Write)
	if err != nil {
		return stats, err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	return Process(ctx, in, out, p, opts)
}
