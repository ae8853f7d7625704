package marc

import (
	"go.uber.org/zap"

	"github.com/joshuapare/marckit/pkg/pipeline"
	"github.com/joshuapare/marckit/pkg/types"
	"github.com/joshuapare/marckit/record"
)

// ProcessOptions controls a processing run.
type ProcessOptions struct {
	// Read and Write configure the file codecs used by ProcessFile.
	Read  types.ReadOptions
	Write types.WriteOptions

	// Logger receives per-record and summary logs. If nil, the process-wide
	// logger is used.
	Logger *zap.Logger

	// KeepGoing counts records that fail to decode or encode as invalid and
	// continues. If false, the first such record aborts the run.
	// Default: true
	KeepGoing bool

	// OnRecord, if set, is called after each record is transformed and
	// before it is written. Returning false drops the record.
	OnRecord func(index int, rec *record.Record, res pipeline.Result) bool
}

// DefaultProcessOptions returns recommended processing settings.
func DefaultProcessOptions() *ProcessOptions {
	return &ProcessOptions{
		Read:      types.DefaultReadOptions(),
		Write:     types.DefaultWriteOptions(),
		KeepGoing: true,
	}
}
