package parsers

import (
	"context"

	"github.com/google/uuid"

	"github.com/vaibhaw-/LogLens/internal/loglens/logger"
)

// fallbackSampleLines bounds how much of the input is submitted to the
// collaborator. The sample is the batch; anything beyond it is not parsed
// on the collaborator path.
const fallbackSampleLines = 20

// ParseUnknown handles input no detector rule recognized. When a
// collaborator is configured, the first few non-blank lines are submitted
// and the returned canonical-shaped objects are resolved with the same
// field tables as the JSON-lines parser. On any collaborator failure, or
// when none is configured, the whole input is re-parsed with the
// Apache/Nginx parser as a best-effort default. Never fails.
func ParseUnknown(ctx context.Context, text string, sp SampleParser, opts ParserOptions) ([]Event, Diag) {
	log := logger.L()

	if sp != nil {
		sample := sampleLines(text, fallbackSampleLines)
		records, err := sp.ParseSample(ctx, sample)
		if err != nil {
			log.Warnw("collaborator parse failed; falling back to apache parser",
				"err", err.Error())
		} else if len(records) > 0 {
			events := make([]Event, 0, len(records))
			for i, rec := range records {
				evt := eventFromRecord(rec)
				evt.EventID = uuid.NewString()
				evt.LineNumber = i + 1
				events = append(events, *evt)
			}
			log.Infow("collaborator parsed sample",
				"sample_lines", len(sample),
				"events", len(events))
			return events, Diag{
				TotalLines:  len(sample),
				ParsedLines: len(events),
			}
		} else {
			log.Warnw("collaborator returned no records; falling back to apache parser")
		}
	}

	return ParseText(ctx, text, NewApacheParser(opts))
}
