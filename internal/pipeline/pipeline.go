// Package pipeline composes ingestion, evaluation, normalization and
// formatting into the one-shot stdin-to-stdout transform.
package pipeline

import (
	"bytes"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jacoelho/jello/internal/config"
	"github.com/jacoelho/jello/internal/ingest"
	"github.com/jacoelho/jello/internal/normalize"
	"github.com/jacoelho/jello/internal/output"
	"github.com/jacoelho/jello/internal/query"
)

// Pipeline runs the four stages for a single invocation. Each stage is a
// pure function of its input; the pipeline holds no state across runs
// beyond options and the logger.
type Pipeline struct {
	opts   *config.Options
	logger *logrus.Logger
}

func New(opts *config.Options) *Pipeline {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	switch {
	case opts.Debug >= 2:
		logger.SetLevel(logrus.TraceLevel)
	case opts.Debug == 1:
		logger.SetLevel(logrus.DebugLevel)
	default:
		logger.SetLevel(logrus.WarnLevel)
	}

	return &Pipeline{opts: opts, logger: logger}
}

// Run transforms raw input text into the fully formatted output. The
// returned string is complete or the error is terminal; there is no
// partial output.
func (p *Pipeline) Run(input string) (string, error) {
	log := p.logger.WithField("invocation", uuid.NewString())
	started := time.Now()

	data, err := ingest.Ingest(input)
	if err != nil {
		return "", err
	}
	log.WithFields(logrus.Fields{
		"bytes": len(input),
		"stage": "ingest",
	}).Debug("input parsed")

	rendered, err := query.Run(data, p.opts.Query)
	if err != nil {
		return "", err
	}
	log.WithFields(logrus.Fields{
		"stage": "query",
		"query": p.opts.Query,
	}).Debug("query evaluated")
	log.WithField("rendered", rendered).Trace("evaluator output")

	values, err := normalize.Normalize(rendered, p.opts.Raw)
	if err != nil {
		return "", err
	}
	log.WithFields(logrus.Fields{
		"stage":  "normalize",
		"values": len(values),
	}).Debug("result normalized")

	var buf bytes.Buffer
	formatOpts := output.Options{
		Compact: p.opts.Compact,
		Lines:   p.opts.Lines,
		Nulls:   p.opts.Nulls,
		Raw:     p.opts.Raw,
	}
	if err := output.Format(&buf, values, formatOpts); err != nil {
		return "", err
	}

	log.WithFields(logrus.Fields{
		"stage":    "format",
		"duration": time.Since(started),
	}).Debug("pipeline complete")
	return buf.String(), nil
}
