package graph

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/teranos/castgraph/logger"
)

// progressStride is how many lines pass between throttle checks
const progressStride = 1 << 12

// progress logs "still reading" lines at most once per interval
type progress struct {
	log   *zap.SugaredLogger
	name  string
	every rate.Sometimes
}

// newProgress returns nil when interval <= 0; a nil progress logs nothing
func newProgress(log *zap.SugaredLogger, name string, interval time.Duration) *progress {
	if interval <= 0 {
		return nil
	}
	return &progress{log: log, name: name, every: rate.Sometimes{Interval: interval}}
}

func (p *progress) tick(line int) {
	if p == nil || line%progressStride != 0 {
		return
	}
	p.every.Do(func() {
		p.log.Infow("Reading", logger.FieldFile, p.name, logger.FieldLines, line)
	})
}
