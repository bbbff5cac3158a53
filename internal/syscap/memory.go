// Package syscap reports host capacity relevant to an in-memory graph build.
package syscap

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/zap"

	"github.com/teranos/castgraph/errors"
	"github.com/teranos/castgraph/logger"
)

const bytesPerMiB = 1024 * 1024

// Memory is a point-in-time view of system memory
type Memory struct {
	TotalMiB     uint64 `json:"total_mib"`
	AvailableMiB uint64 `json:"available_mib"`
}

// readMemory is swapped in tests
var readMemory = func() (total uint64, available uint64, err error) {
	v, err := mem.VirtualMemory()
	if err != nil {
		return 0, 0, errors.Wrap(err, "failed to get memory stats")
	}
	return v.Total, v.Available, nil
}

// ReadMemory returns current total and available memory
func ReadMemory() (Memory, error) {
	total, available, err := readMemory()
	if err != nil {
		return Memory{}, err
	}
	return Memory{TotalMiB: total / bytesPerMiB, AvailableMiB: available / bytesPerMiB}, nil
}

// memoryWarning returns a warning if available memory is below minMiB,
// empty string if OK
func memoryWarning(m Memory, minMiB int) string {
	if minMiB <= 0 || m.AvailableMiB >= uint64(minMiB) {
		return ""
	}
	return fmt.Sprintf(
		"Available memory (%d MiB of %d MiB) is below the configured floor (%d MiB). "+
			"The whole registry, group index and neighbor sets are held in memory.",
		m.AvailableMiB, m.TotalMiB, minMiB)
}

// Check logs the memory snapshot and warns below minMiB. It never fails the
// run: an unreadable snapshot is logged at debug and reported as zero.
func Check(minMiB int, log *zap.SugaredLogger) Memory {
	m, err := ReadMemory()
	if err != nil {
		log.Debugw("Memory check skipped", logger.FieldError, err.Error())
		return Memory{}
	}

	if warning := memoryWarning(m, minMiB); warning != "" {
		log.Warnw(warning,
			logger.FieldMemTotalMiB, m.TotalMiB,
			logger.FieldMemAvailableMiB, m.AvailableMiB)
		return m
	}
	log.Debugw("Memory check passed",
		logger.FieldMemTotalMiB, m.TotalMiB,
		logger.FieldMemAvailableMiB, m.AvailableMiB)
	return m
}
