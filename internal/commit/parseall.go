package commit

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// parallelThreshold is the record count below which ParseAll stays on a
// single goroutine. Parsing is cheap; the fan-out only pays off on large
// histories.
const parallelThreshold = 256

// ParseAll parses a sequence of records, preserving input order in the
// result. Records whose messages do not match the conventional-commit
// grammar are dropped; the second return is the dropped count, which
// callers may report for diagnostics.
//
// Large inputs are parsed on multiple goroutines, but the output order
// always equals the input order: downstream grouping depends on it.
func ParseAll(records []Record) ([]Parsed, int) {
	if len(records) == 0 {
		return nil, 0
	}

	results := make([]*Parsed, len(records))

	if len(records) < parallelThreshold {
		for i, r := range records {
			if p, ok := ParseRecord(r); ok {
				p := p
				results[i] = &p
			}
		}
	} else {
		parseParallel(records, results)
	}

	parsed := make([]Parsed, 0, len(records))
	for _, p := range results {
		if p != nil {
			parsed = append(parsed, *p)
		}
	}
	return parsed, len(records) - len(parsed)
}

// parseParallel fans record chunks out over NumCPU goroutines. Each worker
// writes only its own index range, so no locking is needed.
func parseParallel(records []Record, results []*Parsed) {
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	chunk := (len(records) + runtime.NumCPU() - 1) / runtime.NumCPU()
	for start := 0; start < len(records); start += chunk {
		end := start + chunk
		if end > len(records) {
			end = len(records)
		}
		start, end := start, end
		g.Go(func() error {
			for i := start; i < end; i++ {
				if p, ok := ParseRecord(records[i]); ok {
					p := p
					results[i] = &p
				}
			}
			return nil
		})
	}

	// Workers never return errors; Wait is only a join point.
	_ = g.Wait()
}
