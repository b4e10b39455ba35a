package analysis

import "golang.org/x/sync/errgroup"

// findWindowParallel evaluates each candidate window length in its own
// goroutine and merges results by preferring the shortest length, exactly
// as the sequential search would. Within one length the scan order is
// unchanged, so the chosen (anchor, offset) is identical too.
func findWindowParallel(keys []string, seed uint64, b windowBounds, maxL, parallelism int) SliceAnalysis {
	type lenResult struct {
		analysis SliceAnalysis
		ok       bool
	}
	results := make([]lenResult, maxL+1)

	var g errgroup.Group
	g.SetLimit(parallelism)
	for l := 1; l <= maxL; l++ {
		g.Go(func() error {
			a, ok := searchWindowLen(keys, seed, b, l)
			results[l] = lenResult{analysis: a, ok: ok}
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	for l := 1; l <= maxL; l++ {
		if results[l].ok {
			return results[l].analysis
		}
	}
	return SliceAnalysis{Result: GeneralSlice}
}
