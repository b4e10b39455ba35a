package frozen

import (
	"math/rand/v2"
	"runtime"
)

// processSeed is the hash seed shared by every analysis in this process
// unless WithSeed overrides it. Drawn once so that instances built from
// equal inputs hash identically for the life of the process.
var processSeed = rand.Uint64()

// AnalysisOption is a functional option for configuring key analysis.
type AnalysisOption func(*analysisConfig)

type analysisConfig struct {
	seed        uint64
	parallelism int
}

func defaultAnalysisConfig() analysisConfig {
	return analysisConfig{
		seed:        processSeed,
		parallelism: runtime.GOMAXPROCS(0),
	}
}

// WithSeed sets the hash seed recorded in the resulting plan. Construction
// sites that persist a plan (the code generator, the serialization codec)
// use this to make analysis reproducible across processes.
func WithSeed(seed uint64) AnalysisOption {
	return func(c *analysisConfig) {
		c.seed = seed
	}
}

// WithParallelism bounds the number of goroutines the substring-window
// search may use. Values below 2 force a sequential search. The default is
// GOMAXPROCS.
func WithParallelism(n int) AnalysisOption {
	return func(c *analysisConfig) {
		c.parallelism = n
	}
}
