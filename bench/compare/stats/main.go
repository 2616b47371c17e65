// stats reports median/p90 latency over repeated Diff runs against a
// generated test-data pair, using github.com/aclements/go-moremath/stats
// the way v2/benchstat builds a Distribution from raw sample values.
//
// Usage:
//
//	go run ./bench/compare/stats --size medium --iterations 200
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/aclements/go-moremath/stats"

	"github.com/ashfield-dev/xmldiff/bench/compare/testdata"
	"github.com/ashfield-dev/xmldiff/pkg/xmldiff"
)

func main() {
	size := flag.String("size", "medium", "Size preset: small, medium, large, xlarge")
	iterations := flag.Int("iterations", 100, "Number of Diff() calls to sample")
	flag.Parse()

	n, ok := testdata.Sizes[*size]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown size %q (valid: small, medium, large, xlarge)\n", *size)
		os.Exit(1)
	}

	expected := testdata.GenerateExpected(n)
	actual := testdata.GenerateActual(n)

	samples := make([]float64, 0, *iterations)
	for i := 0; i < *iterations; i++ {
		start := time.Now()
		if _, err := xmldiff.Diff(expected, actual, xmldiff.Options{}); err != nil {
			fmt.Fprintf(os.Stderr, "diff failed: %v\n", err)
			os.Exit(1)
		}
		samples = append(samples, time.Since(start).Seconds()*1e3)
	}

	samp := stats.Sample{Xs: samples}
	samp.Sort()

	fmt.Printf("size=%s iterations=%d median=%.3fms p90=%.3fms mean=%.3fms stddev=%.3fms\n",
		*size, *iterations, samp.Quantile(0.5), samp.Quantile(0.9), samp.Mean(), samp.StdDev())
}
