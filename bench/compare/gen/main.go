// generate_testdata generates XML test file pairs at various sizes for
// benchmarking xmldiff's throughput.
//
// Usage:
//
//	go run ./bench/compare/gen --size small --output-dir /tmp/bench-data/small
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ashfield-dev/xmldiff/bench/compare/testdata"
)

func main() {
	size := flag.String("size", "medium", "Size preset: small, medium, large, xlarge")
	outputDir := flag.String("output-dir", ".", "Directory to write expected.xml and actual.xml")
	flag.Parse()

	n, ok := testdata.Sizes[*size]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown size %q (valid: small, medium, large, xlarge)\n", *size)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outputDir, 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir: %v\n", err)
		os.Exit(1)
	}

	expected := testdata.GenerateExpected(n)
	actual := testdata.GenerateActual(n)

	if err := os.WriteFile(filepath.Join(*outputDir, "expected.xml"), expected, 0o600); err != nil {
		fmt.Fprintf(os.Stderr, "write expected.xml: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(filepath.Join(*outputDir, "actual.xml"), actual, 0o600); err != nil {
		fmt.Fprintf(os.Stderr, "write actual.xml: %v\n", err)
		os.Exit(1)
	}

	fi, _ := os.Stat(filepath.Join(*outputDir, "expected.xml"))
	fmt.Printf("Generated %s: %d services, expected.xml=%d bytes, actual.xml=%d bytes\n",
		*size, n, fi.Size(), len(actual))
}
