// Package testdata generates paired XML documents at a handful of size
// presets, shared by the gen and stats commands under bench/compare.
package testdata

import (
	"fmt"
	"strings"
)

// Sizes maps a size preset name to its service count.
var Sizes = map[string]int{
	"small":  4,
	"medium": 42,
	"large":  420,
	"xlarge": 4200,
}

func serviceElement(b *strings.Builder, i int, version string, replicas int) {
	fmt.Fprintf(b, `  <service name="service-%03d">`, i)
	fmt.Fprintf(b, "<version>%s</version>", version)
	fmt.Fprintf(b, "<replicas>%d</replicas>", replicas)
	fmt.Fprintf(b, "<memory>%dMi</memory>", 256+(i%4)*128)
	fmt.Fprintf(b, "<cpu>%dm</cpu>", 100+(i%4)*50)
	b.WriteString("<enabled>true</enabled>")
	fmt.Fprintf(b, "<port>%d</port>", 8000+i)
	b.WriteString("<protocol>http</protocol>")
	fmt.Fprintf(b, "<timeout>%d</timeout>", 30+(i%3)*10)
	fmt.Fprintf(b, `<labels tier="backend" team="team-%d"/>`, i%5)
	b.WriteString("</service>\n")
}

// GenerateExpected generates the baseline document with n services.
func GenerateExpected(n int) []byte {
	var b strings.Builder
	b.WriteString(`<deployment name="performance-test" version="1.0.0" region="us-east-1" replicas="3">` + "\n")
	b.WriteString("<services>\n")
	for i := 0; i < n; i++ {
		serviceElement(&b, i, fmt.Sprintf("1.0.%d", i%10), 1+(i%5))
	}
	b.WriteString("</services>\n</deployment>\n")
	return []byte(b.String())
}

// GenerateActual generates a modified document: the first two services are
// dropped, roughly 40% of the remainder are changed (every fifth service gets
// a new version and every fifth, offset by one, a new replica count), and
// n/10 new services (at least one) are appended.
func GenerateActual(n int) []byte {
	var b strings.Builder
	b.WriteString(`<deployment name="performance-test" version="1.1.0" region="us-west-2" replicas="5">` + "\n")
	b.WriteString("<services>\n")

	removed := 2
	added := n / 10
	if added < 1 {
		added = 1
	}

	for i := removed; i < n; i++ {
		version := fmt.Sprintf("1.0.%d", i%10)
		if i%5 == 0 {
			version = fmt.Sprintf("2.0.%d", i%10)
		}
		replicas := 1 + (i % 5)
		if i%5 == 1 {
			replicas = 3 + (i % 3)
		}
		serviceElement(&b, i, version, replicas)
	}
	for i := n; i < n+added; i++ {
		serviceElement(&b, i, fmt.Sprintf("1.0.%d", i%10), 1+(i%5))
	}

	b.WriteString("</services>\n</deployment>\n")
	return []byte(b.String())
}
