// formatter.go - output formatting for NodeEdits.
//
// Implements the same family of output styles a YAML-differ's formatter
// might offer (compact, brief, github, gitlab, gitea, detailed), retargeted
// from dotted-paths to NodeEdit/element line numbers, plus two additions: a
// JSON formatter on top of github.com/segmentio/encoding/json and an HTML
// report formatter rendered through github.com/yuin/goldmark.
package xmldiff

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	segjson "github.com/segmentio/encoding/json"
	"github.com/yuin/goldmark"
)

// ANSI color codes for terminal-oriented formatters.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
)

// Formatter renders a slice of NodeEdit according to its own style.
type Formatter interface {
	Format(edits []NodeEdit, opts *FormatOptions) string
}

// FormatOptions configures output formatting across all formatters.
type FormatOptions struct {
	// Color enables ANSI color codes in output.
	Color bool
	// OmitHeader skips the summary header.
	OmitHeader bool
	// FilePath is the source document identifier, used by GitLabFormatter
	// for location.path and fingerprint generation.
	FilePath string
}

// DefaultFormatOptions returns the baseline FormatOptions.
func DefaultFormatOptions() *FormatOptions {
	return &FormatOptions{}
}

var validFormatterNames = []string{"compact", "brief", "github", "gitlab", "gitea", "detailed", "json", "html"}

// GetFormatter returns a formatter by name. Supported names: compact, brief,
// github, gitlab, gitea, detailed, json, html.
func GetFormatter(name string) (Formatter, error) {
	switch strings.ToLower(name) {
	case "compact", "":
		return &CompactFormatter{}, nil
	case "brief":
		return &BriefFormatter{}, nil
	case "github":
		return &GitHubFormatter{}, nil
	case "gitlab":
		return &GitLabFormatter{}, nil
	case "gitea":
		return &GiteaFormatter{}, nil
	case "detailed":
		return &DetailedFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "html":
		return &HTMLFormatter{}, nil
	default:
		return nil, fmt.Errorf("xmldiff: unknown output format %q, valid formats: %s",
			name, strings.Join(validFormatterNames, ", "))
	}
}

// describeElement renders an element handle as a short "name (line N)" label,
// or "<none>" for a nil handle (e.g. the Actual side of a Removed edit).
func describeElement(e *Element) string {
	if e == nil {
		return "<none>"
	}
	return fmt.Sprintf("%s (line %d)", e.LocalName(), e.Line())
}

func countOpsByType(edits []NodeEdit) (added, removed, modified int) {
	for _, e := range edits {
		switch e.Op {
		case Added:
			added++
		case Removed:
			removed++
		case Modified:
			modified++
		}
	}
	return
}

// CompactFormatter renders one line per edit, with an optional summary header.
type CompactFormatter struct{}

func (f *CompactFormatter) Format(edits []NodeEdit, opts *FormatOptions) string {
	if opts == nil {
		opts = DefaultFormatOptions()
	}
	if len(edits) == 0 {
		return "no differences found\n"
	}

	var sb strings.Builder
	if !opts.OmitHeader {
		added, removed, modified := countOpsByType(edits)
		if opts.Color {
			sb.WriteString(colorYellow)
		}
		fmt.Fprintf(&sb, "Found %d difference(s)", len(edits))
		if opts.Color {
			sb.WriteString(colorReset)
		}
		fmt.Fprintf(&sb, " (%d added, %d removed, %d modified)\n\n", added, removed, modified)
	}

	for _, e := range edits {
		f.formatOne(&sb, e, opts)
	}
	return sb.String()
}

func (f *CompactFormatter) formatOne(sb *strings.Builder, e NodeEdit, opts *FormatOptions) {
	var indicator, color string
	switch e.Op {
	case Added:
		indicator, color = "+", colorGreen
	case Removed:
		indicator, color = "-", colorRed
	case Modified:
		indicator, color = "±", colorYellow
	}

	if opts.Color {
		sb.WriteString(color)
	}
	sb.WriteString(indicator)
	if opts.Color {
		sb.WriteString(colorReset)
	}
	sb.WriteString(" ")

	switch e.Op {
	case Added:
		sb.WriteString(describeElement(e.Actual))
	case Removed:
		sb.WriteString(describeElement(e.Expected))
	case Modified:
		sb.WriteString(describeElement(e.Expected))
		sb.WriteString(" → ")
		sb.WriteString(describeElement(e.Actual))
	}
	sb.WriteString("\n")
}

// BriefFormatter renders a one-line totals summary.
type BriefFormatter struct{}

func (f *BriefFormatter) Format(edits []NodeEdit, _ *FormatOptions) string {
	if len(edits) == 0 {
		return "no differences\n"
	}
	added, removed, modified := countOpsByType(edits)
	var parts []string
	if added > 0 {
		parts = append(parts, fmt.Sprintf("%d added", added))
	}
	if removed > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", removed))
	}
	if modified > 0 {
		parts = append(parts, fmt.Sprintf("%d modified", modified))
	}
	return strings.Join(parts, ", ") + "\n"
}

// GitHubFormatter renders GitHub Actions workflow commands.
type GitHubFormatter struct{}

func gitHubCommand(op EditOp) (command, title string) {
	switch op {
	case Added:
		return "notice", "Node Added"
	case Removed:
		return "error", "Node Removed"
	default: // Modified
		return "warning", "Node Modified"
	}
}

func gitHubMessage(e NodeEdit) string {
	switch e.Op {
	case Added:
		return fmt.Sprintf("Added: %s", describeElement(e.Actual))
	case Removed:
		return fmt.Sprintf("Removed: %s", describeElement(e.Expected))
	default: // Modified
		return fmt.Sprintf("Modified: %s -> %s", describeElement(e.Expected), describeElement(e.Actual))
	}
}

const gitHubAnnotationLimit = 10

func (f *GitHubFormatter) Format(edits []NodeEdit, opts *FormatOptions) string {
	if len(edits) == 0 {
		return ""
	}
	filePath := ""
	if opts != nil {
		filePath = opts.FilePath
	}

	var sb strings.Builder
	counts := map[string]int{}
	omitted := map[string]int{}

	for _, e := range edits {
		cmd, title := gitHubCommand(e.Op)
		msg := gitHubMessage(e)
		if counts[cmd] < gitHubAnnotationLimit {
			if filePath != "" {
				fmt.Fprintf(&sb, "::%s file=%s,title=%s::%s\n", cmd, filePath, title, msg)
			} else {
				fmt.Fprintf(&sb, "::%s title=%s::%s\n", cmd, title, msg)
			}
			counts[cmd]++
		} else {
			omitted[cmd]++
		}
	}

	for _, cmd := range []string{"notice", "warning", "error"} {
		if n := omitted[cmd]; n > 0 {
			fmt.Fprintf(&sb, "::%s title=xmldiff::%d additional %s annotations omitted\n", cmd, n, cmd)
		}
	}
	return sb.String()
}

// GitLabFormatter renders GitLab Code Quality JSON.
type GitLabFormatter struct{}

func gitLabSeverity(op EditOp) string {
	switch op {
	case Added:
		return "info"
	default: // Removed, Modified
		return "major"
	}
}

func gitLabCheckName(op EditOp) string {
	switch op {
	case Added:
		return "xmldiff/added"
	case Removed:
		return "xmldiff/removed"
	default:
		return "xmldiff/modified"
	}
}

func gitLabFingerprint(filePath, description string) string {
	input := description
	if filePath != "" {
		input = filePath + ":" + description
	}
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

func (f *GitLabFormatter) Format(edits []NodeEdit, opts *FormatOptions) string {
	if len(edits) == 0 {
		return "[]\n"
	}
	if opts == nil {
		opts = DefaultFormatOptions()
	}

	var sb strings.Builder
	sb.WriteString("[\n")
	for i, e := range edits {
		desc := gitHubMessage(e)
		locationPath := opts.FilePath
		if locationPath == "" {
			locationPath = describeElement(firstNonNil(e.Expected, e.Actual))
		}
		fmt.Fprintf(&sb,
			`  {"description": %q, "check_name": %q, "fingerprint": %q, "severity": %q, "location": {"path": %q, "lines": {"begin": %d}}}`,
			desc, gitLabCheckName(e.Op), gitLabFingerprint(opts.FilePath, desc), gitLabSeverity(e.Op), locationPath, editLine(e))
		if i < len(edits)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("]\n")
	return sb.String()
}

func firstNonNil(a, b *Element) *Element {
	if a != nil {
		return a
	}
	return b
}

func editLine(e NodeEdit) int {
	if e.Expected != nil {
		return e.Expected.Line()
	}
	if e.Actual != nil {
		return e.Actual.Line()
	}
	return 0
}

// GiteaFormatter delegates to GitHubFormatter; Gitea Actions is GitHub
// Actions workflow-command compatible.
type GiteaFormatter struct{}

func (f *GiteaFormatter) Format(edits []NodeEdit, opts *FormatOptions) string {
	gh := &GitHubFormatter{}
	return gh.Format(edits, opts)
}

// DetailedFormatter prints a totals header and then a descriptive label per
// edit, in input order.
type DetailedFormatter struct{}

func (f *DetailedFormatter) Format(edits []NodeEdit, opts *FormatOptions) string {
	if opts == nil {
		opts = DefaultFormatOptions()
	}
	if len(edits) == 0 {
		return "no differences found\n"
	}

	var sb strings.Builder
	added, removed, modified := countOpsByType(edits)
	if !opts.OmitHeader {
		fmt.Fprintf(&sb, "%d difference(s): %d added, %d removed, %d modified\n\n", len(edits), added, removed, modified)
	}

	for _, e := range edits {
		switch e.Op {
		case Added:
			fmt.Fprintf(&sb, "[added]    %s\n", describeElement(e.Actual))
		case Removed:
			fmt.Fprintf(&sb, "[removed]  %s\n", describeElement(e.Expected))
		case Modified:
			fmt.Fprintf(&sb, "[modified] %s\n", describeElement(e.Expected))
			fmt.Fprintf(&sb, "  - expected: %s\n", describeElement(e.Expected))
			fmt.Fprintf(&sb, "  + actual:   %s\n", describeElement(e.Actual))
		}
	}
	return sb.String()
}

// jsonEdit is the wire shape JSONFormatter emits, independent of the
// internal NodeEdit/Element representation.
type jsonEdit struct {
	Op       string `json:"op"`
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`
	Line     int    `json:"line"`
}

// JSONFormatter renders edits as a JSON array using
// github.com/segmentio/encoding/json, a drop-in replacement for
// encoding/json.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(edits []NodeEdit, _ *FormatOptions) string {
	out := make([]jsonEdit, 0, len(edits))
	for _, e := range edits {
		je := jsonEdit{Op: e.Op.String(), Line: editLine(e)}
		if e.Expected != nil {
			je.Expected = e.Expected.LocalName()
		}
		if e.Actual != nil {
			je.Actual = e.Actual.LocalName()
		}
		out = append(out, je)
	}
	data, err := segjson.MarshalIndent(out, "", "  ")
	if err != nil {
		return "[]\n"
	}
	return string(data) + "\n"
}

// HTMLFormatter renders a Markdown summary table and converts it to an HTML
// report via github.com/yuin/goldmark.
type HTMLFormatter struct{}

func (f *HTMLFormatter) Format(edits []NodeEdit, _ *FormatOptions) string {
	var md strings.Builder
	added, removed, modified := countOpsByType(edits)
	fmt.Fprintf(&md, "# xmldiff report\n\n%d difference(s): %d added, %d removed, %d modified\n\n", len(edits), added, removed, modified)

	if len(edits) > 0 {
		md.WriteString("| Op | Expected | Actual |\n")
		md.WriteString("| --- | --- | --- |\n")
		for _, e := range edits {
			fmt.Fprintf(&md, "| %s | %s | %s |\n", e.Op, describeElement(e.Expected), describeElement(e.Actual))
		}
	}

	var html bytes.Buffer
	if err := goldmark.Convert([]byte(md.String()), &html); err != nil {
		return md.String()
	}
	return html.String()
}
