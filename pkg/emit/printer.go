package emit

import (
	"bytes"
	"strings"
)

// Printer writes multi-line SQL with indentation.
type Printer struct {
	output      *bytes.Buffer
	indentUnit  string
	depth       int
	atLineStart bool
}

// NewPrinter returns a printer that indents each level with unit.
func NewPrinter(unit string) *Printer {
	return &Printer{
		output:      &bytes.Buffer{},
		indentUnit:  unit,
		atLineStart: true,
	}
}

// String returns the output without trailing newlines.
func (p *Printer) String() string {
	return strings.TrimRight(p.output.String(), "\n")
}

// Write writes s, indenting first if at the start of a line.
func (p *Printer) Write(s string) {
	if p.atLineStart && len(s) > 0 && s[0] != '\n' {
		p.writeIndent()
	}
	p.output.WriteString(s)
	p.atLineStart = false
}

// Writeln ends the current line.
func (p *Printer) Writeln() {
	p.output.WriteByte('\n')
	p.atLineStart = true
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.depth; i++ {
		p.output.WriteString(p.indentUnit)
	}
	p.atLineStart = false
}

// Indent increases the depth by one level.
func (p *Printer) Indent() {
	p.depth++
}

// Dedent decreases the depth by one level.
func (p *Printer) Dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

// FormatList prints count items with separators.
// format is called for each index, multiline adds newlines after separators.
func (p *Printer) FormatList(count int, format func(i int), sep string, multiline bool) {
	for i := 0; i < count; i++ {
		format(i)
		if i < count-1 {
			p.Write(sep)
			if multiline {
				p.Writeln()
			}
		}
	}
}
