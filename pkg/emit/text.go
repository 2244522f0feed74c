package emit

import "strings"

// IndentPurpose names a place where rendered text is indented.
type IndentPurpose int

const (
	PurposeCreateTable IndentPurpose = iota
	PurposeColumn
	PurposeViewSelect
	PurposeTypeField
	PurposeRoutineBody
)

// TextOptions holds whitespace and comment rules.
type TextOptions struct {
	indents map[IndentPurpose]string
}

// DefaultTextOptions returns the standard indentation rules.
func DefaultTextOptions() TextOptions {
	return TextOptions{indents: map[IndentPurpose]string{
		PurposeCreateTable: "",
		PurposeColumn:      "    ",
		PurposeViewSelect:  "    ",
		PurposeTypeField:   "    ",
		PurposeRoutineBody: "  ",
	}}
}

// WithIndent returns a copy with the indent for purpose replaced.
func (o TextOptions) WithIndent(purpose IndentPurpose, indent string) TextOptions {
	indents := make(map[IndentPurpose]string, len(o.indents)+1)
	for k, v := range o.indents {
		indents[k] = v
	}
	indents[purpose] = indent
	return TextOptions{indents: indents}
}

// Indent returns the indent string for purpose.
func (o TextOptions) Indent(purpose IndentPurpose) string {
	return o.indents[purpose]
}

// Indentation prefixes every non-empty line of content with the indent for purpose.
func (o TextOptions) Indentation(purpose IndentPurpose, content string) string {
	indent := o.Indent(purpose)
	if indent == "" {
		return content
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = indent + line
		}
	}
	return strings.Join(lines, "\n")
}

// Comments renders text as SQL line comments, each prefixed with indent.
func (o TextOptions) Comments(text, indent string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = indent + "-- " + line
	}
	return strings.Join(lines, "\n")
}
