// Package emit is the text-rendering pipeline.
//
// A Fragment is a lazily evaluated function from a rendering Context to SQL
// text. Fragments nest: a fragment may embed other fragments, slices of
// fragments, or pre-escaped scalar text. Nothing in the pipeline quotes
// values automatically; callers route values through a domain's literal
// renderer or Context.QuotedLiteral.
//
// Statements receive the dialect terminator when rendered inside a Sequence;
// behaviors such as pragmas, comments and lint summaries do not.
package emit
