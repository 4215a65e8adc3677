// Package convert turns raw text into the canonical table and back.
//
// Parsing runs in two strategies selected by format detection: a Markdown
// strategy for pipe tables and an HTML strategy for <table> fragments. Both
// converge on the same table.Model and share the same cell rules: text is
// trimmed, HTML-escaped, and checkbox-normalized before it enters the model.
// Parsing is all-or-nothing; a failed parse never returns a partial table.
//
// Serialization is the reverse direction: one deterministic renderer per
// output format (Markdown, JSON, HTML). Serializing an empty model yields
// the empty output for the format rather than an error.
package convert
