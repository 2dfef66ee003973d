// Package output renders candidates and run summaries. It holds no I/O
// policy; writers decide when and where to render.
package output

// TSVHeader is the canonical header row for text/TSV outputs.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "id\tcontig\tstart\tend\tstrand\tkind\tmembers\tbest_subject\tsubject_length\town_length\tratio\tshared_hits"

// GFFSource is column 2 of every feature line.
const GFFSource = "pseudofinder"
