// Package writers turns candidates into serialized outputs.
//
// Design:
//   • Writers own all presentation choices (GFF3, TSV, JSON, JSONL).
//   • Engine and merge stay domain-only; Pipeline stays orchestration-only.
//   • JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
