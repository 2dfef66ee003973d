// Package pipeline fans the contigs of an annotation index out to a
// ContigProcessor and hands results back to a visit callback in index order.
//
// The only contract to implement is ContigProcessor (ProcessContig).
// This keeps the pipeline swappable and testable.
package pipeline
