// Package engine contains the candidate evaluator: it turns genes and
// intergenic regions plus their homology evidence into evaluated units.
// It never imports app, writers, cli, or pipeline; keep it domain-only.
package engine
