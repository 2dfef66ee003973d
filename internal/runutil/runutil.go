// internal/runutil/runutil.go
package runutil

import "runtime"

// EffectiveThreads resolves --threads: 0 (or less) means all CPUs, and no
// more workers than jobs are started. The result is at least 1.
func EffectiveThreads(requested, jobs int) int {
	n := requested
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if jobs > 0 && n > jobs {
		n = jobs
	}
	if n < 1 {
		n = 1
	}
	return n
}

// WriterBuffer sizes the writer channel for a worker count.
func WriterBuffer(threads int) int {
	if threads < 1 {
		threads = 1
	}
	return threads * 4
}
