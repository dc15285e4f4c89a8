package domain

// BatchResult aggregates per-item outcomes over one processing run. Skipped
// counts raw input lines that were blank or comments; those are excluded from
// Total.
type BatchResult struct {
	Total   int
	Success int
	Failed  int
	Invalid int
	Skipped int

	// Err records a fatal source read error or a cancellation. Counters
	// accumulated before the failure remain valid.
	Err error
}
