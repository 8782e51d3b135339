package index

import (
	"sort"
)

// Below returns successful entries whose overall confidence is under threshold, lowest first.
func (ri ResultIndex) Below(threshold float64) (entries []Entry) {
	entries = []Entry{}
	for _, entry := range ri.Entries {
		if entry.Success && entry.Overall < threshold {
			entries = append(entries, entry)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Overall < entries[j].Overall
	})

	return entries
}

// Failures returns the entries whose parse failed.
func (ri ResultIndex) Failures() (entries []Entry) {
	entries = []Entry{}
	for _, entry := range ri.Entries {
		if !entry.Success {
			entries = append(entries, entry)
		}
	}
	return entries
}

// Batch returns the entries stamped with batchID.
func (ri ResultIndex) Batch(batchID string) (entries []Entry) {
	entries = []Entry{}
	for _, entry := range ri.Entries {
		if entry.BatchID == batchID {
			entries = append(entries, entry)
		}
	}
	return entries
}

// Stats aggregates the index. The mean covers successful entries only.
func (ri ResultIndex) Stats() (stats Stats) {
	total := 0.0
	for _, entry := range ri.Entries {
		stats.Total++
		if !entry.Success {
			stats.Failed++
			continue
		}
		stats.Succeeded++
		total += entry.Overall
	}

	if stats.Succeeded > 0 {
		stats.MeanOverall = total / float64(stats.Succeeded)
	}

	return stats
}
