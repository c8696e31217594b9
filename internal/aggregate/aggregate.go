// Package aggregate merges extraction results across re-scans and derives
// identifier lists and counts from them.
package aggregate

import (
	"github.com/joseph-ayodele/labelscan/constants"
	"github.com/joseph-ayodele/labelscan/internal/extract"
)

// Merge drops every baseline record whose origin file was rescanned and
// appends the rescanned records. The replace is per file, never per page.
func Merge(baseline, rescanned []extract.PageRecord) []extract.PageRecord {
	replaced := make(map[string]struct{})
	for _, r := range rescanned {
		replaced[r.Origin] = struct{}{}
	}
	return MergeFiles(baseline, rescanned, replaced)
}

// MergeFiles is Merge with an explicit set of rescanned origins, so that a
// rescan that produced no records still clears the file's baseline.
func MergeFiles(baseline, rescanned []extract.PageRecord, origins map[string]struct{}) []extract.PageRecord {
	out := make([]extract.PageRecord, 0, len(baseline)+len(rescanned))
	for _, r := range baseline {
		if _, ok := origins[r.Origin]; ok {
			continue
		}
		out = append(out, r)
	}
	return append(out, rescanned...)
}

// PreferredID is the source id when present, else the AWB code, else "".
func PreferredID(r extract.PageRecord) string {
	id := r.AWB
	if r.SourceID != constants.NoSourceID {
		id = r.SourceID
	}
	if id == "" || id == constants.UnknownAWB {
		return ""
	}
	return id
}

// UniqueIDs lists each record's preferred id once, in first-seen order.
func UniqueIDs(records []extract.PageRecord) []string {
	seen := make(map[string]struct{}, len(records))
	var ids []string
	for _, r := range records {
		id := PreferredID(r)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// SourceIDs lists genuine source ids in record order, duplicates kept.
func SourceIDs(records []extract.PageRecord) []string {
	var ids []string
	for _, r := range records {
		if r.HasSourceID() {
			ids = append(ids, r.SourceID)
		}
	}
	return ids
}

// Stats are display counters over a result set.
type Stats struct {
	WithSourceID int `json:"withSourceId"`
	AWBOnly      int `json:"awbOnly"`
	ManualReview int `json:"manualReview"`
	Total        int `json:"total"`
}

func Summarize(records []extract.PageRecord) Stats {
	s := Stats{Total: len(records)}
	for _, r := range records {
		switch {
		case r.HasSourceID():
			s.WithSourceID++
		case r.HasAWB():
			s.AWBOnly++
		}
		if r.Status == constants.PageStatusManualReview {
			s.ManualReview++
		}
	}
	return s
}
