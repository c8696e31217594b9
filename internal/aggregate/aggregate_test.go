package aggregate

import (
	"slices"
	"sync"
	"testing"

	"github.com/joseph-ayodele/labelscan/internal/extract"
)

func rec(origin string, page int, src, awb string) extract.PageRecord {
	return extract.NewRecord(page, origin, origin, extract.Fields{SourceID: src, AWB: awb})
}

func TestMergeReplacesWholeFile(t *testing.T) {
	baseline := []extract.PageRecord{
		rec("A.pdf", 1, "S100001", ""),
		rec("B.pdf", 1, "", ""),
		rec("A.pdf", 2, "S100002", ""),
		rec("B.pdf", 2, "S200002", ""),
	}
	ocrB := extract.NewRecord(1, "amazon_B.pdf", "B.pdf", extract.Fields{AWB: "412345678901"})

	got := Merge(baseline, []extract.PageRecord{ocrB})

	if len(got) != 3 {
		t.Fatalf("got %d records, want 3: %+v", len(got), got)
	}
	for _, r := range got[:2] {
		if r.Origin != "A.pdf" {
			t.Errorf("baseline record from %s survived", r.Origin)
		}
	}
	if got[2].FileName != "amazon_B.pdf" {
		t.Errorf("last record = %+v, want the OCR record", got[2])
	}
}

func TestMergeFilesEmptyRescan(t *testing.T) {
	baseline := []extract.PageRecord{rec("A.pdf", 1, "S100001", ""), rec("B.pdf", 1, "S200001", "")}
	got := MergeFiles(baseline, nil, map[string]struct{}{"B.pdf": {}})
	if len(got) != 1 || got[0].Origin != "A.pdf" {
		t.Errorf("got %+v", got)
	}
}

func TestUniqueIDs(t *testing.T) {
	records := []extract.PageRecord{
		rec("a.pdf", 1, "S100001", "412345678901"),
		rec("a.pdf", 2, "", "412345678901"),
		rec("a.pdf", 3, "S100001", ""),
		rec("a.pdf", 4, "", ""),
		rec("a.pdf", 5, "S100003", ""),
	}
	want := []string{"S100001", "412345678901", "S100003"}
	if got := UniqueIDs(records); !slices.Equal(got, want) {
		t.Errorf("UniqueIDs = %v, want %v", got, want)
	}
}

func TestSourceIDsKeepsDuplicates(t *testing.T) {
	records := []extract.PageRecord{
		rec("a.pdf", 1, "S100001", ""),
		rec("a.pdf", 2, "", "412345678901"),
		rec("a.pdf", 3, "S100001", ""),
	}
	want := []string{"S100001", "S100001"}
	if got := SourceIDs(records); !slices.Equal(got, want) {
		t.Errorf("SourceIDs = %v, want %v", got, want)
	}
}

func TestSummarize(t *testing.T) {
	records := []extract.PageRecord{
		rec("a.pdf", 1, "S100001", "412345678901"),
		rec("a.pdf", 2, "", "412345678901"),
		rec("a.pdf", 3, "", ""),
	}
	got := Summarize(records)
	want := Stats{WithSourceID: 1, AWBOnly: 1, ManualReview: 1, Total: 3}
	if got != want {
		t.Errorf("Summarize = %+v, want %+v", got, want)
	}
}

func TestSessionConcurrentAppendAndReplace(t *testing.T) {
	s := NewSession()
	if s.ID == "" {
		t.Fatal("session without id")
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			origin := "A.pdf"
			if i%2 == 1 {
				origin = "B.pdf"
			}
			s.Append(rec(origin, i, "", ""))
		}()
	}
	wg.Wait()
	if s.Len() != 20 {
		t.Fatalf("Len = %d, want 20", s.Len())
	}

	s.Replace([]string{"B.pdf"}, []extract.PageRecord{
		extract.NewRecord(1, "amazon_B.pdf", "B.pdf", extract.Fields{AWB: "412345678901"}),
	})
	got := s.Records()
	if len(got) != 11 {
		t.Fatalf("after replace Len = %d, want 11", len(got))
	}
	for _, r := range got[:10] {
		if r.Origin != "A.pdf" {
			t.Errorf("unexpected baseline record from %s", r.Origin)
		}
	}
}
