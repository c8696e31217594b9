package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/joseph-ayodele/labelscan/constants"
	"github.com/joseph-ayodele/labelscan/internal/aggregate"
	"github.com/joseph-ayodele/labelscan/internal/document"
	"github.com/joseph-ayodele/labelscan/internal/extract"
	"github.com/joseph-ayodele/labelscan/internal/ocr"
)

type fakeDoc struct {
	pages []string
}

func (d *fakeDoc) NumPages() int { return len(d.pages) }

func (d *fakeDoc) PageText(page int) (string, error) {
	if d.pages[page-1] == "BROKEN" {
		return "", errors.New("bad content stream")
	}
	return d.pages[page-1], nil
}

func (d *fakeDoc) Render(context.Context, int, float64) (image.Image, error) {
	return image.NewGray(image.Rect(0, 0, 1, 1)), nil
}

func (d *fakeDoc) Close() error { return nil }

type fakeLoader struct {
	mu   sync.Mutex
	docs map[string][]string
}

func newFakeLoader(docs map[string][]string) *fakeLoader {
	return &fakeLoader{docs: docs}
}

func (l *fakeLoader) Open(_ context.Context, f document.File) (document.Document, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	pages, ok := l.docs[f.Name]
	if !ok {
		return nil, fmt.Errorf("open %s: no such document", f.Name)
	}
	return &fakeDoc{pages: pages}, nil
}

func (l *fakeLoader) ExtractPages(_ context.Context, f document.File, pages []int, prefix string) (document.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	src := l.docs[f.Name]
	sub := make([]string, len(pages))
	for i, p := range pages {
		sub[i] = src[p-1]
	}
	name := prefix + f.Name
	l.docs[name] = sub
	return document.File{Name: name, Origin: f.OriginName(), SourcePages: slices.Clone(pages)}, nil
}

// textOCR "recognizes" the page text of a fakeDoc.
type textOCR struct{}

func (textOCR) PerformOCR(_ context.Context, doc ocr.PageRenderer, page int) (extract.Fields, error) {
	text := doc.(*fakeDoc).pages[page-1]
	if strings.Contains(text, "UNREADABLE") {
		return extract.Fields{}, errors.New("engine crashed")
	}
	return ocr.ParseText(text), nil
}

type progressLog struct {
	mu       sync.Mutex
	percents []float64
	statuses []string
}

func (p *progressLog) fn(percent float64, status string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if percent != NoPercent {
		p.percents = append(p.percents, percent)
	}
	p.statuses = append(p.statuses, status)
}

func files(names ...string) []document.File {
	out := make([]document.File, len(names))
	for i, n := range names {
		out[i] = document.File{Name: n}
	}
	return out
}

func TestProcessPDFChunksPreservePageOrder(t *testing.T) {
	pages := make([]string, 20)
	for i := range pages {
		pages[i] = fmt.Sprintf("Ref No S%07d", 1000000+i+1)
	}
	progress := &progressLog{}
	p := NewProcessor(newFakeLoader(map[string][]string{"a.pdf": pages}), nil, WithProgress(progress.fn))

	records, err := p.ProcessPDF(context.Background(), document.File{Name: "a.pdf"})
	if err != nil {
		t.Fatalf("ProcessPDF: %v", err)
	}
	if len(records) != 20 {
		t.Fatalf("got %d records, want 20", len(records))
	}
	for i, r := range records {
		if r.Page != i+1 {
			t.Errorf("record %d has page %d", i, r.Page)
		}
		if want := fmt.Sprintf("S%07d", 1000000+i+1); r.SourceID != want {
			t.Errorf("page %d source id = %q, want %q", r.Page, r.SourceID, want)
		}
	}
	want := []string{"Reading a.pdf: 15/20", "Reading a.pdf: 20/20"}
	if !slices.Equal(progress.statuses, want) {
		t.Errorf("progress = %v, want %v", progress.statuses, want)
	}
}

func TestProcessPDFPageErrorAborts(t *testing.T) {
	p := NewProcessor(newFakeLoader(map[string][]string{"a.pdf": {"ok", "BROKEN"}}), nil)
	if _, err := p.ProcessPDF(context.Background(), document.File{Name: "a.pdf"}); err == nil {
		t.Fatal("expected error")
	}
}

func batchLoader() *fakeLoader {
	return newFakeLoader(map[string][]string{
		"a.pdf": {"Ref No S1000001", "amazon 312345678901"},
		"b.pdf": {"Delhivery AWB: DL1234567890"},
		"c.pdf": {"Ref No S3000001"},
		"d.pdf": {"plain"},
	})
}

func TestProcessMultiplePDFs(t *testing.T) {
	progress := &progressLog{}
	p := NewProcessor(batchLoader(), nil, WithProgress(progress.fn))

	batch, err := p.ProcessMultiplePDFs(context.Background(), files("a.pdf", "b.pdf", "c.pdf", "d.pdf"))
	if err != nil {
		t.Fatalf("ProcessMultiplePDFs: %v", err)
	}
	if len(batch.NormalData) != 5 {
		t.Errorf("got %d records, want 5", len(batch.NormalData))
	}
	if len(batch.AmazonPDFs) != 1 {
		t.Fatalf("got %d derived documents, want 1", len(batch.AmazonPDFs))
	}
	sub := batch.AmazonPDFs[0]
	if sub.Name != "amazon_a.pdf" || sub.Origin != "a.pdf" || !slices.Equal(sub.SourcePages, []int{2}) {
		t.Errorf("derived document = %+v", sub)
	}
	if !slices.Contains(progress.percents, 0) || !slices.Contains(progress.percents, 75) {
		t.Errorf("percents = %v, want window starts 0 and 75", progress.percents)
	}
	if !slices.Contains(progress.statuses, "Processing d.pdf...") {
		t.Errorf("statuses = %v", progress.statuses)
	}
}

func TestProcessMultiplePDFsAbortsOnFailure(t *testing.T) {
	p := NewProcessor(batchLoader(), nil)
	batch, err := p.ProcessMultiplePDFs(context.Background(), files("a.pdf", "missing.pdf"))
	if err == nil {
		t.Fatal("expected error")
	}
	if len(batch.NormalData) != 0 || len(batch.AmazonPDFs) != 0 {
		t.Errorf("aborted batch returned partial results: %+v", batch)
	}
}

func TestProcessAmazonPDF(t *testing.T) {
	loader := newFakeLoader(map[string][]string{
		"amazon_x.pdf": {"Order 403-1234567-7654321", "nothing useful"},
	})
	p := NewProcessor(loader, textOCR{})

	records, err := p.ProcessAmazonPDF(context.Background(), document.File{
		Name:        "amazon_x.pdf",
		Origin:      "x.pdf",
		SourcePages: []int{4, 9},
	})
	if err != nil {
		t.Fatalf("ProcessAmazonPDF: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records", len(records))
	}

	first := records[0]
	if first.Page != 4 || first.FileName != "amazon_x.pdf" || first.Origin != "x.pdf" {
		t.Errorf("identity = page %d file %q origin %q", first.Page, first.FileName, first.Origin)
	}
	if first.SourceID != "403-1234567-7654321" {
		t.Errorf("source id = %q, want the order id fallback", first.SourceID)
	}
	if first.Courier != constants.CourierAmazon || !first.OCR || !first.IsAmazon {
		t.Errorf("record = %+v", first)
	}

	second := records[1]
	if second.Page != 9 || second.Status != constants.PageStatusManualReview {
		t.Errorf("second = %+v", second)
	}
	if second.SourceID != constants.NoSourceID || second.AWB != constants.UnknownAWB {
		t.Errorf("placeholders missing: %+v", second)
	}
}

func TestRunReplacesTextRecordsWithOCR(t *testing.T) {
	p := NewProcessor(batchLoader(), textOCR{})
	session := aggregate.NewSession()

	batch, err := p.Run(context.Background(), session, files("a.pdf", "b.pdf"), true)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(batch.AmazonPDFs) != 1 {
		t.Fatalf("derived documents = %d", len(batch.AmazonPDFs))
	}

	got := session.Records()
	if len(got) != 2 {
		t.Fatalf("session has %d records, want b.pdf text record plus one OCR record: %+v", len(got), got)
	}
	if got[0].Origin != "b.pdf" || got[0].OCR {
		t.Errorf("first record = %+v", got[0])
	}
	ocrRec := got[1]
	if !ocrRec.OCR || ocrRec.Origin != "a.pdf" || ocrRec.Page != 2 || ocrRec.AWB != "312345678901" {
		t.Errorf("ocr record = %+v", ocrRec)
	}
	if !slices.Equal(session.Files(), []string{"a.pdf", "b.pdf"}) {
		t.Errorf("files = %v", session.Files())
	}
}

func TestScanOCRFailureLeavesSessionUntouched(t *testing.T) {
	loader := newFakeLoader(map[string][]string{
		"a.pdf":        {"Ref No S1000001"},
		"amazon_a.pdf": {"UNREADABLE"},
	})
	p := NewProcessor(loader, textOCR{})
	session := aggregate.NewSession()
	if _, err := p.Run(context.Background(), session, files("a.pdf"), false); err != nil {
		t.Fatal(err)
	}

	err := p.ScanOCR(context.Background(), session, []document.File{{Name: "amazon_a.pdf", Origin: "a.pdf"}})
	if err == nil {
		t.Fatal("expected error")
	}
	got := session.Records()
	if len(got) != 1 || got[0].SourceID != "S1000001" {
		t.Errorf("session changed after failed scan: %+v", got)
	}
}
