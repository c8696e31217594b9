package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/joseph-ayodele/labelscan/internal/common"
	"github.com/joseph-ayodele/labelscan/internal/document"
	"github.com/joseph-ayodele/labelscan/internal/export"
	"github.com/joseph-ayodele/labelscan/internal/extract"
	"github.com/joseph-ayodele/labelscan/internal/ingest"
	"github.com/joseph-ayodele/labelscan/internal/ocr"
	"github.com/joseph-ayodele/labelscan/internal/pipeline"
	"github.com/joseph-ayodele/labelscan/internal/testutil"
)

// stubOCR reports the same AWB for every page it is asked about.
type stubOCR struct {
	mu    sync.Mutex
	pages []int
}

func (s *stubOCR) PerformOCR(_ context.Context, _ ocr.PageRenderer, page int) (extract.Fields, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages = append(s.pages, page)
	return extract.Fields{AWB: "312345678901", Courier: "Amazon Shipping"}, nil
}

func newTestService(t *testing.T, pageOCR pipeline.PageOCR) (*Service, string, string) {
	t.Helper()
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	writePDF := func(name string, pages ...string) {
		if err := os.WriteFile(filepath.Join(in, name), testutil.TextPDF(pages...), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	writePDF("labels.pdf", "Ref No S1000001 Delhivery", "Amazon ITSC delivery station", "nothing here")
	writePDF("more.pdf", "Blue Dart AWB: 1234567890AB")

	loader := document.NewPDFLoader(ocr.Rasterizer{}, nil)
	proc := pipeline.NewProcessor(loader, pageOCR, pipeline.WithFileWindow(1), pipeline.WithPageChunk(2))
	return NewService(ingest.NewFSIngestor(nil), proc, out, true, nil, nil), in, out
}

func TestRunTextMode(t *testing.T) {
	svc, in, out := newTestService(t, nil)

	res, err := svc.Run(context.Background(), Request{Paths: []string{in}, Mode: ModeText})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Stats.Total != 4 || res.Stats.WithSourceID != 1 || res.Stats.AWBOnly != 1 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if !slices.Equal(res.SourceIDs, []string{"S1000001"}) {
		t.Errorf("source ids = %v", res.SourceIDs)
	}
	if len(res.Derived) != 1 || res.Derived[0].Name != "amazon_labels.pdf" {
		t.Errorf("derived = %+v", res.Derived)
	}
	if len(res.Artifacts) != 4 {
		t.Fatalf("artifacts = %v", res.Artifacts)
	}
	for _, p := range res.Artifacts {
		if filepath.Dir(p) != out {
			t.Errorf("artifact %s outside %s", p, out)
		}
	}
	if _, err := os.Stat(filepath.Join(out, export.FileReport)); err != nil {
		t.Errorf("report missing: %v", err)
	}
}

func TestRunExtractModeMergesOCR(t *testing.T) {
	stub := &stubOCR{}
	svc, in, _ := newTestService(t, stub)

	res, err := svc.Run(context.Background(), Request{Paths: []string{filepath.Join(in, "labels.pdf")}})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !slices.Equal(stub.pages, []int{1}) {
		t.Errorf("ocr pages = %v, want the single page of the derived document", stub.pages)
	}
	if len(res.Records) != 1 {
		t.Fatalf("records = %+v", res.Records)
	}
	r := res.Records[0]
	if !r.OCR || r.Origin != "labels.pdf" || r.Page != 2 || r.AWB != "312345678901" {
		t.Errorf("record = %+v", r)
	}
}

func TestRunScanOCRReplacesSelectedFiles(t *testing.T) {
	stub := &stubOCR{}
	svc, in, _ := newTestService(t, stub)

	res, err := svc.Run(context.Background(), Request{Paths: []string{filepath.Join(in, "more.pdf")}, Mode: ModeScanOCR})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Records) != 1 || !res.Records[0].OCR || res.Records[0].FileName != "more.pdf" {
		t.Errorf("records = %+v", res.Records)
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	svc, in, out := newTestService(t, nil)
	_, err := svc.Run(context.Background(), Request{Paths: []string{filepath.Join(in, "missing.pdf")}})
	if !errors.Is(err, common.ErrInvalidInput) {
		t.Fatalf("err = %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output directory created for a rejected batch")
	}
}

func TestRunKeepsRunIDFromContext(t *testing.T) {
	svc, in, out := newTestService(t, nil)
	ctx := common.WithRunID(context.Background(), "job-7")

	res, err := svc.Run(ctx, Request{Paths: []string{in}, Mode: ModeText})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.SessionID != "job-7" {
		t.Errorf("session id = %q, want job-7", res.SessionID)
	}
	data, err := os.ReadFile(filepath.Join(out, export.FileReport))
	if err != nil {
		t.Fatal(err)
	}
	var report export.Report
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatal(err)
	}
	if report.RunID != "job-7" {
		t.Errorf("report run id = %q", report.RunID)
	}
}

type failingOCR struct{ err error }

func (f failingOCR) PerformOCR(context.Context, ocr.PageRenderer, int) (extract.Fields, error) {
	return extract.Fields{}, f.err
}

func TestRunClassifiesOCRFailures(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		internal bool
	}{
		{"engine fault", errors.New("tesseract crashed"), true},
		{"missing renderer", common.DependencyError("pdftoppm", errors.New("not in PATH")), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, in, _ := newTestService(t, failingOCR{err: tt.err})
			_, err := svc.Run(context.Background(), Request{Paths: []string{in}, Mode: ModeExtract})

			var appErr *common.AppError
			if !errors.As(err, &appErr) || appErr.Code != common.CodeExtraction {
				t.Fatalf("err = %v, want an %s AppError", err, common.CodeExtraction)
			}
			if got := errors.Is(err, common.ErrInternal); got != tt.internal {
				t.Errorf("errors.Is(err, ErrInternal) = %v, want %v", got, tt.internal)
			}
			if !tt.internal && !errors.Is(err, common.ErrDependencyUnavailable) {
				t.Errorf("dependency failure lost its class: %v", err)
			}
		})
	}
}

func TestCheckedOCRFailsFastWithoutRenderer(t *testing.T) {
	stub := &stubOCR{}
	c := &checkedOCR{next: stub, bin: "labelscan-no-such-renderer"}
	for range 2 {
		_, err := c.PerformOCR(context.Background(), nil, 1)
		if !errors.Is(err, common.ErrDependencyUnavailable) {
			t.Fatalf("err = %v", err)
		}
	}
	if len(stub.pages) != 0 {
		t.Error("OCR ran without a renderer")
	}
}
