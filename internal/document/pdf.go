package document

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/joseph-ayodele/labelscan/internal/common"
	"github.com/joseph-ayodele/labelscan/internal/ocr"
)

var disableConfigDir sync.Once

// PDFLoader is the production Loader.
type PDFLoader struct {
	raster ocr.Rasterizer
	logger *slog.Logger
}

func NewPDFLoader(raster ocr.Rasterizer, logger *slog.Logger) *PDFLoader {
	if logger == nil {
		logger = slog.Default()
	}
	disableConfigDir.Do(api.DisableConfigDir)
	return &PDFLoader{raster: raster, logger: logger}
}

func pdfcpuConfig() *model.Configuration {
	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed
	return cfg
}

func (l *PDFLoader) Open(_ context.Context, f File) (Document, error) {
	if len(f.Data) == 0 {
		return nil, common.InputError("%s: empty PDF content", f.Name)
	}
	r, err := pdf.NewReader(bytes.NewReader(f.Data), int64(len(f.Data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", f.Name, err)
	}
	return &pdfDocument{file: f, reader: r, raster: l.raster}, nil
}

// ExtractPages builds a new PDF holding only pages, in source order,
// named prefix+f.Name and tagged with f's origin.
func (l *PDFLoader) ExtractPages(_ context.Context, f File, pages []int, prefix string) (File, error) {
	if len(pages) == 0 {
		return File{}, fmt.Errorf("extract pages from %s: no pages selected", f.Name)
	}
	selected := make([]string, len(pages))
	for i, p := range pages {
		selected[i] = strconv.Itoa(p)
	}

	var out bytes.Buffer
	if err := api.Trim(bytes.NewReader(f.Data), &out, selected, pdfcpuConfig()); err != nil {
		return File{}, fmt.Errorf("extract pages from %s: %w", f.Name, err)
	}
	l.logger.Debug("sub-document built", "file", f.Name, "pages", len(pages), "bytes", out.Len())

	source := make([]int, len(pages))
	for i, p := range pages {
		source[i] = f.SourcePage(p)
	}
	return File{
		Name:        prefix + f.Name,
		Origin:      f.OriginName(),
		Data:        out.Bytes(),
		SourcePages: source,
	}, nil
}

// PageCount validates that data is a readable PDF and returns its page count.
func PageCount(data []byte) (int, error) {
	return api.PageCount(bytes.NewReader(data), pdfcpuConfig())
}

type pdfDocument struct {
	file   File
	raster ocr.Rasterizer

	// ledongthuc readers are not safe for concurrent use.
	mu     sync.Mutex
	reader *pdf.Reader

	spill    sync.Once
	spillDir string
	spillErr error
	path     string
}

func (d *pdfDocument) NumPages() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reader.NumPage()
}

func (d *pdfDocument) PageText(page int) (text string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s page %d: text layer: %v", d.file.Name, page, r)
		}
	}()

	p := d.reader.Page(page)
	if p.V.IsNull() {
		return "", nil
	}
	text, err = p.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("%s page %d: %w", d.file.Name, page, err)
	}
	return text, nil
}

// Render needs the document on disk for pdftoppm; the bytes are spilled once.
func (d *pdfDocument) Render(ctx context.Context, page int, scale float64) (image.Image, error) {
	path, err := d.onDisk()
	if err != nil {
		return nil, err
	}
	return d.raster.RenderPage(ctx, path, page, scale)
}

func (d *pdfDocument) onDisk() (string, error) {
	d.spill.Do(func() {
		if d.file.Path != "" {
			d.path = d.file.Path
			return
		}
		dir, err := os.MkdirTemp("", "labelscan-doc-*")
		if err != nil {
			d.spillErr = err
			return
		}
		d.spillDir = dir
		d.path = filepath.Join(dir, "doc.pdf")
		d.spillErr = os.WriteFile(d.path, d.file.Data, 0o600)
	})
	return d.path, d.spillErr
}

func (d *pdfDocument) Close() error {
	if d.spillDir != "" {
		return os.RemoveAll(d.spillDir)
	}
	return nil
}
