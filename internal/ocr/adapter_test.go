package ocr

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/joseph-ayodele/labelscan/constants"
)

type fakeRenderer struct {
	err   error
	scale float64
}

func (r *fakeRenderer) Render(_ context.Context, _ int, scale float64) (image.Image, error) {
	r.scale = scale
	if r.err != nil {
		return nil, r.err
	}
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.SetRGBA(0, 0, color.RGBA{200, 10, 10, 255})
	return img, nil
}

type fakeRecognizer struct {
	text string
	err  error
	got  image.Image
}

func (r *fakeRecognizer) Recognize(_ context.Context, img []byte) (string, error) {
	decoded, err := png.Decode(bytes.NewReader(img))
	if err != nil {
		return "", err
	}
	r.got = decoded
	return r.text, r.err
}

func TestPerformOCR(t *testing.T) {
	rec := &fakeRecognizer{text: "AWB: ABCD123456789 DTDC"}
	rend := &fakeRenderer{}
	a := NewAdapter(Config{}, rec, nil)

	f, err := a.PerformOCR(context.Background(), rend, 1)
	if err != nil {
		t.Fatalf("PerformOCR: %v", err)
	}
	if rend.scale != 3.2 {
		t.Errorf("render scale = %v, want 3.2", rend.scale)
	}
	if _, ok := rec.got.(*image.Gray); !ok {
		t.Errorf("recognizer got %T, want a grayscale image", rec.got)
	}
	if f.AWB != "ABCD123456789" || f.Courier != constants.CourierDTDC {
		t.Errorf("fields = %+v", f)
	}
}

func TestPerformOCRNothingFound(t *testing.T) {
	a := NewAdapter(Config{}, &fakeRecognizer{text: "~~ smudge ~~"}, nil)
	f, err := a.PerformOCR(context.Background(), &fakeRenderer{}, 1)
	if err != nil {
		t.Fatalf("unreadable label must not be an error: %v", err)
	}
	if f.AWB != "" || f.SourceID != "" || f.OrderID != "" {
		t.Errorf("fields = %+v", f)
	}
}

func TestPerformOCRPropagatesFaults(t *testing.T) {
	errRender := errors.New("render boom")
	a := NewAdapter(Config{}, &fakeRecognizer{}, nil)
	if _, err := a.PerformOCR(context.Background(), &fakeRenderer{err: errRender}, 2); !errors.Is(err, errRender) {
		t.Errorf("err = %v, want render error", err)
	}

	errEngine := errors.New("engine boom")
	a = NewAdapter(Config{}, &fakeRecognizer{err: errEngine}, nil)
	if _, err := a.PerformOCR(context.Background(), &fakeRenderer{}, 2); !errors.Is(err, errEngine) {
		t.Errorf("err = %v, want engine error", err)
	}
}
