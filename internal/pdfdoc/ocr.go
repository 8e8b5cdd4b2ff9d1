package pdfdoc

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// PopplerRasterizer renders pages with poppler's pdftoppm.
type PopplerRasterizer struct {
	Binary string // defaults to "pdftoppm"
	DPI    int    // defaults to 200
}

// Rasterize implements Rasterizer.
func (r PopplerRasterizer) Rasterize(ctx context.Context, path, password string, page int) (Image, error) {
	bin := r.Binary
	if bin == "" {
		bin = "pdftoppm"
	}
	dpi := r.DPI
	if dpi <= 0 {
		dpi = 200
	}

	dir, err := os.MkdirTemp("", "rentalai-ocr-*")
	if err != nil {
		return Image{}, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	root := filepath.Join(dir, "page")
	n := strconv.Itoa(page)
	args := []string{"-png", "-r", strconv.Itoa(dpi), "-f", n, "-l", n, "-singlefile"}
	if password != "" {
		args = append(args, "-upw", password)
	}
	args = append(args, path, root)

	cmd := exec.CommandContext(ctx, bin, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return Image{}, fmt.Errorf("%s: %s: %w", bin, bytes.TrimSpace(out), err)
	}

	data, err := os.ReadFile(root + ".png")
	if err != nil {
		return Image{}, fmt.Errorf("reading rendered page: %w", err)
	}
	return Image{Page: page, PNG: data}, nil
}

// TesseractRecognizer runs the tesseract CLI, streaming the image on stdin.
type TesseractRecognizer struct {
	Binary string // defaults to "tesseract"
	Lang   string // defaults to "eng"
}

// Recognize implements Recognizer.
func (t TesseractRecognizer) Recognize(ctx context.Context, img Image) (string, error) {
	bin := t.Binary
	if bin == "" {
		bin = "tesseract"
	}
	lang := t.Lang
	if lang == "" {
		lang = "eng"
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "stdin", "stdout", "-l", lang)
	cmd.Stdin = bytes.NewReader(img.PNG)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %s: %w", bin, bytes.TrimSpace(stderr.Bytes()), err)
	}
	return stdout.String(), nil
}

// Available reports whether both OCR binaries can be found on PATH.
func Available(r PopplerRasterizer, t TesseractRecognizer) bool {
	rb, tb := r.Binary, t.Binary
	if rb == "" {
		rb = "pdftoppm"
	}
	if tb == "" {
		tb = "tesseract"
	}
	if _, err := exec.LookPath(rb); err != nil {
		return false
	}
	_, err := exec.LookPath(tb)
	return err == nil
}
