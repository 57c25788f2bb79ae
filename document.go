package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	model "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

var errSourceRead = errors.New("source page unreadable")

// document wraps the validated source PDF. The OS file handle is released
// inside openDocument; afterwards all pages live in the parsed context.
type document struct {
	ctx   *model.Context
	blank []byte
}

func openDocument(path string) (*document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ctx, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	return &document{ctx: ctx}, nil
}

func (d *document) pageCount() int { return d.ctx.PageCount }

// page extracts page n (1-based) as a standalone single-page PDF.
func (d *document) page(n int) (io.ReadSeeker, error) {
	if n < 1 || n > d.ctx.PageCount {
		return nil, fmt.Errorf("%w: page %d out of range (1-%d)", errSourceRead, n, d.ctx.PageCount)
	}
	r, err := api.ExtractPage(d.ctx, n)
	if err != nil {
		return nil, fmt.Errorf("%w: page %d: %v", errSourceRead, n, err)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: page %d: %v", errSourceRead, n, err)
	}
	return bytes.NewReader(b), nil
}

// blankPDF assembles a minimal PDF with one empty page per dim. The xref
// offsets are tracked while writing, so the result parses without repair.
func blankPDF(dims ...types.Dim) []byte {
	var buf bytes.Buffer
	var offsets []int
	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")
	kids := make([]string, len(dims))
	for i := range dims {
		kids[i] = fmt.Sprintf("%d 0 R", 3+i)
	}
	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(dims)))
	for _, d := range dims {
		obj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %.2f %.2f] /Resources << >> >>",
			d.Width, d.Height))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}

// blankPage returns an empty page with the width/height of page 1,
// regardless of which slot it fills. Built once, then served from cache.
func (d *document) blankPage() (io.ReadSeeker, error) {
	if d.blank == nil {
		dims, err := d.ctx.PageDims()
		if err != nil || len(dims) == 0 {
			return nil, fmt.Errorf("%w: page dimensions: %v", errSourceRead, err)
		}
		d.blank = blankPDF(dims[0])
	}
	return bytes.NewReader(d.blank), nil
}

// materialize resolves every plan slot into a single-page PDF and merges
// them in plan order. The result stays in memory; the caller persists it
// only after full success, so no truncated output ever reaches the disk.
func materialize(doc *document, plan Plan) (*bytes.Buffer, error) {
	if len(plan) == 0 {
		return nil, fmt.Errorf("%w: plan is empty, nothing to write", errInvalidInput)
	}
	pages := make([]io.ReadSeeker, 0, len(plan))
	for _, ref := range plan {
		var (
			rs  io.ReadSeeker
			err error
		)
		if ref == Blank {
			rs, err = doc.blankPage()
		} else {
			rs, err = doc.page(int(ref))
		}
		if err != nil {
			return nil, err
		}
		pages = append(pages, rs)
	}
	var out bytes.Buffer
	if err := api.MergeRaw(pages, &out, false, nil); err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	return &out, nil
}
