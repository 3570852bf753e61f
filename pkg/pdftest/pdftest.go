// Package pdftest builds small single-font PDF files for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"strings"
)

const font = "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>"

// Build returns a PDF with one page per entry in pages, each page showing its
// text with Helvetica. Build() with no pages is a valid, empty document.
func Build(pages ...string) []byte {
	contents := make([]string, 0, len(pages))
	for _, text := range pages {
		contents = append(contents, fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", escape(text)))
	}
	return BuildContent(contents...)
}

// BuildContent is Build with raw page content streams, written as given.
func BuildContent(contents ...string) []byte {
	kids := make([]string, 0, len(contents))
	for i := range contents {
		kids = append(kids, fmt.Sprintf("%d 0 R", 4+2*i))
	}

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(contents)),
		font,
	}
	for i, content := range contents {
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}
	return Assemble(objects...)
}

// DanglingKid returns a document whose page tree points at an object that
// does not exist. Header, xref and trailer are all well formed.
func DanglingKid() []byte {
	return Assemble(
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [9 0 R] /Count 1 >>",
		font,
	)
}

// Assemble numbers objects from 1, object 1 being the catalog, and writes
// them with a correct xref table and trailer.
func Assemble(objects ...string) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
