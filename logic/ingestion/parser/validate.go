package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

const maxPageTreeDepth = 32

// checkStructure 在交给文本提取之前用 pdfcpu 做一遍结构校验，返回页数
func checkStructure(raw []byte) (int, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	pctx, err := api.ReadContext(bytes.NewReader(raw), conf)
	if err != nil {
		return 0, fmt.Errorf("failed to read PDF: %w", err)
	}

	pages, err := countPages(pctx)
	if err != nil {
		return 0, err
	}
	if pages == 0 {
		return 0, nil
	}

	if err := api.ValidateContext(pctx); err != nil {
		return 0, fmt.Errorf("failed to validate PDF: %w", err)
	}

	for nr := 1; nr <= pages; nr++ {
		r, err := pdfcpu.ExtractPageContent(pctx, nr)
		if err != nil {
			return 0, fmt.Errorf("page %d: read content failed: %w", nr, err)
		}
		if r == nil {
			continue
		}
		content, err := io.ReadAll(r)
		if err != nil {
			return 0, fmt.Errorf("page %d: read content failed: %w", nr, err)
		}
		if err := checkContentStream(content); err != nil {
			return 0, fmt.Errorf("page %d: %w", nr, err)
		}
	}
	return pages, nil
}

// countPages walks the page tree and requires every kid to resolve to a node
// and the leaf count to match the root /Count.
func countPages(pctx *model.Context) (int, error) {
	catalog, err := pctx.Catalog()
	if err != nil {
		return 0, fmt.Errorf("failed to read catalog: %w", err)
	}
	root, ok := catalog["Pages"]
	if !ok {
		return 0, errors.New("catalog has no page tree")
	}

	seen := make(map[int]bool)
	var walk func(o types.Object, depth int) (int, error)
	walk = func(o types.Object, depth int) (int, error) {
		if depth > maxPageTreeDepth {
			return 0, errors.New("page tree too deep")
		}
		if ir, ok := o.(types.IndirectRef); ok {
			nr := ir.ObjectNumber.Value()
			if seen[nr] {
				return 0, fmt.Errorf("page tree cycle at object %d", nr)
			}
			seen[nr] = true
		}

		obj, err := pctx.Dereference(o)
		if err != nil {
			return 0, err
		}
		d, ok := obj.(types.Dict)
		if !ok {
			return 0, fmt.Errorf("page tree node %v is missing or not a dictionary", o)
		}
		if typ := d.Type(); typ != nil && *typ == "Page" {
			return 1, nil
		}

		kidsObj, ok := d["Kids"]
		if !ok {
			return 0, fmt.Errorf("page tree node %v has no kids", o)
		}
		kids, err := pctx.DereferenceArray(kidsObj)
		if err != nil {
			return 0, err
		}
		total := 0
		for _, kid := range kids {
			n, err := walk(kid, depth+1)
			if err != nil {
				return 0, err
			}
			total += n
		}
		return total, nil
	}

	total, err := walk(root, 0)
	if err != nil {
		return 0, err
	}

	rootDict, err := pctx.DereferenceDict(root)
	if err != nil {
		return 0, err
	}
	if count := rootDict.IntEntry("Count"); count != nil && *count != total {
		return 0, fmt.Errorf("page tree declares %d pages, found %d", *count, total)
	}
	return total, nil
}

// checkContentStream 只做词法层面的检查：字符串、十六进制串、内联图像必须闭合
func checkContentStream(b []byte) error {
	for i := 0; i < len(b); i++ {
		switch c := b[i]; {
		case c == '%':
			for i < len(b) && b[i] != '\n' && b[i] != '\r' {
				i++
			}
		case c == '(':
			start := i
			depth := 1
			for i++; i < len(b) && depth > 0; i++ {
				switch b[i] {
				case '\\':
					i++
				case '(':
					depth++
				case ')':
					depth--
				}
			}
			if depth > 0 {
				return fmt.Errorf("unterminated literal string at offset %d", start)
			}
			i--
		case c == '<':
			if i+1 < len(b) && b[i+1] == '<' {
				i++
				continue
			}
			end := bytes.IndexByte(b[i:], '>')
			if end < 0 {
				return fmt.Errorf("unterminated hex string at offset %d", i)
			}
			i += end
		case c == 'I' && isToken(b, i, "ID"):
			end := indexToken(b, i+2, "EI")
			if end < 0 {
				return fmt.Errorf("unterminated inline image at offset %d", i)
			}
			i = end + 1
		}
	}
	return nil
}

func isDelim(b []byte, i int) bool {
	if i < 0 || i >= len(b) {
		return true
	}
	switch b[i] {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return true
	}
	return false
}

func isToken(b []byte, i int, tok string) bool {
	return bytes.HasPrefix(b[i:], []byte(tok)) && isDelim(b, i-1) && isDelim(b, i+len(tok))
}

func indexToken(b []byte, from int, tok string) int {
	for i := from; i+len(tok) <= len(b); i++ {
		if isToken(b, i, tok) {
			return i
		}
	}
	return -1
}
