package parser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"fin-analyst/logic/ingestion/processors"

	"github.com/cloudwego/eino-ext/components/document/loader/file"
	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoparser "github.com/cloudwego/eino/components/document/parser"
	"github.com/cloudwego/eino/schema"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

const DefaultTimeout = 30 * time.Second

var ErrExtraction = errors.New("pdf text extraction failed")

// ExtractionError 单个文档提取失败；调用方应视该文档为不可用
type ExtractionError struct {
	FileName string
	Err      error
}

func (e *ExtractionError) Error() string {
	if e.FileName == "" {
		return fmt.Sprintf("Error extracting text from PDF: %v", e.Err)
	}
	return fmt.Sprintf("Error extracting text from PDF %s: %v", e.FileName, e.Err)
}

func (e *ExtractionError) Unwrap() []error {
	return []error{ErrExtraction, e.Err}
}

type Extractor struct {
	pdfParser einoparser.Parser
	timeout   time.Duration
}

type Option func(*Extractor)

// WithTimeout 单个文档的解析上限；<=0 时使用 DefaultTimeout
func WithTimeout(d time.Duration) Option {
	return func(e *Extractor) {
		if d > 0 {
			e.timeout = d
		}
	}
}

func NewExtractor(ctx context.Context, opts ...Option) (*Extractor, error) {
	// pdfcpu 默认会在用户目录下写配置
	api.DisableConfigDir()

	p, err := pdf.NewPDFParser(ctx, &pdf.Config{ToPages: false})
	if err != nil {
		return nil, fmt.Errorf("create pdf parser failed: %w", err)
	}
	e := &Extractor{pdfParser: p, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Extract returns the text of every page in page order, trimmed as a whole.
// A readable PDF without text gives "", a broken one gives *ExtractionError.
func (e *Extractor) Extract(ctx context.Context, r io.Reader, fileName string) (string, error) {
	if r == nil {
		return "", &ExtractionError{FileName: fileName, Err: errors.New("empty stream")}
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return "", &ExtractionError{FileName: fileName, Err: fmt.Errorf("read pdf failed: %w", err)}
	}

	pages, err := checkStructure(raw)
	if err != nil {
		return "", &ExtractionError{FileName: fileName, Err: err}
	}
	if pages == 0 {
		return "", nil
	}

	docs, err := e.parse(ctx, raw, fileName)
	if err != nil {
		return "", &ExtractionError{FileName: fileName, Err: err}
	}

	return processors.Processor(ctx, docs), nil
}

type parseResult struct {
	docs []*schema.Document
	err  error
}

// parse 在独立 goroutine 中解析，超时或 ctx 取消时立即返回
func (e *Extractor) parse(ctx context.Context, raw []byte, fileName string) ([]*schema.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	done := make(chan parseResult, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- parseResult{err: fmt.Errorf("pdf parser panic: %v", rec)}
			}
		}()
		docs, err := e.pdfParser.Parse(ctx, bytes.NewReader(raw),
			einoparser.WithURI(fileName),
			einoparser.WithExtraMeta(map[string]any{file.MetaKeyFileName: fileName}),
		)
		done <- parseResult{docs: docs, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("parse aborted: %w", ctx.Err())
	case res := <-done:
		return res.docs, res.err
	}
}
