package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"fin-analyst/logic/analysis"
	"fin-analyst/logic/chat"
	"fin-analyst/logic/ingestion/parser"
	"fin-analyst/pkg/metrics"
	"fin-analyst/types"
	"fin-analyst/vars"

	"github.com/cloudwego/eino/components/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

var (
	ErrValidation = errors.New("invalid analysis input")
	ErrBusy       = errors.New("an analysis is already running, try again shortly")
)

const (
	MissingInputMessage     = "Please upload all three PDFs and enter a question."
	ExtractionFailedMessage = "Failed to extract financial data from one or more PDFs."
)

// ValidationError 缺少上传文件或问题；不会发起任何提取或网络调用
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	msg := MissingInputMessage
	if len(e.Missing) > 0 {
		msg += " Missing: " + strings.Join(e.Missing, ", ") + "."
	}
	if len(e.Invalid) > 0 {
		msg += " Not a PDF: " + strings.Join(e.Invalid, ", ") + "."
	}
	return msg
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

type TextExtractor interface {
	Extract(ctx context.Context, r io.Reader, fileName string) (string, error)
}

type AnalysisService struct {
	extractor TextExtractor
	chatModel model.BaseChatModel
	modelName string
	guard     *semaphore.Weighted
	log       *zap.Logger
	metrics   *metrics.Recorder
}

type Option func(*AnalysisService)

func WithLogger(log *zap.Logger) Option {
	return func(s *AnalysisService) { s.log = log }
}

func WithMetrics(m *metrics.Recorder) Option {
	return func(s *AnalysisService) { s.metrics = m }
}

// WithMaxConcurrent 同时允许的分析数，超出时直接返回 ErrBusy
func WithMaxConcurrent(n int) Option {
	return func(s *AnalysisService) {
		if n > 0 {
			s.guard = semaphore.NewWeighted(int64(n))
		}
	}
}

func WithModelName(name string) Option {
	return func(s *AnalysisService) { s.modelName = name }
}

// 构造函数：依赖注入
func NewAnalysisService(extractor TextExtractor, chatModel model.BaseChatModel, opts ...Option) *AnalysisService {
	s := &AnalysisService{
		extractor: extractor,
		chatModel: chatModel,
		modelName: vars.MIXTRAL,
		guard:     semaphore.NewWeighted(1),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze runs one pipeline invocation: validate, extract the three
// statements, assemble the prompt, call the model once.
func (s *AnalysisService) Analyze(ctx context.Context, req *types.AnalysisRequest) (*types.AnalysisResult, error) {
	if err := validate(req); err != nil {
		s.metrics.Outcome(metrics.OutcomeValidation)
		s.log.Warn("analysis rejected", zap.Error(err))
		return nil, err
	}

	if !s.guard.TryAcquire(1) {
		s.metrics.Outcome(metrics.OutcomeBusy)
		return nil, ErrBusy
	}
	defer s.guard.Release(1)

	startTime := time.Now()
	id := uuid.New().String()
	log := s.log.With(zap.String("analysis_id", id))

	// 1. 提取三份报表，任何一份失败即整体中止
	extractStart := time.Now()
	texts := make(map[types.StatementKind]string, len(types.StatementOrder))
	for _, kind := range types.StatementOrder {
		doc := req.Documents[kind]
		text, err := s.extractor.Extract(ctx, doc.Body, doc.FileName)
		if err != nil {
			s.metrics.Outcome(metrics.OutcomeExtraction)
			log.Error("extraction failed",
				zap.String("statement", string(kind)),
				zap.String("file", doc.FileName),
				zap.Error(err))
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
		log.Debug("statement extracted",
			zap.String("statement", string(kind)),
			zap.String("file", doc.FileName),
			zap.Int("chars", len(text)))
		texts[kind] = text
	}
	s.metrics.Stage("extract", time.Since(extractStart))
	log.Info("pdf extraction done", zap.Duration("elapsed", time.Since(extractStart)))

	// 2. 组装 prompt
	combined := analysis.CombineStatements(texts)
	messages := analysis.BuildMessages(req.Question, combined)

	// 3. 调用 LLM
	llmStart := time.Now()
	answer, err := chat.Complete(ctx, s.chatModel, s.modelName, messages)
	s.metrics.Stage("request", time.Since(llmStart))
	if err != nil {
		s.metrics.Outcome(metrics.OutcomeRequest)
		log.Error("chat completion failed", zap.Error(err))
		return nil, err
	}
	log.Info("chat completion done", zap.Duration("elapsed", time.Since(llmStart)))

	elapsed := time.Since(startTime)
	s.metrics.Stage("analysis", elapsed)
	s.metrics.Outcome(metrics.OutcomeSuccess)

	return &types.AnalysisResult{
		ID:      id,
		Answer:  answer,
		Model:   s.modelName,
		Elapsed: elapsed,
	}, nil
}

func validate(req *types.AnalysisRequest) error {
	verr := &ValidationError{}
	if req == nil {
		verr.Missing = append(verr.Missing, "balance_sheet", "income_statement", "cash_flow_statement", "question")
		return verr
	}
	for _, kind := range types.StatementOrder {
		doc := req.Documents[kind]
		if doc == nil || doc.Body == nil {
			verr.Missing = append(verr.Missing, string(kind))
			continue
		}
		if doc.FileName != "" && !strings.HasSuffix(strings.ToLower(doc.FileName), types.DocumentExtension) {
			verr.Invalid = append(verr.Invalid, doc.FileName)
		}
	}
	if strings.TrimSpace(req.Question) == "" {
		verr.Missing = append(verr.Missing, "question")
	}
	if len(verr.Missing) > 0 || len(verr.Invalid) > 0 {
		return verr
	}
	return nil
}

// IsExtractionError reports whether err came from PDF text extraction.
func IsExtractionError(err error) bool {
	var extractErr *parser.ExtractionError
	return errors.As(err, &extractErr)
}

// IsRequestError reports whether err came from the chat completion call.
func IsRequestError(err error) bool {
	var reqErr *chat.RequestError
	return errors.As(err, &reqErr)
}
