package handler

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"fin-analyst/api/response"
	"fin-analyst/service"
	"fin-analyst/types"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const FieldQuestion = "question"

type Analyzer interface {
	Analyze(ctx context.Context, req *types.AnalysisRequest) (*types.AnalysisResult, error)
}

type AnalysisHandler struct {
	analyzer Analyzer
	log      *zap.Logger
}

func NewAnalysisHandler(analyzer Analyzer, log *zap.Logger) *AnalysisHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AnalysisHandler{
		analyzer: analyzer,
		log:      log,
	}
}

// Analyze 接收三份 PDF + 问题，返回分析结果
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	req := &types.AnalysisRequest{
		Question:  c.PostForm(FieldQuestion),
		Documents: make(map[types.StatementKind]*types.UploadedDocument, len(types.StatementOrder)),
	}

	// 非 multipart 请求视为没有上传文件，交给 service 统一校验
	if form, err := c.MultipartForm(); err == nil {
		for _, kind := range types.StatementOrder {
			files := form.File[string(kind)]
			if len(files) == 0 {
				continue
			}
			doc, closeFn, err := openUpload(kind, files[0])
			if err != nil {
				h.log.Warn("open upload failed", zap.String("file", files[0].Filename), zap.Error(err))
				response.FailWithStatus(c, http.StatusBadRequest, "文件上传失败或格式错误")
				return
			}
			defer closeFn()
			req.Documents[kind] = doc
		}
	}

	result, err := h.analyzer.Analyze(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, result.Response())
}

func (h *AnalysisHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		response.Warn(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrBusy):
		response.FailWithStatus(c, http.StatusConflict, err.Error())
	case service.IsExtractionError(err):
		response.FailWithStatus(c, http.StatusUnprocessableEntity, service.ExtractionFailedMessage+" "+err.Error())
	case service.IsRequestError(err):
		response.FailWithStatus(c, http.StatusBadGateway, err.Error())
	default:
		h.log.Error("unexpected analysis error", zap.Error(err))
		response.FailWithStatus(c, http.StatusInternalServerError, err.Error())
	}
}

func openUpload(kind types.StatementKind, fh *multipart.FileHeader) (*types.UploadedDocument, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &types.UploadedDocument{
		Kind:     kind,
		FileName: fh.Filename,
		Body:     f,
	}, func() { _ = f.Close() }, nil
}
