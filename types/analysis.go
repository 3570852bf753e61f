package types

import (
	"io"
	"time"
)

type StatementKind string

const (
	BalanceSheet      StatementKind = "balance_sheet"
	IncomeStatement   StatementKind = "income_statement"
	CashFlowStatement StatementKind = "cash_flow_statement"
)

const DocumentExtension = ".pdf"

// StatementOrder 固定顺序：资产负债表、利润表、现金流量表
var StatementOrder = []StatementKind{BalanceSheet, IncomeStatement, CashFlowStatement}

// UploadedDocument 单次请求内的上传文件，只被提取一次
type UploadedDocument struct {
	Kind     StatementKind
	FileName string
	Body     io.Reader
}

type AnalysisRequest struct {
	Question  string
	Documents map[StatementKind]*UploadedDocument
}

// AnalysisResult is nil whenever the pipeline fails.
type AnalysisResult struct {
	ID      string        `json:"id"`
	Answer  string        `json:"answer"`
	Model   string        `json:"model"`
	Elapsed time.Duration `json:"-"`
}

type AnalysisResponse struct {
	ID        string `json:"id"`
	Answer    string `json:"answer"`
	Model     string `json:"model"`
	ElapsedMS int64  `json:"elapsed_ms"`
}

func (r *AnalysisResult) Response() AnalysisResponse {
	return AnalysisResponse{
		ID:        r.ID,
		Answer:    r.Answer,
		Model:     r.Model,
		ElapsedMS: r.Elapsed.Milliseconds(),
	}
}
