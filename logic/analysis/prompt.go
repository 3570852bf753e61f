package analysis

import (
	"fin-analyst/types"
	"fin-analyst/vars"
	"strings"

	"github.com/cloudwego/eino/schema"
)

var statementLabels = map[types.StatementKind]string{
	types.BalanceSheet:      vars.BalanceSheetLabel,
	types.IncomeStatement:   vars.IncomeStatementLabel,
	types.CashFlowStatement: vars.CashFlowLabel,
}

// CombineStatements 按固定顺序拼接三份报表，每份前加标签
func CombineStatements(texts map[types.StatementKind]string) string {
	sections := make([]string, 0, len(types.StatementOrder))
	for _, kind := range types.StatementOrder {
		sections = append(sections, statementLabels[kind]+"\n"+texts[kind])
	}
	return strings.Join(sections, "\n\n")
}

// BuildMessages 构造发给 LLM 的消息：固定的 system 人设 + 一条 user 消息
func BuildMessages(question, combinedData string) []*schema.Message {
	return []*schema.Message{
		schema.SystemMessage(vars.SystemPrompt),
		schema.UserMessage(question + "\n\n" + vars.FinancialDataLabel + " " + combinedData),
	}
}
