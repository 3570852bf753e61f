package analysis

import (
	"testing"

	"fin-analyst/types"
	"fin-analyst/vars"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineStatements(t *testing.T) {
	t.Run("fixed order and labels", func(t *testing.T) {
		got := CombineStatements(map[types.StatementKind]string{
			types.CashFlowStatement: "NetCash: 10",
			types.BalanceSheet:      "Assets: 100",
			types.IncomeStatement:   "Revenue: 50",
		})

		expected := "Balance Sheet Data:\nAssets: 100\n\n" +
			"Income Statement Data:\nRevenue: 50\n\n" +
			"Cash Flow Statement Data:\nNetCash: 10"
		assert.Equal(t, expected, got)
	})

	t.Run("swapping inputs swaps label mapping only", func(t *testing.T) {
		got := CombineStatements(map[types.StatementKind]string{
			types.BalanceSheet:      "Revenue: 50",
			types.IncomeStatement:   "Assets: 100",
			types.CashFlowStatement: "NetCash: 10",
		})

		expected := "Balance Sheet Data:\nRevenue: 50\n\n" +
			"Income Statement Data:\nAssets: 100\n\n" +
			"Cash Flow Statement Data:\nNetCash: 10"
		assert.Equal(t, expected, got)
	})

	t.Run("empty statements keep their headers", func(t *testing.T) {
		got := CombineStatements(map[types.StatementKind]string{})

		assert.Equal(t, "Balance Sheet Data:\n\n\nIncome Statement Data:\n\n\nCash Flow Statement Data:\n", got)
	})
}

func TestBuildMessages(t *testing.T) {
	msgs := BuildMessages("What is the revenue?", "DATA")

	require.Len(t, msgs, 2)
	assert.Equal(t, schema.System, msgs[0].Role)
	assert.Equal(t, vars.SystemPrompt, msgs[0].Content)
	assert.Equal(t, schema.User, msgs[1].Role)
	assert.Equal(t, "What is the revenue?\n\nFinancial Data: DATA", msgs[1].Content)
}

func TestBuildMessages_Deterministic(t *testing.T) {
	a := BuildMessages("q", "d")
	b := BuildMessages("q", "d")
	other := BuildMessages("another question", "other data")

	assert.Equal(t, a, b)
	assert.Equal(t, a[0].Content, other[0].Content)
}
