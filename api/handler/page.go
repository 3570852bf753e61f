package handler

import (
	_ "embed"
	"html/template"
	"net/http"

	"fin-analyst/types"
	"fin-analyst/vars"

	"github.com/gin-gonic/gin"
)

//go:embed templates/index.html
var indexHTML string

const IndexTemplate = "index"

// IndexTemplates is installed on the engine with SetHTMLTemplate.
func IndexTemplates() *template.Template {
	return template.Must(template.New(IndexTemplate).Parse(indexHTML))
}

type uploadField struct {
	Name  string
	Label string
}

// Index 渲染上传页面
func Index(c *gin.Context) {
	c.HTML(http.StatusOK, IndexTemplate, gin.H{
		"Title": "Financial Analyst Chatbot",
		"Model": vars.MIXTRAL,
		"Uploads": []uploadField{
			{Name: string(types.BalanceSheet), Label: "Upload the Balance Sheet PDF"},
			{Name: string(types.IncomeStatement), Label: "Upload the Income Statement PDF"},
			{Name: string(types.CashFlowStatement), Label: "Upload the Cash Flow Statement PDF"},
		},
		"QuestionField": FieldQuestion,
	})
}

func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
