package router

import (
	"fin-analyst/api/handler"
	"fin-analyst/api/middleware"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Options struct {
	AllowedOrigins []string
	MaxUploadMB    int
	Metrics        http.Handler
}

// NewEngine 创建 gin 引擎并挂载中间件与路由
func NewEngine(log *zap.Logger, analysisH *handler.AnalysisHandler, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(log))
	if corsMW := middleware.CORS(opts.AllowedOrigins); corsMW != nil {
		r.Use(corsMW)
	}
	if opts.MaxUploadMB > 0 {
		r.MaxMultipartMemory = int64(opts.MaxUploadMB) << 20
	}
	r.SetHTMLTemplate(handler.IndexTemplates())

	RegisterRoutes(r, analysisH, opts.Metrics)
	return r
}

func RegisterRoutes(r *gin.Engine, analysisH *handler.AnalysisHandler, metrics http.Handler) {
	r.GET("/", handler.Index)
	r.GET("/healthz", handler.Healthz)
	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics))
	}

	api := r.Group("/api/v1")
	{
		api.POST("/analysis", analysisH.Analyze)
	}
}
