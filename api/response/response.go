package response

import (
	"github.com/gin-gonic/gin"
	"net/http"
)

const (
	CodeSuccess = 0
	CodeFail    = -1
	CodeWarn    = 1
)

type Response struct {
	Code int         `json:"code"` // 0:成功, -1:失败, 1:警告
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: CodeSuccess,
		Msg:  "success",
		Data: data,
	})
}

func Fail(c *gin.Context, msg string) {
	FailWithStatus(c, http.StatusOK, msg)
}

func FailWithStatus(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Response{
		Code: CodeFail,
		Msg:  msg,
		Data: nil,
	})
}

// Warn 输入不完整之类可恢复的问题
func Warn(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Response{
		Code: CodeWarn,
		Msg:  msg,
	})
}
