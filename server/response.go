package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/errguard/handler"
)

// DataResponse is the success envelope.
type DataResponse struct {
	Data any `json:"data"`
}

// RespondOK sends 200 with data.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, DataResponse{Data: data})
}

// RespondCreated sends 201 with data.
func RespondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, DataResponse{Data: data})
}

// Data builds a value response carrying data in the success envelope.
func Data(status int, data any) (*handler.Response, error) {
	return handler.NewJSON(status, DataResponse{Data: data})
}
