package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/samersoltani/dewini-server/internal/interface/http"
)

// DocumentModule wires the document endpoints under /api/documents.
type DocumentModule struct {
	Handler *handlers.DocumentHandler
}

func NewDocumentModule(h *handlers.DocumentHandler) *DocumentModule {
	return &DocumentModule{Handler: h}
}

func (m *DocumentModule) Register(rg *gin.RouterGroup) {
	docs := rg.Group("/documents")
	docs.GET("", m.Handler.ListAll)
	docs.GET("/user/:userId", m.Handler.ListByUser)
	docs.POST("/upload", m.Handler.Upload)
	docs.DELETE("/:id", m.Handler.Delete)
	docs.GET("/download/:id", m.Handler.Download)
}
