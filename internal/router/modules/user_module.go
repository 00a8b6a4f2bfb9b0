package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/samersoltani/dewini-server/internal/container"
	handlers "github.com/samersoltani/dewini-server/internal/interface/http"
	"github.com/samersoltani/dewini-server/internal/interface/middleware"
)

// UserModule wires the user endpoints under /api/users. Login and the
// reset flow get per-IP rate limits; registration gets a softer one.
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	registerLimiter := middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP(), nil)
	forgotLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetLimiter := middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	users := rg.Group("/users")
	users.POST("/register", registerLimiter, m.Handler.Register)
	users.POST("/login", loginLimiter, m.Handler.Login)
	users.POST("/forgot-password", forgotLimiter, m.Handler.ForgotPassword)
	users.POST("/reset-password", resetLimiter, m.Handler.ResetPassword)
}
