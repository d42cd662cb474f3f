package middleware

import (
	"pos_backend/pkg/services"
	"pos_backend/pkg/session"
	"pos_backend/pkg/store"

	"github.com/gin-gonic/gin"
)

// App is what request handlers share.
type App struct {
	State     *store.AppState
	Idle      *session.IdleTracker
	Assistant *services.Assistant
}

const appKey = "app"

// WithApp makes app available to every handler through GetApp.
func WithApp(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(appKey, app)
		c.Next()
	}
}

// GetApp returns the App installed by WithApp.
func GetApp(c *gin.Context) *App {
	return c.MustGet(appKey).(*App)
}
