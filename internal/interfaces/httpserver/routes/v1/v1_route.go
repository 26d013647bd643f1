package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chapter-api/internal/config"
	"chapter-api/internal/interfaces/httpserver/handlers/generationhandler"
	"chapter-api/internal/interfaces/httpserver/handlers/instructionhandler"
	"chapter-api/internal/interfaces/httpserver/handlers/modelhandler"
	"chapter-api/internal/interfaces/httpserver/handlers/settingshandler"
)

type V1Route struct {
	generation   *generationhandler.GenerationHandler
	sessions     *generationhandler.SessionHandler
	models       *modelhandler.ModelHandler
	instructions *instructionhandler.InstructionHandler
	settings     *settingshandler.SettingsHandler
}

func NewV1Route(
	generation *generationhandler.GenerationHandler,
	sessions *generationhandler.SessionHandler,
	models *modelhandler.ModelHandler,
	instructions *instructionhandler.InstructionHandler,
	settings *settingshandler.SettingsHandler,
) *V1Route {
	return &V1Route{
		generation,
		sessions,
		models,
		instructions,
		settings,
	}
}

func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")
	v1Router.GET("/version", GetVersion)

	v1Router.POST("/chapters", v1Route.generation.Generate)

	v1Router.GET("/models", v1Route.models.List)

	instructions := v1Router.Group("/instructions")
	instructions.GET("", v1Route.instructions.List)
	instructions.POST("", v1Route.instructions.Add)
	// Limit routes are registered before :id so "limit" never binds as an id.
	instructions.GET("/limit", v1Route.instructions.GetLimit)
	instructions.PUT("/limit", v1Route.instructions.SetLimit)
	instructions.PATCH("/:id", v1Route.instructions.Rename)
	instructions.DELETE("/:id", v1Route.instructions.Delete)

	settings := v1Router.Group("/settings")
	settings.GET("", v1Route.settings.Get)
	settings.PUT("", v1Route.settings.Save)

	sessions := v1Router.Group("/sessions")
	sessions.GET("", v1Route.sessions.List)
	sessions.GET("/:id", v1Route.sessions.Get)
	sessions.DELETE("/:id", v1Route.sessions.Delete)
}

// GetVersion reports the running build.
func GetVersion(c *gin.Context) {
	environment := "unknown"
	if cfg := config.GetGlobal(); cfg != nil {
		environment = cfg.Environment
	}
	c.JSON(http.StatusOK, gin.H{
		"version":     config.Version,
		"environment": environment,
	})
}
