package http

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/profile-service/internal/config"
	"github.com/khoahotran/profile-service/pkg/logger"
)

func NewRouter(cfg config.Config, profileHandler *ProfileHandler, projectHandler *ProjectHandler, log logger.Logger) *gin.Engine {
	startedAt := time.Now()

	router := gin.New()
	router.Use(
		RequestID(),
		RequestLogger(log),
		Recovery(log),
		CORS(cfg.App.CORSOrigins, cfg.AllowAllOrigins()),
		ErrorMiddleware(log),
	)

	api := router.Group("/api")
	{
		profiles := api.Group("/Profile")
		{
			profiles.POST("/Create_profile", profileHandler.CreateProfile)
			profiles.GET("/Get_profile/:id", profileHandler.GetProfile)
			profiles.GET("/Get_all_profile", profileHandler.ListProfiles)
			profiles.PUT("/Update_profile/:id", profileHandler.UpdateProfile)
		}

		projects := api.Group("/Project")
		{
			projects.POST("/Add_Project", projectHandler.AddProject)
			projects.GET("/List_Project", projectHandler.ListProjects)
			projects.GET("/List_Skills", projectHandler.ListSkills)
			projects.POST("/Search_Profile_By_Skills", projectHandler.SearchProfilesBySkills)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"uptime":    time.Since(startedAt).Seconds(),
			"timestamp": time.Now().UTC(),
		})
	})

	router.NoRoute(staticUI(cfg.App.StaticDir, log))

	return router
}

// staticUI serves files of the single page UI and falls back to index.html
// for client-side routes. Unknown /api/ paths stay JSON 404s.
func staticUI(dir string, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		urlPath := c.Request.URL.Path
		if strings.HasPrefix(urlPath, "/api/") || dir == "" ||
			(c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
			c.JSON(http.StatusNotFound, gin.H{"status": "fail", "message": "Route not found"})
			return
		}

		file := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+urlPath)))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}

		index := filepath.Join(dir, "index.html")
		if _, err := os.Stat(index); err != nil {
			log.Error("Error sending index.html", err)
			c.String(http.StatusInternalServerError, "Server error")
			return
		}
		c.File(index)
	}
}
