package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bitbucket.org/mmdatafocus/stock_planner/config"
	"bitbucket.org/mmdatafocus/stock_planner/middlewares"
	"bitbucket.org/mmdatafocus/stock_planner/models"
	"bitbucket.org/mmdatafocus/stock_planner/spreadsheet"
	"bitbucket.org/mmdatafocus/stock_planner/web"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const redisConnectAttempts = 5

// App is everything a request needs. It is read-only after startup.
type App struct {
	Settings *config.Settings
	Layout   models.SheetLayout
	Catalog  models.Catalog
	Workbook *spreadsheet.ExcelWorkbook
}

func newApp(settings *config.Settings) (*App, error) {
	layout, err := models.LayoutFor(settings.SheetLayout)
	if err != nil {
		return nil, err
	}
	catalog, err := config.LoadCatalog(settings, layout)
	if err != nil {
		return nil, err
	}
	return &App{
		Settings: settings,
		Layout:   layout,
		Catalog:  catalog,
		Workbook: spreadsheet.NewExcelWorkbook(),
	}, nil
}

func corsMiddleware(settings *config.Settings) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	// Production requires an explicit allowlist; without one only same-origin
	// requests are served.
	if settings.IsProduction() {
		origins := settings.AllowedOrigins()
		if len(origins) == 0 {
			return nil
		}
		corsConfig.AllowOrigins = origins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", middlewares.CorrelationHeader)
	corsConfig.AddExposeHeaders("Content-Length", "Content-Disposition", middlewares.CorrelationHeader)
	return cors.New(corsConfig)
}

// newRouter builds the gin engine. limiter may be nil.
func newRouter(app *App, limiter *middlewares.RateLimiter) (*gin.Engine, error) {
	logger := config.GetLogger()

	tmpl, err := web.LoadTemplates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.MaxMultipartMemory = app.Settings.MaxUploadBytes
	r.SetHTMLTemplate(tmpl)

	r.Use(middlewares.CorrelationMiddleware())
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	if h := corsMiddleware(app.Settings); h != nil {
		r.Use(h)
	}
	r.Use(middlewares.ErrorLogger(logger))
	if limiter != nil {
		r.Use(limiter.RateLimitMiddleware)
	}
	r.Use(gin.Recovery())

	r.GET("/", indexHandler(app))
	r.GET("/template", templateDownloadHandler(app))
	r.POST("/analyze", analyzePageHandler(app))

	api := r.Group("/api")
	api.GET("/catalog", apiCatalogHandler(app))
	api.POST("/analyze", apiAnalyzeHandler(app))
	api.POST("/analyze/export", apiExportHandler(app))

	r.NoRoute(customNotFoundHandler)
	return r, nil
}

func main() {
	logger := config.GetLogger()

	settings, err := config.LoadSettings()
	if err != nil {
		logger.WithFields(logrus.Fields{"field": "settings"}).Fatal(err.Error())
	}
	if settings.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := newApp(settings)
	if err != nil {
		logger.WithFields(logrus.Fields{"field": "catalog"}).Fatal(err.Error())
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	var limiter *middlewares.RateLimiter
	if settings.RateLimitEnabled {
		if config.ConnectRedisWithRetry(sigCtx, settings.RedisAddress, redisConnectAttempts) {
			limiter = middlewares.NewRateLimiter(config.GetRedisDB(), settings.RateLimitMaxRequests, time.Duration(settings.RateLimitWindowSeconds)*time.Second)
		} else {
			logger.WithFields(logrus.Fields{"field": "redis"}).Warn("rate limiting disabled (redis not ready)")
		}
	}
	defer config.CloseRedis()

	r, err := newRouter(app, limiter)
	if err != nil {
		logger.WithFields(logrus.Fields{"field": "templates"}).Fatal(err.Error())
	}

	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.ListenAndServe()
	}()

	logger.WithFields(logrus.Fields{
		"layout":   app.Layout.Locale,
		"products": len(app.Catalog.Products),
		"weeks":    len(app.Catalog.Weeks),
	}).Info("connect to http://localhost:", settings.Port, "/ for the stock planner")
	log.Println("Server started successfully")

	select {
	case <-sigCtx.Done():
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}
}
