package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"

	"portalsst.com/portalsst/infrastructure/devops"
	"portalsst.com/portalsst/security"
	"portalsst.com/portalsst/store"
	"portalsst.com/portalsst/store/dbstore"
	"portalsst.com/portalsst/store/excelstore"
	"portalsst.com/portalsst/store/sheetstore"
	"portalsst.com/portalsst/web/handlers"
	"portalsst.com/portalsst/web/middlewares"
)

func buildStore(cfg *devops.Config, logger *zap.Logger) (store.TableStore, error) {
	switch cfg.Store {
	case "excel":
		return excelstore.New(cfg.WorkbookPath, logger), nil
	case "sheets", "":
		tabs := map[string]string{}
		for _, tab := range cfg.Tabs {
			tabs[tab.Name] = tab.URL
		}
		return sheetstore.New(tabs, logger), nil
	case "db":
		dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True",
			cfg.Database.Username, cfg.Database.Password, cfg.Database.Host, cfg.Database.Name)
		return dbstore.New(mysql.Open(dsn), logger)
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

func main() {
	ctx := context.Background()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	cfg, err := devops.LoadConfig(ctx)
	if err != nil {
		logger.Fatal("config load failed", zap.Error(err))
	}

	jwtSecret, err := security.DecodeSecret(cfg.JWTSecret)
	if err != nil {
		logger.Fatal("jwt secret is not valid base64", zap.Error(err))
	}

	st, err := buildStore(cfg, logger)
	if err != nil {
		logger.Fatal("store setup failed", zap.Error(err))
	}

	r := gin.Default()
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	public := r.Group("/api/v1")
	protected := r.Group("/api/v1")
	protected.Use(middlewares.Authentication(jwtSecret))

	handlers.RegisterTables(public, protected, st, logger)
	handlers.RegisterLookup(public, st, cfg.WorkersTable, cfg.LaddersTable, logger)
	handlers.RegisterUpload(public, protected, cfg.PhotoBucket, logger)

	addr := ":8090"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	if err := r.Run(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
