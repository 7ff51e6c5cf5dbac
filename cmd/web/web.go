package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/yatube/yatube-be/config"
	"github.com/yatube/yatube-be/controllers"
	"github.com/yatube/yatube-be/db/mysql"
	"github.com/yatube/yatube-be/logger"
	"github.com/yatube/yatube-be/routes"
	"github.com/yatube/yatube-be/services"
)

func main() {
	config.Init()
	cfg := config.Get()
	logger.Init(cfg.GinMode)

	database, err := mysql.GetDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to the database")
	}
	defer database.Close()

	if err := configureFirebaseCredentials(); err != nil {
		log.Fatal().Err(err).Msg("failed to configure firebase credentials")
	}
	app, err := firebase.NewApp(context.Background(), nil)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize firebase")
	}
	authClient, err := app.Auth(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize the auth client")
	}

	uploadsBucket, err := services.NewStorageBucket(context.Background(), app, cfg.UploadsBucket)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to the uploads bucket")
	}

	pageCache, err := services.NewRedisPageCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer pageCache.Close()

	groupController, err := controllers.NewGroupController(context.Background(), database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize the group controller")
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.FEOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:  []string{"Origin", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "page not found",
		})
	})

	routes.AddHealthCheckRoutes(&r.RouterGroup)
	routes.AddPostRoutes(&r.RouterGroup, database, authClient, uploadsBucket, groupController,
		pageCache, cfg.PageCacheTTL)
	routes.AddFollowRoutes(&r.RouterGroup, database, authClient)
	routes.AddGroupRoutes(&r.RouterGroup, database, authClient, groupController)
	routes.AddUserRoutes(&r.RouterGroup, database, authClient)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("web server exited")
	}
}

const (
	CredentialsPathEnvVar = "GOOGLE_APPLICATION_CREDENTIALS"
	CredentialsJsonEnvVar = "GOOGLE_APPLICATION_CREDENTIALS_JSON"
	TargetCredentialsFile = "./google-application-credentials.json"
)

func configureFirebaseCredentials() error {
	credentialsPath, hasCredentialsPath := os.LookupEnv(CredentialsPathEnvVar)
	if hasCredentialsPath {
		log.Info().Str("path", credentialsPath).Msg("credentials path detected in env")
		return nil
	}
	credentialsJson, hasCredentialsJson := os.LookupEnv(CredentialsJsonEnvVar)
	if hasCredentialsJson {
		log.Info().Msg("credentials JSON string detected in env")
		if err := os.WriteFile(TargetCredentialsFile, []byte(credentialsJson), 400); err != nil {
			return fmt.Errorf("error writing credentials to temp file, %w", err)
		}
		if err := os.Setenv(CredentialsPathEnvVar, TargetCredentialsFile); err != nil {
			return fmt.Errorf("error setting %v env var %w", CredentialsPathEnvVar, err)
		}
		return nil
	}
	return fmt.Errorf("must specify either %v (a path)"+
		" or %v (credentials as JSON string)", CredentialsPathEnvVar, CredentialsJsonEnvVar)
}
