package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lmittmann/tint"
	"github.com/subosito/gotenv"

	urbaneats "github.com/morotioye/urban-eats"
)

type scoreRequest struct {
	Text  string `json:"text" binding:"required"`
	Stars int    `json:"stars" binding:"required"`
}

type scoreResponse struct {
	RequestID string `json:"request_id"`
	urbaneats.ScoredReview
}

type server struct {
	scorer *urbaneats.ReviewScorer
}

func main() {
	initLogger()
	if err := gotenv.Load(); err != nil {
		slog.Debug("no .env file found, using OS environment")
	}

	modelDir := envOr("MODEL_DIR", "models/sentiment")
	port := envOr("PORT", "8080")

	model, err := urbaneats.LoadModel(modelDir)
	if err != nil {
		slog.Error("failed to load model", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("model loaded",
		slog.String("dir", modelDir),
		slog.Int("vocabulary", model.VocabularySize()))

	normalizer, err := urbaneats.NewNormalizer()
	if err != nil {
		slog.Error("failed to build normalizer", slog.Any("error", err))
		os.Exit(1)
	}
	subjectivity, err := urbaneats.NewVaderScorer()
	if err != nil {
		slog.Error("failed to build subjectivity scorer", slog.Any("error", err))
		os.Exit(1)
	}

	s := &server{scorer: urbaneats.NewReviewScorer(model, normalizer, subjectivity)}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	s.registerRoutes(router)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("serving", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", slog.Any("error", err))
	}
}

func (s *server) registerRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.POST("/score", s.scoreReview)
	}
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func (s *server) scoreReview(c *gin.Context) {
	var req scoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scored, err := s.scorer.Score(req.Text, req.Stars)
	if err != nil {
		if errors.Is(err, urbaneats.ErrInvalidStars) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slog.Error("scoring failed", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "scoring failed"})
		return
	}

	c.JSON(http.StatusOK, scoreResponse{
		RequestID:    uuid.NewString(),
		ScoredReview: scored,
	})
}

func initLogger() {
	handler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	})
	slog.SetDefault(slog.New(handler))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
