package serving

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/filswan/go-swan-lib/logs"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type PredictionRequest struct {
	Instances []json.RawMessage `json:"instances" binding:"required,min=1"`
}

type PredictionResponse struct {
	Prediction interface{} `json:"prediction"`
}

// Stages are the externally supplied pipeline steps run for every prediction.
type Stages interface {
	Ingest(ctx context.Context, req PredictionRequest) (interface{}, error)
	Features(ctx context.Context, input interface{}) (interface{}, error)
	Predict(ctx context.Context, model interface{}, features interface{}) (interface{}, error)
}

type ModelLoader func(ctx context.Context) (interface{}, error)

// Server is the prediction HTTP shell. The model is loaded once in NewServer
// and only read afterwards.
type Server struct {
	stages Stages
	model  interface{}
	engine *gin.Engine
}

// NewServer loads the model and builds the routes. A failing loader does not
// stop the server: /health and /predict report 503 until a restart succeeds.
func NewServer(ctx context.Context, stages Stages, loader ModelLoader) *Server {
	s := &Server{stages: stages}

	model, err := loader(ctx)
	if err != nil {
		logs.GetLogger().Errorf("Error loading model: %v", err)
	} else {
		s.model = model
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message": fmt.Sprintf("An internal server error occurred: %v", recovered),
		})
	}))
	r.GET("/health", s.health)
	r.POST("/predict", s.predict)
	s.engine = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) ModelLoaded() bool {
	return s.model != nil
}

func (s *Server) health(c *gin.Context) {
	if !s.ModelLoaded() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "detail": "Model is not loaded"})
		return
	}
	c.String(http.StatusOK, "healthy")
}

func (s *Server) predict(c *gin.Context) {
	if !s.ModelLoaded() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Model is not loaded"})
		return
	}

	var req PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"message": "Error during validation of request data",
			"errors":  validationErrors(err),
		})
		return
	}

	prediction, err := s.run(c.Request.Context(), req)
	if err != nil {
		logs.GetLogger().Errorf("prediction failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": fmt.Sprintf("An error occurred during prediction: %v", err),
		})
		return
	}
	c.JSON(http.StatusOK, PredictionResponse{Prediction: prediction})
}

func (s *Server) run(ctx context.Context, req PredictionRequest) (interface{}, error) {
	input, err := s.stages.Ingest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	features, err := s.stages.Features(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("features: %w", err)
	}
	prediction, err := s.stages.Predict(ctx, s.model, features)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	return prediction, nil
}

func validationErrors(err error) []string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		out = append(out, fmt.Sprintf("%s failed on the '%s' rule", fe.Field(), fe.Tag()))
	}
	return out
}
