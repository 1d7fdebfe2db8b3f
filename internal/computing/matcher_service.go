package computing

import (
	"errors"
	"net/http"

	"github.com/filswan/go-swan-lib/logs"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lagrangedao/go-machine-matcher/internal/matcher"
	"github.com/lagrangedao/go-machine-matcher/internal/models"
	"github.com/lagrangedao/go-machine-matcher/util"
)

type MatcherService struct {
	matcher *matcher.Matcher
}

func NewMatcherService(m *matcher.Matcher) *MatcherService {
	return &MatcherService{matcher: m}
}

type SelectMachineResp struct {
	Selection models.Selection `json:"selection"`
	Warnings  []models.Warning `json:"warnings"`
}

type UnsupportedAcceleratorResp struct {
	Machine   string   `json:"machine"`
	Requested string   `json:"requested"`
	Supported []string `json:"supported"`
}

func (s *MatcherService) Health(c *gin.Context) {
	c.JSON(http.StatusOK, util.CreateSuccessResponse("healthy"))
}

func (s *MatcherService) ListCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, util.CreateSuccessResponse(s.matcher.Catalog()))
}

func (s *MatcherService) SelectMachine(c *gin.Context) {
	requestId := uuid.NewString()

	var req models.ResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logs.GetLogger().Errorf("request %s: failed to bind select request, error: %v", requestId, err)
		c.JSON(http.StatusBadRequest, util.CreateErrorResponse(util.JsonError, err.Error()).WithRequestId(requestId))
		return
	}

	selection, warnings, err := s.matcher.SelectMachine(req)
	if err != nil {
		var invalid *matcher.InvalidRequestError
		var unsupported *matcher.UnsupportedAcceleratorError
		switch {
		case errors.As(err, &invalid):
			logs.GetLogger().Warnf("request %s: %v", requestId, err)
			c.JSON(http.StatusBadRequest, util.CreateErrorResponse(util.InvalidRequestError, err.Error()).WithRequestId(requestId))
		case errors.As(err, &unsupported):
			logs.GetLogger().Warnf("request %s: %v", requestId, err)
			c.JSON(http.StatusUnprocessableEntity, util.CreateErrorResponse(util.UnsupportedAcceleratorError, err.Error()).
				WithRequestId(requestId).
				WithData(UnsupportedAcceleratorResp{
					Machine:   unsupported.Machine,
					Requested: unsupported.Requested,
					Supported: unsupported.Supported,
				}))
		default:
			logs.GetLogger().Errorf("request %s: failed to select machine, error: %v", requestId, err)
			c.JSON(http.StatusInternalServerError, util.CreateErrorResponse(util.SelectMachineError).WithRequestId(requestId))
		}
		return
	}

	for _, w := range warnings {
		logs.GetLogger().Warnf("request %s: %s", requestId, w)
	}
	if warnings == nil {
		warnings = []models.Warning{}
	}
	logs.GetLogger().Infof("request %s: selected %s for %+v", requestId, selection.MachineName, req)

	c.JSON(http.StatusOK, util.CreateSuccessResponse(SelectMachineResp{
		Selection: selection,
		Warnings:  warnings,
	}).WithRequestId(requestId))
}

// RegisterRoutes mounts the matcher API under router.
func (s *MatcherService) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", s.Health)
	router.GET("/catalog", s.ListCatalog)
	router.POST("/select", s.SelectMachine)
}
