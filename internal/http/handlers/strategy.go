package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainagg "github.com/investfolio/investfolio-backend/internal/domain/aggregates"
	"github.com/investfolio/investfolio-backend/internal/http/response"
	"github.com/investfolio/investfolio-backend/internal/services"
)

type StrategyHandler struct {
	strategyService services.StrategyService
}

func NewStrategyHandler(strategyService services.StrategyService) *StrategyHandler {
	return &StrategyHandler{strategyService: strategyService}
}

type indicatorRequest struct {
	Name          string          `json:"name" binding:"required"`
	Configuration json.RawMessage `json:"configuration"`
}

type createStrategyRequest struct {
	Owner        string             `json:"owner" binding:"required"`
	Portfolio    string             `json:"portfolio"`
	Title        string             `json:"title" binding:"required"`
	Target       decimal.Decimal    `json:"target"`
	StopLoss     decimal.Decimal    `json:"stop_loss"`
	PartialExit  decimal.Decimal    `json:"partial_exit"`
	AverageEntry decimal.Decimal    `json:"average_entry"`
	TimeHorizon  int                `json:"time_horizon"`
	TimeUnit     string             `json:"time_unit"`
	Note         string             `json:"note"`
	Indicators   []indicatorRequest `json:"indicators"`
}

func (sh *StrategyHandler) List(c *gin.Context) {
	strategies, err := sh.strategyService.ListAll(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	response.RespondOK(c, strategies)
}

func (sh *StrategyHandler) GetByOwner(c *gin.Context) {
	owner := c.Param("owner")
	results, err := sh.strategyService.GetByOwner(c.Request.Context(), owner)
	if err != nil {
		response.RespondAggregateError(c, err)
		return
	}
	response.RespondOK(c, results)
}

func (sh *StrategyHandler) Create(c *gin.Context) {
	var req createStrategyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	in := domainagg.CreateStrategyInput{
		Owner:        req.Owner,
		Portfolio:    req.Portfolio,
		Title:        req.Title,
		Target:       req.Target,
		StopLoss:     req.StopLoss,
		PartialExit:  req.PartialExit,
		AverageEntry: req.AverageEntry,
		TimeHorizon:  req.TimeHorizon,
		TimeUnit:     req.TimeUnit,
		Note:         req.Note,
	}
	for _, ind := range req.Indicators {
		in.Indicators = append(in.Indicators, domainagg.IndicatorInput{
			Name:          ind.Name,
			Configuration: ind.Configuration,
		})
	}

	result, err := sh.strategyService.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondAggregateError(c, err)
		return
	}

	msg := "strategy created without indicators"
	if result.IndicatorsCreated > 0 {
		msg = "strategy and indicators created"
	}
	response.RespondCreated(c, gin.H{
		"message":            msg,
		"id":                 result.StrategyID.String(),
		"indicators_created": result.IndicatorsCreated,
	})
}

func (sh *StrategyHandler) Delete(c *gin.Context) {
	strategyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	result, dErr := sh.strategyService.Delete(c.Request.Context(), strategyID)
	if dErr != nil {
		response.RespondAggregateError(c, dErr)
		return
	}
	response.RespondOK(c, gin.H{
		"message":            "strategy and indicators deleted",
		"id":                 result.StrategyID.String(),
		"indicators_deleted": result.IndicatorsDeleted,
	})
}
