package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainagg "github.com/investfolio/investfolio-backend/internal/domain/aggregates"
	"github.com/investfolio/investfolio-backend/internal/http/response"
	"github.com/investfolio/investfolio-backend/internal/services"
)

type PortfolioHandler struct {
	portfolioService services.PortfolioService
}

func NewPortfolioHandler(portfolioService services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

type assetRequest struct {
	Symbol        string          `json:"symbol" binding:"required"`
	BrokerageRate decimal.Decimal `json:"brokerage_rate"`
}

type createPortfolioRequest struct {
	Owner           string          `json:"owner" binding:"required"`
	Title           string          `json:"title" binding:"required"`
	InvestorProfile string          `json:"investor_profile"`
	Capital         decimal.Decimal `json:"capital"`
	Modality        string          `json:"modality"`
	Markets         []string        `json:"markets"`
	Broker          string          `json:"broker"`
	BrokerageFees   decimal.Decimal `json:"brokerage_fees"`
	ExchangeFees    decimal.Decimal `json:"exchange_fees"`
	CustodyFee      decimal.Decimal `json:"custody_fee"`
	Spread          decimal.Decimal `json:"spread"`
	Assets          []assetRequest  `json:"assets"`
}

func (ph *PortfolioHandler) List(c *gin.Context) {
	portfolios, err := ph.portfolioService.ListAll(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	response.RespondOK(c, portfolios)
}

func (ph *PortfolioHandler) GetByOwner(c *gin.Context) {
	owner := c.Param("owner")
	results, err := ph.portfolioService.GetByOwner(c.Request.Context(), owner)
	if err != nil {
		response.RespondAggregateError(c, err)
		return
	}
	response.RespondOK(c, results)
}

func (ph *PortfolioHandler) Create(c *gin.Context) {
	var req createPortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	in := domainagg.CreatePortfolioInput{
		Owner:           req.Owner,
		Title:           req.Title,
		InvestorProfile: req.InvestorProfile,
		Capital:         req.Capital,
		Modality:        req.Modality,
		Markets:         req.Markets,
		Broker:          req.Broker,
		BrokerageFees:   req.BrokerageFees,
		ExchangeFees:    req.ExchangeFees,
		CustodyFee:      req.CustodyFee,
		Spread:          req.Spread,
	}
	for _, a := range req.Assets {
		in.Assets = append(in.Assets, domainagg.AssetInput{
			Symbol:        a.Symbol,
			BrokerageRate: a.BrokerageRate,
		})
	}

	result, err := ph.portfolioService.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondAggregateError(c, err)
		return
	}

	msg := "portfolio created without assets"
	if result.AssetsCreated > 0 {
		msg = "portfolio and assets created"
	}
	response.RespondCreated(c, gin.H{
		"message":        msg,
		"id":             result.PortfolioID.String(),
		"assets_created": result.AssetsCreated,
	})
}

func (ph *PortfolioHandler) Delete(c *gin.Context) {
	portfolioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	result, dErr := ph.portfolioService.Delete(c.Request.Context(), portfolioID)
	if dErr != nil {
		response.RespondAggregateError(c, dErr)
		return
	}
	response.RespondOK(c, gin.H{
		"message":        "portfolio and assets deleted",
		"id":             result.PortfolioID.String(),
		"assets_deleted": result.AssetsDeleted,
	})
}
