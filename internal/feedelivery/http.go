// Package feedelivery manages delivery layer of fee rules.
package feedelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/VictorMordachini/conta-bancaria/internal/domain"
	"github.com/VictorMordachini/conta-bancaria/pkg/errorspkg"
	"github.com/VictorMordachini/conta-bancaria/pkg/web"
)

// Service provides service layer interface needed by fee delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package feedelivery
type Service interface {
	Create(ctx context.Context, description string, rate, flatAmount decimal.Decimal) (domain.FeeRule, error)
	Get(ctx context.Context, id string) (domain.FeeRule, error)
	List(ctx context.Context) ([]domain.FeeRule, error)
	Update(ctx context.Context, id, description string, rate, flatAmount decimal.Decimal) (domain.FeeRule, error)
	Delete(ctx context.Context, id string) error
}

// Handler facilitates fee rule delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns fee rule handler.
func NewHandler(fs Service) Handler {
	return Handler{service: fs}
}

type ruleRequest struct {
	Description string `json:"description" binding:"required,min=1"`
	Rate        string `json:"rate" binding:"required,decimal"`
	FlatAmount  string `json:"flat_amount" binding:"required,decimal"`
}

type idRequest struct {
	ID string `uri:"id" binding:"required"`
}

// Create handles http request to create a fee rule.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req ruleRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	rate, flat, err := parseRule(req)
	if err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidAmount))
		return
	}

	rule, err := h.service.Create(ctx, req.Description, rate, flat)
	if err != nil {
		if err == domain.ErrFeeRuleExists {
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: gin.H{"fee_rule": rule}})
}

// Get handles http request to get one fee rule.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req idRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return
	}

	rule, err := h.service.Get(ctx, req.ID)
	if err != nil {
		if err == domain.ErrFeeRuleNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: gin.H{"fee_rule": rule}})
}

// List handles http request to list every fee rule.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	rules, err := h.service.List(ctx)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: gin.H{"fee_rules": rules}})
}

// Update handles http request to replace a fee rule's fields.
func (h *Handler) Update(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var uri idRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return
	}

	var req ruleRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	rate, flat, err := parseRule(req)
	if err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidAmount))
		return
	}

	rule, err := h.service.Update(ctx, uri.ID, req.Description, rate, flat)
	if err != nil {
		switch err {
		case domain.ErrFeeRuleNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrFeeRuleExists:
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: gin.H{"fee_rule": rule}})
}

// Delete handles http request to delete a fee rule.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req idRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return
	}

	if err := h.service.Delete(ctx, req.ID); err != nil {
		if err == domain.ErrFeeRuleNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.Status(http.StatusNoContent)
}

func parseRule(req ruleRequest) (rate, flat decimal.Decimal, err error) {
	if rate, err = decimal.NewFromString(req.Rate); err != nil {
		return
	}

	flat, err = decimal.NewFromString(req.FlatAmount)

	return
}
