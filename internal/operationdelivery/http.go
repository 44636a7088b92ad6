// Package operationdelivery manages delivery layer of confirmable operation
// requests.
package operationdelivery

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

// Service provides service layer interface needed by operation delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package operationdelivery
type Service interface {
	RequestWithdrawal(ctx context.Context, number int64, amount decimal.Decimal) (string, error)
	RequestTransfer(ctx context.Context, source, destination int64, amount decimal.Decimal) (string, error)
	RequestPayment(ctx context.Context, number int64, billReference string, amount decimal.Decimal, feeIDs []string) (string, error)
}

// Handler facilitates operation delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns operation handler.
func NewHandler(os Service) Handler {
	return Handler{service: os}
}

type accepted struct {
	ConfirmationID string `json:"confirmation_id"`
	Status         string `json:"status"`
}

type numberRequest struct {
	Number int64 `uri:"number" binding:"required,min=1"`
}

type withdrawalRequest struct {
	Amount string `json:"amount" binding:"required,decimal"`
}

// RequestWithdrawal handles http request to accept a withdrawal pending
// confirmation.
func (h *Handler) RequestWithdrawal(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var uri numberRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return
	}

	var req withdrawalRequest
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

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidAmount))
		return
	}

	id, err := h.service.RequestWithdrawal(ctx, uri.Number, amount)
	if err != nil {
		respondRequestError(gctx, err)
		return
	}

	gctx.JSON(http.StatusAccepted, web.Response{Data: accepted{
		ConfirmationID: id,
		Status:         "accepted, pending confirmation",
	}})
}

type transferRequest struct {
	Destination int64  `json:"destination" binding:"required,min=1"`
	Amount      string `json:"amount" binding:"required,decimal"`
}

// RequestTransfer handles http request to accept a transfer pending
// confirmation.
func (h *Handler) RequestTransfer(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var uri numberRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return
	}

	var req transferRequest
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

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidAmount))
		return
	}

	id, err := h.service.RequestTransfer(ctx, uri.Number, req.Destination, amount)
	if err != nil {
		respondRequestError(gctx, err)
		return
	}

	gctx.JSON(http.StatusAccepted, web.Response{Data: accepted{
		ConfirmationID: id,
		Status:         "accepted, pending confirmation",
	}})
}

type paymentRequest struct {
	BillReference string   `json:"bill_reference" binding:"required"`
	Amount        string   `json:"amount" binding:"required,decimal"`
	FeeIDs        []string `json:"fee_ids" binding:"omitempty,dive,required"`
}

// RequestPayment handles http request to accept a bill payment pending
// confirmation.
func (h *Handler) RequestPayment(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var uri numberRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return
	}

	var req paymentRequest
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

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidAmount))
		return
	}

	id, err := h.service.RequestPayment(ctx, uri.Number, req.BillReference, amount, req.FeeIDs)
	if err != nil {
		respondRequestError(gctx, err)
		return
	}

	gctx.JSON(http.StatusAccepted, web.Response{Data: accepted{
		ConfirmationID: id,
		Status:         "accepted, pending confirmation",
	}})
}

func respondRequestError(gctx *gin.Context, err error) {
	switch err {
	case domain.ErrAccountNotFound, domain.ErrFeeRuleNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case domain.ErrInvalidAmount, domain.ErrInvalidOperation, domain.ErrAccountInactive:
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	case domain.ErrCodeAlreadyLinked:
		gctx.JSON(http.StatusConflict, web.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}
