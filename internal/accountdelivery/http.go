// Package accountdelivery manages delivery layer of accounts and holders.
package accountdelivery

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

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	CreateHolder(ctx context.Context, name string) (domain.Holder, error)
	GetHolder(ctx context.Context, id string) (domain.Holder, error)
	Open(ctx context.Context, holderID string, accType domain.AccountType, number int64, initialDeposit decimal.Decimal) (domain.Account, error)
	Get(ctx context.Context, number int64) (domain.Account, error)
	ListByHolder(ctx context.Context, holderID string) ([]domain.Account, error)
	Deposit(ctx context.Context, number int64, amount decimal.Decimal) (domain.Account, error)
	Statement(ctx context.Context, number int64) ([]domain.Entry, error)
	Deactivate(ctx context.Context, number int64) error
	UpdateCheckingTerms(ctx context.Context, number int64, limit, feeRate *decimal.Decimal) (domain.Account, error)
	ApplyYield(ctx context.Context, number int64) (domain.Account, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) Handler {
	return Handler{service: as}
}

type data struct {
	Account domain.Account `json:"account"`
}
type response struct {
	Data data `json:"data,omitempty"`
}

type createHolderRequest struct {
	Name string `json:"name" binding:"required,min=1"`
}

// CreateHolder handles http request to register an account holder.
func (h *Handler) CreateHolder(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req createHolderRequest
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

	holder, err := h.service.CreateHolder(ctx, req.Name)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: gin.H{"holder": holder}})
}

type openRequest struct {
	HolderID       string `json:"holder_id" binding:"required"`
	Type           string `json:"type" binding:"required,accounttype"`
	Number         int64  `json:"number" binding:"required,min=1"`
	InitialDeposit string `json:"initial_deposit" binding:"omitempty,decimal"`
}

// Open handles http request to open an account.
func (h *Handler) Open(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req openRequest
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

	deposit := decimal.Zero

	if req.InitialDeposit != "" {
		var err error
		if deposit, err = decimal.NewFromString(req.InitialDeposit); err != nil {
			gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidAmount))
			return
		}
	}

	acc, err := h.service.Open(ctx, req.HolderID, domain.AccountType(req.Type), req.Number, deposit)
	if err != nil {
		switch err {
		case domain.ErrHolderNotFound:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrAccountNumberTaken:
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		case domain.ErrInvalidAmount:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusCreated, response{Data: data{acc}})
}

type numberRequest struct {
	Number int64 `uri:"number" binding:"required,min=1"`
}

// Get handles http request to get one account by number.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req numberRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
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

	acc, err := h.service.Get(ctx, req.Number)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{acc}})
}

type holderURI struct {
	HolderID string `uri:"holderID" binding:"required"`
}

// ListByHolder handles http request to list a holder's accounts.
func (h *Handler) ListByHolder(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req holderURI
	if err := gctx.ShouldBindUri(&req); err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return
	}

	if _, err := h.service.GetHolder(ctx, req.HolderID); err != nil {
		if err == domain.ErrHolderNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	accounts, err := h.service.ListByHolder(ctx, req.HolderID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: gin.H{"accounts": accounts}})
}

type amountRequest struct {
	Amount string `json:"amount" binding:"required,decimal"`
}

// Deposit handles http request to credit an account.
func (h *Handler) Deposit(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var uri numberRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return
	}

	var req amountRequest
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

	acc, err := h.service.Deposit(ctx, uri.Number, amount)
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrInvalidAmount, domain.ErrAccountInactive:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrConcurrencyConflict:
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{acc}})
}

// Statement handles http request to list an account's ledger entries.
func (h *Handler) Statement(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req numberRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return
	}

	entries, err := h.service.Statement(ctx, req.Number)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: gin.H{"entries": entries}})
}

type termsRequest struct {
	OverdraftLimit *string `json:"overdraft_limit" binding:"omitempty,decimal"`
	FeeRate        *string `json:"fee_rate" binding:"omitempty,decimal"`
}

// UpdateTerms handles http request to change a checking account's overdraft
// limit and fee rate. Absent fields keep their current value.
func (h *Handler) UpdateTerms(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var uri numberRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return
	}

	var req termsRequest
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

	limit, err := parseOptionalDecimal(req.OverdraftLimit)
	if err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidAmount))
		return
	}

	feeRate, err := parseOptionalDecimal(req.FeeRate)
	if err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidAmount))
		return
	}

	acc, err := h.service.UpdateCheckingTerms(ctx, uri.Number, limit, feeRate)
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrInvalidOperation, domain.ErrInvalidAmount:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrConcurrencyConflict:
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{acc}})
}

// ApplyYield handles http request to credit a savings account's yield.
func (h *Handler) ApplyYield(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req numberRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return
	}

	acc, err := h.service.ApplyYield(ctx, req.Number)
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrInvalidOperation, domain.ErrAccountInactive:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrConcurrencyConflict:
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{acc}})
}

// Deactivate handles http request to soft-delete an account.
func (h *Handler) Deactivate(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req numberRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return
	}

	if err := h.service.Deactivate(ctx, req.Number); err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrConcurrencyConflict:
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.Status(http.StatusNoContent)
}

func parseOptionalDecimal(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}

	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, err
	}

	return &d, nil
}
