package operationdelivery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/VictorMordachini/conta-bancaria/internal/accountdelivery"
	"github.com/VictorMordachini/conta-bancaria/internal/domain"
	"github.com/VictorMordachini/conta-bancaria/pkg/randompkg"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("decimal", accountdelivery.ValidDecimal); err != nil {
			panic(err)
		}
	}

	os.Exit(m.Run())
}

func newTestRouter(service Service) *gin.Engine {
	handler := NewHandler(service)

	router := gin.New()
	router.POST("/accounts/:number/withdrawals", handler.RequestWithdrawal)
	router.POST("/accounts/:number/transfers", handler.RequestTransfer)
	router.POST("/accounts/:number/payments", handler.RequestPayment)

	return router
}

type acceptedResponse struct {
	Data struct {
		ConfirmationID string `json:"confirmation_id"`
		Status         string `json:"status"`
	} `json:"data"`
	Error string `json:"error"`
}

func TestRequestWithdrawal(t *testing.T) {
	number := randompkg.AccountNumber()
	confirmationID := randompkg.String(8)

	testCases := []struct {
		name           string
		body           gin.H
		buildStubs     func(service *MockService)
		wantStatusCode int
	}{
		{
			name: "Accepted",
			body: gin.H{"amount": "150.50"},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					RequestWithdrawal(gomock.Any(), number, gomock.Any()).
					DoAndReturn(func(_ interface{}, _ int64, amount decimal.Decimal) (string, error) {
						require.True(t, amount.Equal(decimal.RequireFromString("150.50")))
						return confirmationID, nil
					})
			},
			wantStatusCode: http.StatusAccepted,
		},
		{
			name:           "MissingAmount",
			body:           gin.H{},
			buildStubs:     func(service *MockService) {},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "MalformedAmount",
			body:           gin.H{"amount": "not-a-number"},
			buildStubs:     func(service *MockService) {},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "AccountNotFound",
			body: gin.H{"amount": "10"},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					RequestWithdrawal(gomock.Any(), number, gomock.Any()).
					Return("", domain.ErrAccountNotFound)
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "InactiveAccount",
			body: gin.H{"amount": "10"},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					RequestWithdrawal(gomock.Any(), number, gomock.Any()).
					Return("", domain.ErrAccountInactive)
			},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := NewMockService(ctrl)
			tc.buildStubs(service)

			router := newTestRouter(service)

			body, err := json.Marshal(tc.body)
			require.NoError(t, err)

			url := fmt.Sprintf("/accounts/%d/withdrawals", number)
			req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
			recorder := httptest.NewRecorder()

			router.ServeHTTP(recorder, req)

			require.Equal(t, tc.wantStatusCode, recorder.Code)

			if tc.wantStatusCode == http.StatusAccepted {
				var res acceptedResponse
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
				require.Equal(t, confirmationID, res.Data.ConfirmationID)
				require.Equal(t, "accepted, pending confirmation", res.Data.Status)
			}
		})
	}
}

func TestRequestTransfer(t *testing.T) {
	source := randompkg.AccountNumber()
	destination := source + 1
	confirmationID := randompkg.String(8)

	t.Run("Accepted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := NewMockService(ctrl)

		service.EXPECT().
			RequestTransfer(gomock.Any(), source, destination, gomock.Any()).
			Return(confirmationID, nil)

		router := newTestRouter(service)

		body, _ := json.Marshal(gin.H{"destination": destination, "amount": "100"})
		url := fmt.Sprintf("/accounts/%d/transfers", source)
		req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		require.Equal(t, http.StatusAccepted, recorder.Code)

		var res acceptedResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
		require.Equal(t, confirmationID, res.Data.ConfirmationID)
	})

	t.Run("SameAccount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := NewMockService(ctrl)

		service.EXPECT().
			RequestTransfer(gomock.Any(), source, source, gomock.Any()).
			Return("", domain.ErrInvalidOperation)

		router := newTestRouter(service)

		body, _ := json.Marshal(gin.H{"destination": source, "amount": "100"})
		url := fmt.Sprintf("/accounts/%d/transfers", source)
		req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestRequestPayment(t *testing.T) {
	number := randompkg.AccountNumber()
	confirmationID := randompkg.String(8)

	t.Run("Accepted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := NewMockService(ctrl)

		feeIDs := []string{randompkg.String(8)}

		service.EXPECT().
			RequestPayment(gomock.Any(), number, "BOL-2024-0042", gomock.Any(), feeIDs).
			Return(confirmationID, nil)

		router := newTestRouter(service)

		body, _ := json.Marshal(gin.H{
			"bill_reference": "BOL-2024-0042",
			"amount":         "80",
			"fee_ids":        feeIDs,
		})
		url := fmt.Sprintf("/accounts/%d/payments", number)
		req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		require.Equal(t, http.StatusAccepted, recorder.Code)
	})

	t.Run("MissingBillReference", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := NewMockService(ctrl)

		router := newTestRouter(service)

		body, _ := json.Marshal(gin.H{"amount": "80"})
		url := fmt.Sprintf("/accounts/%d/payments", number)
		req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
