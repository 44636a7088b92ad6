package confirmationservice

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/VictorMordachini/conta-bancaria/internal/domain"
	"github.com/VictorMordachini/conta-bancaria/pkg/messaging"
	"github.com/VictorMordachini/conta-bancaria/pkg/randompkg"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	bus := messaging.NewMemoryBus()
	service := New(repo, bus, 5*time.Minute)

	holderID := randompkg.String(8)

	var published []domain.ConfirmationRequest

	err := bus.Subscribe(context.Background(), messaging.TopicAuthRequest, func(_ context.Context, payload []byte) {
		var req domain.ConfirmationRequest
		require.NoError(t, json.Unmarshal(payload, &req))
		published = append(published, req)
	})
	require.NoError(t, err)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c domain.ConfirmationCode) (domain.ConfirmationCode, error) {
			require.Equal(t, holderID, c.HolderID)
			require.Len(t, c.Code, 6)
			require.False(t, c.Confirmed)
			require.Equal(t, 5*time.Minute, c.ExpiresAt.Sub(c.IssuedAt))
			return c, nil
		})

	code, err := service.Request(context.Background(), holderID)
	require.NoError(t, err)
	require.NotEmpty(t, code.ID)

	require.Len(t, published, 1)
	require.Equal(t, holderID, published[0].HolderID)
	require.Equal(t, code.Code, published[0].Code)
}

func TestValidate(t *testing.T) {
	holderID := randompkg.String(8)

	freshCode := func(confirmed bool) domain.ConfirmationCode {
		now := time.Now().UTC()
		return domain.ConfirmationCode{
			ID:        randompkg.String(8),
			HolderID:  holderID,
			Code:      "123456",
			IssuedAt:  now,
			ExpiresAt: now.Add(5 * time.Minute),
			Confirmed: confirmed,
		}
	}

	testCases := []struct {
		name       string
		submitted  string
		buildStubs func(repo *MockRepo)
		wantErr    error
	}{
		{
			name:      "NoCurrentCode",
			submitted: "123456",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().FindCurrent(gomock.Any(), holderID).
					Return(domain.ConfirmationCode{}, domain.ErrConfirmationNotFound)
			},
			wantErr: domain.ErrConfirmationNotFound,
		},
		{
			name:      "ExpiredEvenWhenMatching",
			submitted: "123456",
			buildStubs: func(repo *MockRepo) {
				code := freshCode(false)
				code.ExpiresAt = time.Now().UTC().Add(-time.Second)
				repo.EXPECT().FindCurrent(gomock.Any(), holderID).Return(code, nil)
				repo.EXPECT().MarkConfirmed(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrConfirmationExpired,
		},
		{
			name:      "Mismatch",
			submitted: "654321",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().FindCurrent(gomock.Any(), holderID).Return(freshCode(false), nil)
				repo.EXPECT().MarkConfirmed(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrConfirmationMismatch,
		},
		{
			name:      "OK",
			submitted: "123456",
			buildStubs: func(repo *MockRepo) {
				code := freshCode(false)
				confirmed := code
				confirmed.Confirmed = true
				repo.EXPECT().FindCurrent(gomock.Any(), holderID).Return(code, nil)
				repo.EXPECT().MarkConfirmed(gomock.Any(), code.ID).Return(confirmed, nil)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := NewMockRepo(ctrl)
			service := New(repo, messaging.NewMemoryBus(), 5*time.Minute)

			tc.buildStubs(repo)

			code, err := service.Validate(context.Background(), holderID, tc.submitted)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			require.True(t, code.Confirmed)
		})
	}
}

// TestValidateMismatchIsRetryable checks that a wrong submission leaves the
// stored code usable: a follow-up with the right digits still confirms.
func TestValidateMismatchIsRetryable(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	service := New(repo, messaging.NewMemoryBus(), 5*time.Minute)

	holderID := randompkg.String(8)
	now := time.Now().UTC()
	code := domain.ConfirmationCode{
		ID:        randompkg.String(8),
		HolderID:  holderID,
		Code:      "111222",
		IssuedAt:  now,
		ExpiresAt: now.Add(5 * time.Minute),
	}

	repo.EXPECT().FindCurrent(gomock.Any(), holderID).Return(code, nil).Times(2)

	confirmed := code
	confirmed.Confirmed = true
	repo.EXPECT().MarkConfirmed(gomock.Any(), code.ID).Return(confirmed, nil)

	_, err := service.Validate(context.Background(), holderID, "000000")
	require.ErrorIs(t, err, domain.ErrConfirmationMismatch)

	got, err := service.Validate(context.Background(), holderID, "111222")
	require.NoError(t, err)
	require.True(t, got.Confirmed)
}
