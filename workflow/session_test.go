package workflow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coopetico/coopex/controllers/entities"
	"github.com/coopetico/coopex/types"
)

type fakeService struct {
	mu            sync.Mutex
	preview       *entities.LiquidationPreview
	preview_err   error
	preview_block chan struct{}
	execute_fn    func(entities.ExecuteRequest) ([]entities.LiquidationEntity, error)
	requests      []entities.ExecuteRequest
	preview_hits  int
}

func (f *fakeService) Preview(ctx context.Context, member_id int64) (*entities.LiquidationPreview, error) {
	f.mu.Lock()
	f.preview_hits++
	block := f.preview_block
	f.mu.Unlock()

	if block != nil {
		<-block
	}

	if f.preview_err != nil {
		return nil, f.preview_err
	}

	return f.preview, nil
}

func (f *fakeService) Execute(ctx context.Context, request entities.ExecuteRequest) ([]entities.LiquidationEntity, error) {
	f.mu.Lock()
	f.requests = append(f.requests, request)
	fn := f.execute_fn
	f.mu.Unlock()

	return fn(request)
}

func (f *fakeService) Requests() []entities.ExecuteRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	requests := make([]entities.ExecuteRequest, len(f.requests))
	copy(requests, f.requests)

	return requests
}

func testMember() entities.MemberEntity {
	return entities.MemberEntity{
		ID:       42,
		Code:     "COOP-000042",
		FullName: "María Solano",
		Active:   true,
	}
}

func testPreview() *entities.LiquidationPreview {
	return &entities.LiquidationPreview{
		MemberID:      42,
		Savings:       decimal.NewFromFloat(15000.50),
		Contributions: decimal.NewFromFloat(8200.25),
		Surplus:       decimal.NewFromFloat(1300),
		Total:         decimal.NewFromFloat(24500.75),
	}
}

func resultFor(request entities.ExecuteRequest, total decimal.Decimal) entities.LiquidationEntity {
	return entities.LiquidationEntity{
		ID:              7,
		MemberID:        request.MemberIDs[0],
		Type:            request.LiquidationType,
		MemberContinues: request.LiquidationType.Continues(),
		Total:           total,
		ReceiptNumber:   "LIQ-000007",
		CreatedAt:       time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC),
	}
}

func waitForState(t *testing.T, session *Session, state State) {
	t.Helper()

	for i := 0; i < 200; i++ {
		if session.State() == state {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}

	t.Fatalf("session never reached %s, stuck in %s", state, session.State())
}

func TestSessionHappyPathPeriodic(t *testing.T) {
	service := &fakeService{
		preview: testPreview(),
		execute_fn: func(request entities.ExecuteRequest) ([]entities.LiquidationEntity, error) {
			return []entities.LiquidationEntity{resultFor(request, decimal.NewFromFloat(24500.75))}, nil
		},
	}
	session := NewSession(service)

	assert.Equal(t, StateIdle, session.State())

	preview, err := session.Open(context.Background(), testMember())
	require.NoError(t, err)
	assert.Equal(t, StateForm, session.State())
	assert.True(t, preview.Total.Equal(decimal.NewFromFloat(24500.75)))

	require.NoError(t, session.Continue(types.LiquidationPeriodic, "test"))
	assert.Equal(t, StateConfirming, session.State())

	continues := true
	assert.Equal(t, entities.ExecuteRequest{
		MemberIDs:       []int64{42},
		LiquidationType: types.LiquidationPeriodic,
		MemberContinues: &continues,
		Notes:           "test",
	}, session.Request())

	result, err := session.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateReceiptReady, session.State())
	assert.Equal(t, types.LiquidationPeriodic, result.Type)
	assert.True(t, result.MemberContinues)

	require.Len(t, service.Requests(), 1)
	assert.Equal(t, session.Request(), service.Requests()[0])

	receipt := session.Receipt()
	assert.Contains(t, receipt, "COOP-000042")
	assert.Contains(t, receipt, "María Solano")
	assert.Contains(t, receipt, "Periódica")
	assert.Contains(t, receipt, "₡24,500.75")
	assert.Contains(t, receipt, "LIQ-000007")

	require.NoError(t, session.Close())
	assert.Equal(t, StateIdle, session.State())
	assert.Nil(t, session.Result())
}

func TestSessionExitWithZeroBalances(t *testing.T) {
	service := &fakeService{
		preview: &entities.LiquidationPreview{MemberID: 42},
		execute_fn: func(request entities.ExecuteRequest) ([]entities.LiquidationEntity, error) {
			return []entities.LiquidationEntity{resultFor(request, decimal.Zero)}, nil
		},
	}
	session := NewSession(service)

	_, err := session.Open(context.Background(), testMember())
	require.NoError(t, err)
	require.NoError(t, session.Continue(types.LiquidationExit, ""))

	result, err := session.Confirm(context.Background())
	require.NoError(t, err)
	assert.False(t, result.MemberContinues)

	receipt := session.Receipt()
	assert.Contains(t, receipt, "Retiro")
	assert.Contains(t, receipt, "₡0.00")

	require.NoError(t, session.Close())

	// The member is now inactive; the next attempt fails at preview time and
	// the session falls back to idle.
	service.preview_err = errors.New("liquidation.member_inactive")

	_, err = session.Open(context.Background(), testMember())
	require.Error(t, err)
	assert.Equal(t, StateIdle, session.State())
}

func TestSessionSingleExecuteInFlight(t *testing.T) {
	release := make(chan struct{})
	service := &fakeService{
		preview: testPreview(),
		execute_fn: func(request entities.ExecuteRequest) ([]entities.LiquidationEntity, error) {
			<-release
			return []entities.LiquidationEntity{resultFor(request, decimal.NewFromInt(100))}, nil
		},
	}
	session := NewSession(service)

	_, err := session.Open(context.Background(), testMember())
	require.NoError(t, err)
	require.NoError(t, session.Continue(types.LiquidationPeriodic, ""))

	done := make(chan error, 1)
	go func() {
		_, err := session.Confirm(context.Background())
		done <- err
	}()

	waitForState(t, session, StateExecuting)

	_, err = session.Confirm(context.Background())
	assert.ErrorIs(t, err, ErrExecuteInFlight)

	assert.ErrorIs(t, session.Cancel(), ErrExecuteInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, StateReceiptReady, session.State())

	// The blocked Confirm and Cancel issued no extra requests.
	assert.Len(t, service.Requests(), 1)
}

func TestSessionConfirmFailureAllowsRetry(t *testing.T) {
	boom := errors.New("server.internal_error")
	fail := true
	service := &fakeService{
		preview: testPreview(),
	}
	service.execute_fn = func(request entities.ExecuteRequest) ([]entities.LiquidationEntity, error) {
		if fail {
			return nil, boom
		}
		return []entities.LiquidationEntity{resultFor(request, decimal.NewFromInt(100))}, nil
	}
	session := NewSession(service)

	_, err := session.Open(context.Background(), testMember())
	require.NoError(t, err)
	require.NoError(t, session.Continue(types.LiquidationPeriodic, "retry me"))

	_, err = session.Confirm(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StateConfirming, session.State())
	assert.ErrorIs(t, session.LastError(), boom)

	// Only an explicit user confirmation retries, with the identical payload.
	fail = false
	_, err = session.Confirm(context.Background())
	require.NoError(t, err)

	requests := service.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, requests[0], requests[1])
}

func TestSessionConfirmEmptyResult(t *testing.T) {
	service := &fakeService{
		preview: testPreview(),
		execute_fn: func(request entities.ExecuteRequest) ([]entities.LiquidationEntity, error) {
			return []entities.LiquidationEntity{}, nil
		},
	}
	session := NewSession(service)

	_, err := session.Open(context.Background(), testMember())
	require.NoError(t, err)
	require.NoError(t, session.Continue(types.LiquidationExit, ""))

	_, err = session.Confirm(context.Background())
	assert.ErrorIs(t, err, ErrEmptyResult)
	assert.Equal(t, StateConfirming, session.State())
}

func TestSessionTransitionGuards(t *testing.T) {
	service := &fakeService{preview: testPreview()}
	session := NewSession(service)

	assert.ErrorIs(t, session.Continue(types.LiquidationPeriodic, ""), ErrInvalidTransition)

	_, err := session.Confirm(context.Background())
	assert.ErrorIs(t, err, ErrInvalidTransition)

	assert.ErrorIs(t, session.Close(), ErrInvalidTransition)

	_, err = session.Open(context.Background(), testMember())
	require.NoError(t, err)

	// A second Open on a busy session is rejected.
	_, err = session.Open(context.Background(), testMember())
	assert.ErrorIs(t, err, ErrInvalidTransition)

	assert.ErrorIs(t, session.Continue("partial", ""), ErrInvalidType)
	assert.Equal(t, StateForm, session.State())

	_, err = session.Confirm(context.Background())
	assert.ErrorIs(t, err, ErrInvalidTransition)

	assert.ErrorIs(t, session.Close(), ErrInvalidTransition)

	require.NoError(t, session.Cancel())
	assert.Equal(t, StateIdle, session.State())
}

func TestSessionReceiptEmptyUntilReady(t *testing.T) {
	service := &fakeService{preview: testPreview()}
	session := NewSession(service)

	assert.Empty(t, session.Receipt())

	_, err := session.Open(context.Background(), testMember())
	require.NoError(t, err)
	assert.Empty(t, session.Receipt())
}

func TestSessionCancelDuringPreviewing(t *testing.T) {
	release := make(chan struct{})
	service := &fakeService{
		preview:       testPreview(),
		preview_block: release,
	}
	session := NewSession(service)

	done := make(chan error, 1)
	go func() {
		_, err := session.Open(context.Background(), testMember())
		done <- err
	}()

	waitForState(t, session, StatePreviewing)

	require.NoError(t, session.Cancel())
	assert.Equal(t, StateIdle, session.State())

	// The preview lands after the cancel; the dead attempt must not come
	// back to life as an open form.
	close(release)
	assert.ErrorIs(t, <-done, ErrInvalidTransition)

	assert.Equal(t, StateIdle, session.State())
	assert.Nil(t, session.Preview())

	// A fresh attempt still works.
	service.mu.Lock()
	service.preview_block = nil
	service.mu.Unlock()

	_, err := session.Open(context.Background(), testMember())
	require.NoError(t, err)
	assert.Equal(t, StateForm, session.State())
}

func TestSessionFailedPreviewResetsToIdle(t *testing.T) {
	service := &fakeService{preview_err: errors.New("liquidation.member_not_found")}
	session := NewSession(service)

	_, err := session.Open(context.Background(), testMember())
	require.Error(t, err)
	assert.Equal(t, StateIdle, session.State())
	assert.Nil(t, session.Preview())

	// The session is reusable after the failure.
	service.preview_err = nil
	service.preview = testPreview()

	_, err = session.Open(context.Background(), testMember())
	require.NoError(t, err)
	assert.Equal(t, StateForm, session.State())
	assert.Equal(t, 2, service.preview_hits)
}
