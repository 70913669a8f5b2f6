package workflow

import (
	"context"
	"errors"
	"sync"

	"github.com/coopetico/coopex/controllers/entities"
	"github.com/coopetico/coopex/receipts"
	"github.com/coopetico/coopex/types"
)

// State is the explicit liquidation-dialog state. Every transition goes
// through a Session method; there is no way to reach EXECUTING except from
// CONFIRMING, and no way to leave RECEIPT_READY except an explicit Close.
type State int32

const (
	StateIdle         State = 0
	StatePreviewing   State = 10
	StateForm         State = 20
	StateConfirming   State = 30
	StateExecuting    State = 40
	StateReceiptReady State = 50
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePreviewing:
		return "previewing"
	case StateForm:
		return "form"
	case StateConfirming:
		return "confirming"
	case StateExecuting:
		return "executing"
	case StateReceiptReady:
		return "receipt_ready"
	default:
		return "unknown"
	}
}

var (
	ErrInvalidTransition = errors.New("liquidation.workflow.invalid_transition")
	ErrExecuteInFlight   = errors.New("liquidation.workflow.execute_in_flight")
	ErrInvalidType       = errors.New("liquidation.invalid_type")
	ErrEmptyResult       = errors.New("liquidation.workflow.empty_result")
)

// LiquidationService is the external collaborator the workflow drives: the
// read-only preview and the all-or-nothing execute.
type LiquidationService interface {
	Preview(ctx context.Context, member_id int64) (*entities.LiquidationPreview, error)
	Execute(ctx context.Context, request entities.ExecuteRequest) ([]entities.LiquidationEntity, error)
}

// Session owns one liquidation attempt for one member. It never retries on
// its own: every Confirm is user-initiated, and at most one execute request
// is in flight at any time.
type Session struct {
	service LiquidationService

	mu       sync.Mutex
	state    State
	member   entities.MemberEntity
	preview  *entities.LiquidationPreview
	ltype    types.LiquidationType
	notes    string
	last_err error
	result   *entities.LiquidationEntity
}

func NewSession(service LiquidationService) *Session {
	return &Session{
		service: service,
		state:   StateIdle,
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

func (s *Session) Preview() *entities.LiquidationPreview {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.preview
}

func (s *Session) Result() *entities.LiquidationEntity {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.result
}

func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.last_err
}

// Open starts a liquidation attempt: IDLE -> PREVIEWING -> FORM when the
// preview succeeds, back to IDLE when it fails. The error is returned to the
// caller for display; the session does not retry.
func (s *Session) Open(ctx context.Context, member entities.MemberEntity) (*entities.LiquidationPreview, error) {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return nil, ErrInvalidTransition
	}

	s.state = StatePreviewing
	s.member = member
	s.mu.Unlock()

	preview, err := s.service.Preview(ctx, member.ID)

	s.mu.Lock()
	defer s.mu.Unlock()

	// The user may have cancelled while the preview round-trip was in
	// flight. The attempt is already over; discard the result.
	if s.state != StatePreviewing {
		return nil, ErrInvalidTransition
	}

	if err != nil {
		s.reset()
		return nil, err
	}

	s.preview = preview
	s.state = StateForm

	return preview, nil
}

// Continue locks in the liquidation type and optional notes:
// FORM -> CONFIRMING. The member-continues flag is derived from the type and
// cannot be chosen independently.
func (s *Session) Continue(liquidation_type types.LiquidationType, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateForm {
		return ErrInvalidTransition
	}

	if !liquidation_type.Valid() {
		return ErrInvalidType
	}

	s.ltype = liquidation_type
	s.notes = notes
	s.state = StateConfirming

	return nil
}

// Request is the exact execute payload the session will send. Retries after a
// failed Confirm reuse the same request.
func (s *Session) Request() entities.ExecuteRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.buildRequest()
}

func (s *Session) buildRequest() entities.ExecuteRequest {
	continues := s.ltype.Continues()

	return entities.ExecuteRequest{
		MemberIDs:       []int64{s.member.ID},
		LiquidationType: s.ltype,
		MemberContinues: &continues,
		Notes:           s.notes,
	}
}

// Confirm performs the execute round-trip: CONFIRMING -> EXECUTING, then
// RECEIPT_READY on success or back to CONFIRMING on failure. A Confirm while
// a request is already in flight returns ErrExecuteInFlight without issuing a
// second request.
func (s *Session) Confirm(ctx context.Context) (*entities.LiquidationEntity, error) {
	s.mu.Lock()
	if s.state == StateExecuting {
		s.mu.Unlock()
		return nil, ErrExecuteInFlight
	}
	if s.state != StateConfirming {
		s.mu.Unlock()
		return nil, ErrInvalidTransition
	}

	s.state = StateExecuting
	s.last_err = nil
	request := s.buildRequest()
	s.mu.Unlock()

	results, err := s.service.Execute(ctx, request)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err == nil && len(results) == 0 {
		err = ErrEmptyResult
	}

	if err != nil {
		s.state = StateConfirming
		s.last_err = err
		return nil, err
	}

	s.result = &results[0]
	s.state = StateReceiptReady

	return s.result, nil
}

// Receipt renders the printable receipt for the executed liquidation. Empty
// until the session reaches RECEIPT_READY.
func (s *Session) Receipt() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReceiptReady || s.result == nil {
		return ""
	}

	return receipts.Render(receipts.FromLiquidation(*s.result, s.member.Code, s.member.FullName))
}

// Cancel abandons the attempt from any state except EXECUTING: once an
// execute request is submitted the only options are waiting for success or
// failure.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateExecuting {
		return ErrExecuteInFlight
	}

	s.reset()

	return nil
}

// Close dismisses the receipt view: RECEIPT_READY -> IDLE. The receipt state
// is terminal until the user explicitly leaves it.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReceiptReady {
		return ErrInvalidTransition
	}

	s.reset()

	return nil
}

// reset assumes s.mu is held.
func (s *Session) reset() {
	s.state = StateIdle
	s.member = entities.MemberEntity{}
	s.preview = nil
	s.ltype = ""
	s.notes = ""
	s.last_err = nil
	s.result = nil
}
