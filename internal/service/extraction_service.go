package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"pdf-extractor-be/internal/dto"
	"pdf-extractor-be/internal/pkg/logger"
	"pdf-extractor-be/internal/repository/memory"
	"pdf-extractor-be/pkg/extraction"
	"pdf-extractor-be/pkg/presenter"
	"pdf-extractor-be/pkg/prompt"
	"pdf-extractor-be/pkg/store"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

var (
	ErrMissingDocument    = errors.New("no document uploaded for this session")
	ErrEmptyGoal          = errors.New("extraction goal must not be empty")
	ErrSubmissionInFlight = errors.New("a submission is already in progress for this session")
	ErrNoResult           = errors.New("no extraction result available yet")
)

type IExtractionService interface {
	Submit(ctx context.Context, id uuid.UUID) (*dto.SubmitExtractionResponse, error)
	Result(ctx context.Context, id uuid.UUID) (*dto.ResultViewDTO, error)
	Download(ctx context.Context, id uuid.UUID) (*presenter.Downloadable, error)
}

// extractionService drives one submission through
// idle -> validating -> submitting -> succeeded | failed.
type extractionService struct {
	sessionRepo *memory.SessionRepository
	extractor   extraction.Extractor
	log         logger.ILogger

	maxRetries      uint64
	initialInterval time.Duration

	// One outstanding provider call per session. Re-entrant submits are
	// rejected, never fired twice in parallel.
	inflight sync.Map
}

func NewExtractionService(
	sessionRepo *memory.SessionRepository,
	extractor extraction.Extractor,
	log logger.ILogger,
	maxRetries int,
) IExtractionService {
	return &extractionService{
		sessionRepo:     sessionRepo,
		extractor:       extractor,
		log:             log,
		maxRetries:      uint64(maxRetries),
		initialInterval: 500 * time.Millisecond,
	}
}

func (s *extractionService) Submit(ctx context.Context, id uuid.UUID) (*dto.SubmitExtractionResponse, error) {
	sessionID := id.String()

	session, found := s.sessionRepo.Get(sessionID)
	if !found {
		return nil, ErrSessionNotFound
	}

	if _, loaded := s.inflight.LoadOrStore(sessionID, struct{}{}); loaded {
		return nil, ErrSubmissionInFlight
	}
	defer s.inflight.Delete(sessionID)

	// Validating
	session.Status = store.StatusValidating
	s.sessionRepo.Save(session)

	promptText, err := s.validateAndBuildPrompt(session)
	if err != nil {
		s.fail(sessionID, err)
		return nil, err
	}

	// Submitting
	session.Status = store.StatusSubmitting
	s.sessionRepo.Save(session)

	s.log.Info("extraction", "submitting document to provider", map[string]interface{}{
		"session_id": sessionID,
		"filename":   session.Document.Filename,
		"style":      string(session.Intent.Style),
	})

	content, err := s.callWithRetry(ctx, session.Document, promptText)
	if err != nil {
		s.log.Error("extraction", "provider call failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		s.fail(sessionID, err)
		return nil, err
	}

	result := &store.ExtractionResult{
		Content:     content,
		Style:       session.Intent.Style,
		GeneratedAt: time.Now(),
	}

	// The session may have been reset or expired while the call was
	// outstanding. A dead session is never mutated.
	session, found = s.sessionRepo.Get(sessionID)
	if !found {
		s.log.Warn("extraction", "session gone before result could be stored", map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, ErrSessionNotFound
	}

	session.Result = result
	session.Status = store.StatusIdle // ready for the next submission
	session.LastError = ""
	s.sessionRepo.Save(session)

	view := presenter.Render(result)
	return &dto.SubmitExtractionResponse{
		Status: store.StatusSucceeded,
		Result: &dto.ResultViewDTO{
			Format:      view.Format,
			Content:     view.Content,
			Style:       string(result.Style),
			GeneratedAt: result.GeneratedAt,
		},
	}, nil
}

// validateAndBuildPrompt enforces the submit preconditions: a document
// must be present and the goal non-empty. No outbound call is made when
// validation fails.
func (s *extractionService) validateAndBuildPrompt(session *store.Session) (string, error) {
	if session.Document == nil || len(session.Document.Data) == 0 {
		return "", ErrMissingDocument
	}

	promptText, err := prompt.NewIntentBuilder(session.Intent).Build()
	if err != nil {
		if errors.Is(err, prompt.ErrEmptyGoal) {
			return "", ErrEmptyGoal
		}
		return "", err
	}
	return promptText, nil
}

// callWithRetry retries transient failures with exponential backoff.
// Auth, quota and malformed-response failures are surfaced immediately:
// a retry cannot fix them.
func (s *extractionService) callWithRetry(ctx context.Context, document *store.UploadedDocument, promptText string) (string, error) {
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = s.initialInterval

	policy := backoff.WithContext(backoff.WithMaxRetries(expBackoff, s.maxRetries), ctx)

	return backoff.RetryWithData(func() (string, error) {
		content, err := s.extractor.Extract(ctx, document, promptText)
		if err != nil && !extraction.IsTransient(err) {
			return "", backoff.Permanent(err)
		}
		return content, err
	}, policy)
}

// fail marks the session failed with an inline message. The prior result,
// if any, stays untouched. Skipped when the session no longer exists.
func (s *extractionService) fail(sessionID string, cause error) {
	session, found := s.sessionRepo.Get(sessionID)
	if !found {
		return
	}
	session.Status = store.StatusFailed
	session.LastError = cause.Error()
	s.sessionRepo.Save(session)
}

func (s *extractionService) Result(ctx context.Context, id uuid.UUID) (*dto.ResultViewDTO, error) {
	session, found := s.sessionRepo.Get(id.String())
	if !found {
		return nil, ErrSessionNotFound
	}
	if session.Result == nil {
		return nil, ErrNoResult
	}

	view := presenter.Render(session.Result)
	return &dto.ResultViewDTO{
		Format:      view.Format,
		Content:     view.Content,
		Style:       string(session.Result.Style),
		GeneratedAt: session.Result.GeneratedAt,
	}, nil
}

func (s *extractionService) Download(ctx context.Context, id uuid.UUID) (*presenter.Downloadable, error) {
	session, found := s.sessionRepo.Get(id.String())
	if !found {
		return nil, ErrSessionNotFound
	}
	if session.Result == nil {
		return nil, ErrNoResult
	}
	return presenter.ToDownloadable(session.Result), nil
}
