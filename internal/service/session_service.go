package service

import (
	"context"
	"errors"

	"pdf-extractor-be/internal/dto"
	"pdf-extractor-be/internal/mapper"
	"pdf-extractor-be/internal/pkg/logger"
	"pdf-extractor-be/internal/repository/memory"
	"pdf-extractor-be/pkg/store"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

type ISessionService interface {
	Create(ctx context.Context) (*dto.CreateSessionResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.SessionSnapshotResponse, error)
	Reset(ctx context.Context, id uuid.UUID) error
	UpdateIntent(ctx context.Context, id uuid.UUID, req *dto.UpdateIntentRequest) (*dto.SessionSnapshotResponse, error)
	SetDocument(ctx context.Context, id uuid.UUID, filename, mimeType string, data []byte) (*dto.UploadDocumentResponse, error)
}

type sessionService struct {
	sessionRepo *memory.SessionRepository
	mapper      *mapper.SessionMapper
	log         logger.ILogger
}

func NewSessionService(sessionRepo *memory.SessionRepository, log logger.ILogger) ISessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		mapper:      mapper.NewSessionMapper(),
		log:         log,
	}
}

func (s *sessionService) Create(ctx context.Context) (*dto.CreateSessionResponse, error) {
	id := uuid.New()
	session := &store.Session{
		ID:     id.String(),
		Status: store.StatusIdle,
		Intent: store.Intent{
			Style: store.StyleBullet,
		},
	}
	s.sessionRepo.Save(session)

	s.log.Info("session", "session created", map[string]interface{}{"session_id": id.String()})
	return &dto.CreateSessionResponse{Id: id}, nil
}

func (s *sessionService) Show(ctx context.Context, id uuid.UUID) (*dto.SessionSnapshotResponse, error) {
	session, found := s.sessionRepo.Get(id.String())
	if !found {
		return nil, ErrSessionNotFound
	}
	return s.mapper.ToSnapshot(session), nil
}

func (s *sessionService) Reset(ctx context.Context, id uuid.UUID) error {
	if _, found := s.sessionRepo.Get(id.String()); !found {
		return ErrSessionNotFound
	}
	s.sessionRepo.Delete(id.String())
	s.log.Info("session", "session reset", map[string]interface{}{"session_id": id.String()})
	return nil
}

// UpdateIntent merges field-level changes without discarding unrelated
// fields. Any edit clears a failed status back to idle.
func (s *sessionService) UpdateIntent(ctx context.Context, id uuid.UUID, req *dto.UpdateIntentRequest) (*dto.SessionSnapshotResponse, error) {
	session, found := s.sessionRepo.Get(id.String())
	if !found {
		return nil, ErrSessionNotFound
	}

	if req.Goal != nil {
		session.Intent.Goal = *req.Goal
	}
	if req.Entities != nil {
		session.Intent.Entities = *req.Entities
	}
	if req.Style != nil {
		session.Intent.Style = store.Style(*req.Style)
	}
	if req.Notes != nil {
		session.Intent.Notes = *req.Notes
	}

	session.Status = store.StatusIdle
	session.LastError = ""
	s.sessionRepo.Save(session)

	return s.mapper.ToSnapshot(session), nil
}

// SetDocument replaces the stored document wholesale.
func (s *sessionService) SetDocument(ctx context.Context, id uuid.UUID, filename, mimeType string, data []byte) (*dto.UploadDocumentResponse, error) {
	session, found := s.sessionRepo.Get(id.String())
	if !found {
		return nil, ErrSessionNotFound
	}

	session.Document = &store.UploadedDocument{
		Data:     data,
		Filename: filename,
		MimeType: mimeType,
	}
	session.Status = store.StatusIdle
	session.LastError = ""
	s.sessionRepo.Save(session)

	s.log.Info("session", "document uploaded", map[string]interface{}{
		"session_id": id.String(),
		"filename":   filename,
		"size_bytes": len(data),
	})

	return &dto.UploadDocumentResponse{
		Filename:  filename,
		MimeType:  mimeType,
		SizeBytes: len(data),
	}, nil
}
