package mapper

import (
	"pdf-extractor-be/internal/dto"
	"pdf-extractor-be/pkg/store"

	"github.com/google/uuid"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToSnapshot(s *store.Session) *dto.SessionSnapshotResponse {
	if s == nil {
		return nil
	}

	id, _ := uuid.Parse(s.ID)

	snapshot := &dto.SessionSnapshotResponse{
		Id:     id,
		Status: s.Status,
		Intent: dto.IntentDTO{
			Goal:     s.Intent.Goal,
			Entities: s.Intent.Entities,
			Style:    string(s.Intent.Style),
			Notes:    s.Intent.Notes,
		},
		LastError: s.LastError,
	}

	if s.Document != nil {
		snapshot.Document = &dto.DocumentInfoDTO{
			Filename:  s.Document.Filename,
			MimeType:  s.Document.MimeType,
			SizeBytes: len(s.Document.Data),
		}
	}

	if s.Result != nil {
		snapshot.Result = &dto.ResultMetaDTO{
			Style:       string(s.Result.Style),
			GeneratedAt: s.Result.GeneratedAt,
		}
	}

	return snapshot
}
