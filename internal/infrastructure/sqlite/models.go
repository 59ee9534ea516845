package sqlite

import (
	"encoding/json"
	"time"

	"github.com/zjrosen/dbug/internal/payload"
)

// payloadModel is one row of the payloads table. Times are Unix millis.
type payloadModel struct {
	Seq        int64
	ID         string
	ReceivedAt int64
	Path       string
	Body       string
	Size       int64
}

func toPayloadModel(p *payload.Payload) *payloadModel {
	return &payloadModel{
		ID:         p.ID,
		ReceivedAt: p.ReceivedAt.UnixMilli(),
		Path:       p.Path,
		Body:       string(p.Body),
		Size:       int64(len(p.Body)),
	}
}

func (m *payloadModel) toDomain() *payload.Payload {
	return &payload.Payload{
		ID:         m.ID,
		ReceivedAt: time.UnixMilli(m.ReceivedAt).UTC(),
		Path:       m.Path,
		Body:       json.RawMessage(m.Body),
	}
}
