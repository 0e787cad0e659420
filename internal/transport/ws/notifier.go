package ws

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cinemate/cinemate/internal/service"
)

// HubNotifier implements service.Notifier using the WebSocket Hub. Every
// failure is logged and swallowed here: by the time a notification exists,
// the match is already committed and must not be disturbed.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyMatched(userID uuid.UUID, notice *service.MatchNotice) {
	evt, err := NewEvent(EventTypeMatchNew, notice)
	if err != nil {
		log.Error().Err(err).Msg("ws notifier: marshal error")
		return
	}
	n.hub.SendToUser(userID, evt)
}

func (n *HubNotifier) NotifyRequested(userID uuid.UUID, notice *service.RequestNotice) {
	evt, err := NewEvent(EventTypeRequestNew, notice)
	if err != nil {
		log.Error().Err(err).Msg("ws notifier: marshal error")
		return
	}
	n.hub.SendToUser(userID, evt)
}
