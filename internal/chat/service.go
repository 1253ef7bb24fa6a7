package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"warungchat/internal/conversation"
	"warungchat/internal/menu"
	"warungchat/internal/nlu"
	"warungchat/internal/session"
)

var ErrEmptyMessage = errors.New("Message is required")

const (
	msgGeneric     = "Maaf, terjadi kesalahan pada sistem. Silakan coba lagi."
	msgUnreachable = "Server Rasa tidak dapat dijangkau. Pastikan Rasa server berjalan di port 5005."
	msgTimeout     = "Timeout: Server membutuhkan waktu terlalu lama untuk merespons."
)

type Service struct {
	nlu     nlu.Client
	repo    conversation.Repository
	started time.Time
	now     func() time.Time
}

func NewService(client nlu.Client, repo conversation.Repository) *Service {
	return &Service{
		nlu:     client,
		repo:    repo,
		started: time.Now(),
		now:     time.Now,
	}
}

// --------------------------------------------------
// Chat turn
// --------------------------------------------------

// Chat relays one message to the NLU engine and records the turn.
// Failing to read recommended menus is not an error: the reply simply has none.
func (s *Service) Chat(ctx context.Context, req session.ChatRequest) (*session.ChatReply, error) {
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = session.NewID(session.ServerPrefix)
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return &session.ChatReply{SessionID: sessionID}, ErrEmptyMessage
	}

	logger := log.With().Str("session_id", sessionID).Logger()
	logger.Info().Str("message", message).Msg("user message")

	raw, err := s.nlu.Send(ctx, sessionID, message)
	if err != nil {
		return &session.ChatReply{SessionID: sessionID}, err
	}

	menus := []menu.Record{}
	if len(raw) > 0 {
		recs, err := s.nlu.RecommendedMenus(ctx, sessionID)
		if err != nil {
			logger.Warn().Err(err).Msg("could not retrieve slots")
		} else if recs != nil {
			menus = menu.FilterValid(recs)
		}
	}

	responses := make([]nlu.Response, len(raw))
	bot := []string{}
	for i, r := range raw {
		responses[i] = r.Normalize()
		if r.Text != "" {
			bot = append(bot, r.Text)
		}
	}

	now := s.now()
	s.repo.Append(sessionID, conversation.Turn{
		User:      req.Message,
		Bot:       bot,
		Timestamp: now,
		Menus:     menus,
	})

	logger.Info().Int("responses", len(responses)).Int("menus", len(menus)).Msg("bot replied")

	return &session.ChatReply{
		SessionID:        sessionID,
		Responses:        responses,
		RecommendedMenus: menus,
		Timestamp:        session.Timestamp(now),
	}, nil
}

// FallbackMessage picks the user-facing text for a failed chat turn.
func FallbackMessage(err error) string {
	switch {
	case errors.Is(err, nlu.ErrUnreachable):
		return msgUnreachable
	case errors.Is(err, nlu.ErrTimeout):
		return msgTimeout
	default:
		return msgGeneric
	}
}

// --------------------------------------------------
// History
// --------------------------------------------------

func (s *Service) History(sessionID string) session.History {
	turns := s.repo.Get(sessionID)
	return session.History{
		SessionID:    sessionID,
		Conversation: turns,
		MessageCount: len(turns),
	}
}

// LatestMenus returns the menus of the most recent turn that recommended any.
func (s *Service) LatestMenus(sessionID string) []menu.Record {
	turns := s.repo.Get(sessionID)
	for i := len(turns) - 1; i >= 0; i-- {
		if len(turns[i].Menus) > 0 {
			return turns[i].Menus
		}
	}
	return nil
}

func (s *Service) ClearHistory(sessionID string) {
	s.repo.Delete(sessionID)
	log.Info().Str("session_id", sessionID).Msg("conversation cleared")
}

// --------------------------------------------------
// Status
// --------------------------------------------------

// Status reports relay health and whether the NLU engine answers.
func (s *Service) Status(ctx context.Context) session.Status {
	now := s.now()
	st := session.Status{
		WebServer:           "running",
		RasaServer:          session.ServerConnected,
		ActiveConversations: s.repo.Count(),
		Uptime:              s.Uptime().Seconds(),
		Timestamp:           session.Timestamp(now),
	}

	info, err := s.nlu.Status(ctx)
	if err != nil {
		st.RasaServer = session.ServerDisconnected
		st.RasaError = err.Error()
		return st
	}
	st.RasaVersion = info.Version
	return st
}

func (s *Service) Uptime() time.Duration {
	return s.now().Sub(s.started)
}
