package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/fpslabs/fps-backend/internal/app/chat"
	"github.com/fpslabs/fps-backend/internal/app/matchserver"
	"github.com/fpslabs/fps-backend/internal/shared/matchmaking"
	"github.com/fpslabs/fps-backend/internal/shared/mmr"
	"github.com/fpslabs/fps-backend/internal/shared/session"
	"github.com/fpslabs/fps-backend/internal/shared/store"
	"github.com/fpslabs/fps-backend/internal/shared/utils"
	"github.com/fpslabs/fps-backend/pkg/uuidstring"
)

// Server exposes the matchmaking, match lifecycle and chat operations
// over HTTP plus a websocket endpoint for notifications.
type Server struct {
	matches *matchserver.Service
	chat    *chat.Service
	hub     *Hub
	logger  *zap.Logger
}

func NewServer(matches *matchserver.Service, chatService *chat.Service, hub *Hub, logger *zap.Logger) *Server {
	return &Server{
		matches: matches,
		chat:    chatService,
		hub:     hub,
		logger:  logger,
	}
}

func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/matchmaking/join", s.handleJoinQueue)
	mux.HandleFunc("DELETE /api/matchmaking/cancel", s.handleCancelQueue)
	mux.HandleFunc("GET /api/matchmaking/status", s.handleQueueStatus)
	mux.HandleFunc("POST /api/matches/{matchID}/start", s.handleStartMatch)
	mux.HandleFunc("POST /api/matches/{matchID}/end", s.handleEndMatch)
	mux.HandleFunc("POST /api/matches/{matchID}/cancel", s.handleCancelMatch)
	mux.HandleFunc("POST /api/chat/send", s.handleSendChat)
	mux.HandleFunc("GET /api/chat/history", s.handleChatHistory)
	mux.HandleFunc("GET /ws", s.handleWebsocket)
	return mux
}

type joinQueueRequest struct {
	PlayerID uuidstring.ID `json:"player_id"`
	GameMode string        `json:"game_mode"`
	MMR      int           `json:"mmr"`
}

type joinQueueResponse struct {
	RequestID uuidstring.ID   `json:"request_id"`
	Matched   bool            `json:"matched"`
	MatchID   uuidstring.ID   `json:"match_id,omitempty"`
	PlayerIDs []uuidstring.ID `json:"player_ids,omitempty"`
}

func (s *Server) handleJoinQueue(w http.ResponseWriter, r *http.Request) {
	var req joinQueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rating, err := mmr.New(req.MMR)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.matches.JoinQueue(r.Context(), req.PlayerID, matchmaking.Mode(req.GameMode), rating)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, joinQueueResponse{
		RequestID: res.RequestID,
		Matched:   res.Matched,
		MatchID:   res.MatchID,
		PlayerIDs: res.PlayerIDs,
	})
}

type cancelQueueRequest struct {
	PlayerID uuidstring.ID `json:"player_id"`
	GameMode string        `json:"game_mode"`
}

func (s *Server) handleCancelQueue(w http.ResponseWriter, r *http.Request) {
	var req cancelQueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.matches.CancelQueue(r.Context(), req.PlayerID, matchmaking.Mode(req.GameMode)); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"cancelled": true})
}

type queueStatusResponse struct {
	Queued      bool      `json:"queued"`
	MMR         int       `json:"mmr,omitempty"`
	EnqueuedAt  time.Time `json:"enqueued_at"`
	QueueLength int       `json:"queue_length"`
}

func (s *Server) handleQueueStatus(w http.ResponseWriter, r *http.Request) {
	playerID := uuidstring.ID(r.URL.Query().Get("player_id"))
	mode := matchmaking.Mode(r.URL.Query().Get("game_mode"))

	status, err := s.matches.FindQueueStatus(r.Context(), playerID, mode)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, queueStatusResponse{
		Queued:      status.Queued,
		MMR:         status.Rating,
		EnqueuedAt:  status.EnqueuedAt,
		QueueLength: status.QueueLength,
	})
}

type startMatchRequest struct {
	MatchID   uuidstring.ID   `json:"match_id"`
	PlayerIDs []uuidstring.ID `json:"player_ids,omitempty"`
	GameMode  string          `json:"game_mode,omitempty"`
}

type sessionResponse struct {
	SessionID uuidstring.ID   `json:"session_id"`
	MatchID   uuidstring.ID   `json:"match_id"`
	Status    string          `json:"status"`
	PlayerIDs []uuidstring.ID `json:"player_ids"`
}

func toSessionResponse(sess *session.Session) sessionResponse {
	return sessionResponse{
		SessionID: sess.SessionID,
		MatchID:   sess.MatchID,
		Status:    sess.Status().String(),
		PlayerIDs: sess.PlayerIDs,
	}
}

func (s *Server) handleStartMatch(w http.ResponseWriter, r *http.Request) {
	matchID := uuidstring.ID(r.PathValue("matchID"))

	var req startMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.MatchID != matchID {
		writeError(w, http.StatusBadRequest, "match id in the path and body do not agree")
		return
	}

	mode := matchmaking.Mode(req.GameMode)
	if mode == "" {
		mode = matchmaking.ModeSolo
	}
	sess, err := s.matches.StartMatch(r.Context(), matchID, req.PlayerIDs, mode)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(sess))
}

type endMatchRequest struct {
	MatchID uuidstring.ID     `json:"match_id"`
	Results []playerResultDTO `json:"results"`
}

type playerResultDTO struct {
	PlayerID uuidstring.ID `json:"player_id"`
	IsWinner bool          `json:"is_winner"`
	Score    *int          `json:"score,omitempty"`
}

type endMatchResponse struct {
	Session sessionResponse   `json:"session"`
	Ratings []ratingChangeDTO `json:"ratings"`
}

type ratingChangeDTO struct {
	PlayerID  uuidstring.ID `json:"player_id"`
	OldRating int           `json:"old_rating"`
	NewRating int           `json:"new_rating"`
}

func (s *Server) handleEndMatch(w http.ResponseWriter, r *http.Request) {
	matchID := uuidstring.ID(r.PathValue("matchID"))

	var req endMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.MatchID != matchID {
		writeError(w, http.StatusBadRequest, "match id in the path and body do not agree")
		return
	}

	results := make([]matchserver.PlayerResultInput, 0, len(req.Results))
	for _, pr := range req.Results {
		results = append(results, matchserver.PlayerResultInput{
			PlayerID: pr.PlayerID,
			IsWinner: pr.IsWinner,
			Score:    pr.Score,
		})
	}

	report, err := s.matches.EndMatch(r.Context(), matchID, results)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	resp := endMatchResponse{Session: toSessionResponse(report.Session)}
	for _, change := range report.RatingChanges {
		resp.Ratings = append(resp.Ratings, ratingChangeDTO{
			PlayerID:  change.PlayerID,
			OldRating: change.OldRating,
			NewRating: change.NewRating,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCancelMatch(w http.ResponseWriter, r *http.Request) {
	matchID := uuidstring.ID(r.PathValue("matchID"))

	sess, err := s.matches.CancelMatch(r.Context(), matchID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(sess))
}

type sendChatRequest struct {
	RoomID   uuidstring.ID `json:"room_id"`
	SenderID uuidstring.ID `json:"sender_id"`
	Body     string        `json:"body"`
}

func (s *Server) handleSendChat(w http.ResponseWriter, r *http.Request) {
	var req sendChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	msg, err := s.chat.SendMessage(r.Context(), req.RoomID, req.SenderID, req.Body)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	roomID := uuidstring.ID(r.URL.Query().Get("room_id"))
	history, err := s.chat.History(r.Context(), roomID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": history})
}

// writeServiceError maps domain errors onto HTTP statuses.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var ite *session.InvalidTransitionError
	switch {
	case errors.Is(err, matchmaking.ErrDuplicatePlayer), errors.Is(err, store.ErrSessionExists):
		writeError(w, http.StatusConflict, err.Error())
	case utils.ErrorsIsAny(err, matchmaking.ErrPlayerNotQueued, session.ErrSessionNotFound, store.ErrRatingNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &ite),
		utils.ErrorsIsAny(err,
			matchmaking.ErrModeMismatch,
			matchmaking.ErrInvalidMode,
			session.ErrMatchIDMismatch,
			session.ErrNoResults,
			session.ErrNoPlayers,
			session.ErrEmptyMatchID,
			session.ErrEmptyPlayerID,
			mmr.ErrInvalidRatingInput,
			mmr.ErrNegative,
			matchserver.ErrEmptyPlayerID,
			chat.ErrEmptyMessage,
			chat.ErrMessageTooLong,
			chat.ErrEmptyRoomID,
			chat.ErrEmptySenderID):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
