package rest

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-web/internal/view"
)

const qrSize = 320

type joinResponse struct {
	Marker tictactoe.Marker `json:"marker"`
	Game   view.GameView    `json:"game"`
}

func (that *Server) handlePing(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write pong", "error", err)
	}
}

func (that *Server) handleListGames(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	records, err := that.gamePlay.ListGames(r.Context())
	if err != nil {
		that.fail(w, r, "handleListGames", err)
		return
	}

	writeJSON(w, http.StatusOK, view.FromRecords(records))
}

func (that *Server) handleCreateGame(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	player := mustPlayer(r)

	record, err := that.gamePlay.CreateGame(r.Context(), player.ID)
	if err != nil {
		that.fail(w, r, "handleCreateGame", err)
		return
	}

	gameView, err := that.withPlayers(r, record)
	if err != nil {
		that.fail(w, r, "handleCreateGame", err)
		return
	}

	w.Header().Set("Location", "/games/"+record.ID)
	writeJSON(w, http.StatusCreated, gameView)
}

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	record, err := that.gamePlay.GetGame(r.Context(), ps.ByName("id"))
	if err != nil {
		that.fail(w, r, "handleGetGame", err)
		return
	}

	gameView, err := that.withPlayers(r, record)
	if err != nil {
		that.fail(w, r, "handleGetGame", err)
		return
	}

	writeJSON(w, http.StatusOK, gameView)
}

func (that *Server) handleJoinGame(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	player := mustPlayer(r)

	record, marker, err := that.gamePlay.JoinGame(r.Context(), ps.ByName("id"), player.ID)
	if err != nil {
		that.fail(w, r, "handleJoinGame", err)
		return
	}

	gameView, err := that.withPlayers(r, record)
	if err != nil {
		that.fail(w, r, "handleJoinGame", err)
		return
	}

	writeJSON(w, http.StatusOK, joinResponse{Marker: marker, Game: gameView})
}

func (that *Server) handleMakeMove(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	player := mustPlayer(r)

	position, err := view.ParsePosition(ps.ByName("position"))
	if err != nil {
		that.fail(w, r, "handleMakeMove", err)
		return
	}

	record, err := that.gamePlay.MakeMove(r.Context(), ps.ByName("id"), player.ID, position)
	if err != nil {
		that.fail(w, r, "handleMakeMove", err)
		return
	}

	gameView, err := that.withPlayers(r, record)
	if err != nil {
		that.fail(w, r, "handleMakeMove", err)
		return
	}

	writeJSON(w, http.StatusOK, gameView)
}

// handleDeleteGame - only players of the game may delete it.
func (that *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	player := mustPlayer(r)
	gameID := ps.ByName("id")

	if _, err := that.gamePlay.GetGame(r.Context(), gameID); err != nil {
		that.fail(w, r, "handleDeleteGame", err)
		return
	}

	assignment, err := that.gamePlay.GetPlayers(r.Context(), gameID)
	if err != nil {
		that.fail(w, r, "handleDeleteGame", err)
		return
	}

	if _, ok := assignment.MarkerOf(player.ID); !ok {
		that.fail(w, r, "handleDeleteGame", apperror.ErrNotInGame)
		return
	}

	if err = that.gamePlay.DeleteGame(r.Context(), gameID); err != nil {
		that.fail(w, r, "handleDeleteGame", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleQRCode - PNG QR code of the game page, for inviting the opponent.
func (that *Server) handleQRCode(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	gameID := ps.ByName("id")

	if _, err := that.gamePlay.GetGame(r.Context(), gameID); err != nil {
		that.fail(w, r, "handleQRCode", err)
		return
	}

	png, err := qrcode.Encode(that.baseURL(r)+"/games/"+gameID, qrcode.Medium, qrSize)
	if err != nil {
		that.fail(w, r, "handleQRCode", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (that *Server) handleMe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, mustPlayer(r))
}

func (that *Server) withPlayers(r *http.Request, record *entity.GameRecord) (view.GameView, error) {
	assignment, err := that.gamePlay.GetPlayers(r.Context(), record.ID)
	if err != nil {
		return view.GameView{}, err
	}

	return view.FromRecord(record).WithPlayers(assignment), nil
}

// baseURL - configured public url, or one derived from the request.
func (that *Server) baseURL(r *http.Request) string {
	if that.publicURL != "" {
		return strings.TrimSuffix(that.publicURL, "/")
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	return scheme + "://" + r.Host
}

func (that *Server) fail(w http.ResponseWriter, r *http.Request, method string, err error) {
	status := StatusOf(err)

	log := that.logger.With("method", method, "path", r.URL.Path)
	if status == http.StatusInternalServerError {
		log.Error("request failed", "error", err)
		writeError(w, status, "internal server error")
		return
	}

	log.Info("request rejected", "status", status, "error", err)
	writeError(w, status, err.Error())
}

// mustPlayer - only valid behind WithSession.
func mustPlayer(r *http.Request) *entity.Player {
	player, ok := PlayerFromContext(r.Context())
	if !ok {
		panic("rest: handler registered without session middleware")
	}
	return player
}
