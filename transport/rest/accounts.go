package rest

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/rocketscienceinc/tictactoe-web/internal/service"
)

const maxCredentialsBody = 4 << 10

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleRegister - upgrades the session's anonymous player to a named account.
func (that *Server) handleRegister(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	player := mustPlayer(r)

	var request registerRequest
	if !that.decode(w, r, &request) {
		return
	}

	registered, err := that.accounts.Register(r.Context(), player.ID, service.Registration{
		Email:    request.Email,
		Name:     request.Name,
		Password: request.Password,
	})
	if err != nil {
		that.fail(w, r, "handleRegister", err)
		return
	}

	writeJSON(w, http.StatusOK, registered)
}

// handleLogin - binds the session to the account's player, replacing whatever
// player the browser had before.
func (that *Server) handleLogin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var request loginRequest
	if !that.decode(w, r, &request) {
		return
	}

	player, err := that.accounts.Login(r.Context(), request.Email, request.Password)
	if err != nil {
		that.fail(w, r, "handleLogin", err)
		return
	}

	if err = that.setSession(w, player.ID); err != nil {
		that.fail(w, r, "handleLogin", err)
		return
	}

	that.logger.Info("player logged in", "playerID", player.ID)

	writeJSON(w, http.StatusOK, player)
}

func (that *Server) handleLogout(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	clearSession(w)
	w.WriteHeader(http.StatusNoContent)
}

func (that *Server) decode(w http.ResponseWriter, r *http.Request, out any) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCredentialsBody))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(out); err != nil {
		that.logger.Info("malformed request body", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadRequest, "malformed request body")
		return false
	}

	return true
}
