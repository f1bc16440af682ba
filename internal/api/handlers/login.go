package handlers

import (
	"net/http"

	"github.com/baharkarakas/bloglist-backend/internal/api/httpx"
	"github.com/baharkarakas/bloglist-backend/internal/services"
)

type LoginHandler struct {
	Svc *services.AuthService
}

func NewLoginHandler(s *services.AuthService) *LoginHandler {
	return &LoginHandler{Svc: s}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResp struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	res, err := h.Svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, loginResp{
		Token:    res.Token,
		Username: res.Username,
		Name:     res.Name,
	})
}
