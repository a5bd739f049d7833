package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/traffic-manager-kpi/internal/usecases/authenticating"
	"github.com/vfg2006/traffic-manager-kpi/pkg/apiErrors"
	"github.com/vfg2006/traffic-manager-kpi/pkg/log"
	"github.com/vfg2006/traffic-manager-kpi/pkg/middleware"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.Email == "" || req.Password == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Email e senha são obrigatórios", nil)
			return
		}

		token, err := service.LoginUser(r.Context(), req.Email, req.Password)
		if err != nil {
			handleLoginError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, LoginResponse{Token: token})
	}
}

// GetMe retorna as informações do usuário logado
func GetMe(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		user, err := service.GetUserProfile(r.Context(), userClaims.UserID)
		if err != nil {
			handleLoginError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, user)
	}
}

// handleLoginError trata erros de autenticação e retorna a resposta apropriada
func handleLoginError(w http.ResponseWriter, r *http.Request, err error) {
	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)
		return
	}

	switch {
	case errors.Is(err, authenticating.ErrInvalidCredentials):
		apiErrors.WriteError(w, apiErrors.ErrInvalidCredentials, "Credenciais inválidas", nil)

	case errors.Is(err, authenticating.ErrUserDisabled):
		apiErrors.WriteError(w, apiErrors.ErrUserDisabled, "Usuário desativado", nil)

	case errors.Is(err, authenticating.ErrUserNotFound):
		apiErrors.WriteError(w, apiErrors.ErrUserNotFound, "Usuário não encontrado", nil)

	default:
		log.ForContext(r.Context()).WithError(err).Error("Erro ao autenticar usuário")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao realizar login", nil)
	}
}
