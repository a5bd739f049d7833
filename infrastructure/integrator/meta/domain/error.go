package metadomain

import "fmt"

// ErrorResponse representa a estrutura de erro da API do Meta
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode,omitempty"`
	IsTransient  bool   `json:"is_transient,omitempty"`
	FBTraceID    string `json:"fbtrace_id"`
}

// IsTokenExpired verifica se o erro é de token expirado
func (e *ErrorResponse) IsTokenExpired() bool {
	// O código 190 representa "token expirado" nas respostas da API do Meta
	// Possíveis subcódigos relacionados a problemas de token: 460, 463, 467
	return e.Error.Code == 190 ||
		(e.Error.Type == "OAuthException" && (e.Error.ErrorSubcode == 460 || e.Error.ErrorSubcode == 463 || e.Error.ErrorSubcode == 467))
}

// IsRetryable cobre limite de requisições (4, 17, 613) e erros marcados como transitórios
func (e *ErrorResponse) IsRetryable() bool {
	switch e.Error.Code {
	case 4, 17, 613:
		return true
	}
	return e.Error.IsTransient
}

// APIError é devolvido quando a Graph API responde com status diferente de 200
type APIError struct {
	StatusCode int
	Response   *ErrorResponse
	Body       string
}

func (e *APIError) Error() string {
	if e.Response != nil && e.Response.Error.Message != "" {
		return fmt.Sprintf("erro na API da Meta. Status: %d, Código: %d, Mensagem: %s",
			e.StatusCode, e.Response.Error.Code, e.Response.Error.Message)
	}
	return fmt.Sprintf("erro na API da Meta. Status: %d, Corpo: %s", e.StatusCode, e.Body)
}

func (e *APIError) Retryable() bool {
	return e.Response != nil && e.Response.IsRetryable()
}

func (e *APIError) TokenExpired() bool {
	return e.Response != nil && e.Response.IsTokenExpired()
}
