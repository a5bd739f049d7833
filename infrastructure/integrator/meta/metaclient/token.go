package metaclient

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/traffic-manager-kpi/infrastructure/integrator/meta/domain"
)

var ErrTokenInvalid = errors.New("token da Meta inválido ou expirado")

// CheckToken consulta o endpoint /me para validar o token configurado
func (c *MetaClient) CheckToken(ctx context.Context) error {
	if c.accessToken == "" {
		return fmt.Errorf("token não pode ser vazio")
	}

	params := url.Values{}
	params.Add("fields", "id,name")

	body, err := c.doGet(ctx, c.buildURL("me", params))
	if err != nil {
		var apiErr *metadomain.APIError
		if errors.As(err, &apiErr) {
			logrus.Warnf("Token inválido ou expirado. Status: %d", apiErr.StatusCode)
			if apiErr.TokenExpired() || apiErr.StatusCode == 400 || apiErr.StatusCode == 401 {
				return fmt.Errorf("%w: %s", ErrTokenInvalid, apiErr.Error())
			}
		}
		return fmt.Errorf("erro ao verificar token: %w", err)
	}

	var me struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &me); err != nil {
		return fmt.Errorf("erro ao decodificar resposta do token: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"id":   me.ID,
		"name": me.Name,
	}).Info("Token da Meta válido")

	return nil
}
