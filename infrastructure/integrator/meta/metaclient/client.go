package metaclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/traffic-manager-kpi/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/traffic-manager-kpi/internal/config"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client interface {
	GetCampaignsByAccountID(ctx context.Context, accountID string) ([]metadomain.Campaign, error)
	GetInsights(ctx context.Context, accountID string, request InsightRequest) ([]metadomain.Insight, error)
	CheckToken(ctx context.Context) error
}

type MetaClient struct {
	apiURL      string
	accessToken string
	httpClient  *http.Client
	limiter     *rate.Limiter
	maxRetries  int
	retryWait   time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

func NewClient(cfg *config.Config) *MetaClient {
	limit := rate.Inf
	if cfg.Meta.RequestsPerSec > 0 {
		limit = rate.Limit(cfg.Meta.RequestsPerSec)
	}

	return &MetaClient{
		apiURL:      cfg.Meta.URL,
		accessToken: cfg.Meta.AccessToken,
		httpClient:  &http.Client{Timeout: cfg.Meta.Timeout},
		limiter:     rate.NewLimiter(limit, 1),
		maxRetries:  cfg.Meta.MaxRetries,
		retryWait:   cfg.Meta.RetryWait,
		sleep:       sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *MetaClient) buildURL(path string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("access_token", c.accessToken)
	return fmt.Sprintf("%s/%s?%s", c.apiURL, path, params.Encode())
}

// get executa a requisição respeitando o limitador e repete em caso de limite de uso ou erro transitório
func (c *MetaClient) get(ctx context.Context, requestURL string) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		body, err := c.doGet(ctx, requestURL)
		if err == nil {
			return body, nil
		}

		var apiErr *metadomain.APIError
		if !errors.As(err, &apiErr) || !apiErr.Retryable() || attempt >= c.maxRetries {
			return nil, err
		}

		logrus.WithFields(logrus.Fields{
			"code":    apiErr.Response.Error.Code,
			"attempt": attempt + 1,
			"max":     c.maxRetries,
			"wait":    c.retryWait.String(),
		}).Warn("Limite de requisições ou erro transitório da Meta. Aguardando para tentar novamente")

		if err := c.sleep(ctx, c.retryWait); err != nil {
			return nil, err
		}
	}
}

func (c *MetaClient) doGet(ctx context.Context, requestURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Erro ao fazer a requisição")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode == http.StatusOK {
		return body, nil
	}

	return nil, parseAPIError(resp.StatusCode, body)
}

func parseAPIError(statusCode int, body []byte) *metadomain.APIError {
	apiErr := &metadomain.APIError{StatusCode: statusCode, Body: string(body)}

	var errorResp metadomain.ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error.Code != 0 {
		apiErr.Response = &errorResp
	}

	return apiErr
}

type page[T any] struct {
	Data   []T               `json:"data"`
	Paging metadomain.Paging `json:"paging"`
}

// getAllPages segue paging.next até a última página
func getAllPages[T any](ctx context.Context, c *MetaClient, requestURL string) ([]T, error) {
	all := make([]T, 0)

	for next := requestURL; next != ""; {
		body, err := c.get(ctx, next)
		if err != nil {
			return nil, err
		}

		var response page[T]
		if err := json.Unmarshal(body, &response); err != nil {
			logrus.WithError(err).Error("Erro ao decodificar JSON")
			return nil, err
		}

		all = append(all, response.Data...)
		next = response.Paging.Next
	}

	return all, nil
}
