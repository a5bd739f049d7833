package metaclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/traffic-manager-kpi/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/traffic-manager-kpi/internal/config"
)

func newTestClient(serverURL string) *MetaClient {
	cfg := &config.Config{}
	cfg.Meta.URL = serverURL
	cfg.Meta.AccessToken = "token-teste"
	cfg.Meta.MaxRetries = 2
	cfg.Meta.RetryWait = time.Millisecond
	cfg.Meta.Timeout = 5 * time.Second

	client := NewClient(cfg)
	client.sleep = func(context.Context, time.Duration) error { return nil }
	return client
}

func TestGetInsights_FollowsPagination(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/act_123/insights", r.URL.Path)
		assert.Equal(t, "token-teste", r.URL.Query().Get("access_token"))

		if r.URL.Query().Get("after") == "" {
			assert.Equal(t, "campaign", r.URL.Query().Get("level"))
			assert.Equal(t, "1", r.URL.Query().Get("time_increment"))
			assert.Equal(t, `{"since":"2024-03-01","until":"2024-03-07"}`, r.URL.Query().Get("time_range"))
			fmt.Fprintf(w, `{"data":[{"date_start":"2024-03-01","campaign_id":"c1","spend":"10.5"}],"paging":{"next":"%s/act_123/insights?after=abc&access_token=token-teste"}}`, server.URL)
			return
		}

		fmt.Fprint(w, `{"data":[{"date_start":"2024-03-02","campaign_id":"c1","spend":"3"}],"paging":{}}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	insights, err := client.GetInsights(context.Background(), "123", InsightRequest{
		Level: "campaign",
		Since: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Until: time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, insights, 2)
	assert.Equal(t, "2024-03-01", insights[0].DateStart)
	assert.Equal(t, "3", insights[1].Spend)
}

func TestGetInsights_RetriesTransientErrors(t *testing.T) {
	tests := []struct {
		name        string
		errorBody   string
		failures    int32
		expectError bool
		expectCalls int32
	}{
		{
			name:        "limite de chamadas código 613",
			errorBody:   `{"error":{"message":"Calls to this api have exceeded the rate limit.","code":613}}`,
			failures:    1,
			expectCalls: 2,
		},
		{
			name:        "erro transitório",
			errorBody:   `{"error":{"message":"An unexpected error has occurred.","code":2,"is_transient":true}}`,
			failures:    2,
			expectCalls: 3,
		},
		{
			name:        "limite excedido após todas as tentativas",
			errorBody:   `{"error":{"message":"Application request limit reached","code":4}}`,
			failures:    10,
			expectError: true,
			expectCalls: 3,
		},
		{
			name:        "erro permanente não é repetido",
			errorBody:   `{"error":{"message":"Invalid parameter","code":100}}`,
			failures:    10,
			expectError: true,
			expectCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if atomic.AddInt32(&calls, 1) <= tt.failures {
					w.WriteHeader(http.StatusBadRequest)
					fmt.Fprint(w, tt.errorBody)
					return
				}
				fmt.Fprint(w, `{"data":[{"date_start":"2024-03-01"}]}`)
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).GetInsights(context.Background(), "123", InsightRequest{
				Level: "account",
				Since: time.Now(),
				Until: time.Now(),
			})

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expectCalls, atomic.LoadInt32(&calls))
		})
	}
}

func TestGetInsights_InvalidLevel(t *testing.T) {
	client := newTestClient("http://localhost")

	_, err := client.GetInsights(context.Background(), "123", InsightRequest{Level: "region"})

	assert.ErrorContains(t, err, "nível de insight inválido")
}

func TestBuildInsightParams_Breakdowns(t *testing.T) {
	params, err := buildInsightParams(InsightRequest{
		Level:      "campaign",
		Since:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Until:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Breakdowns: []string{"publisher_platform", "platform_position"},
	})

	require.NoError(t, err)
	assert.Equal(t, "publisher_platform,platform_position", params.Get("breakdowns"))
	assert.Contains(t, params.Get("fields"), "campaign_id")
	assert.NotContains(t, params.Get("fields"), "adset_id")
}

func TestGetCampaignsByAccountID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/act_987/campaigns", r.URL.Path)
		fmt.Fprint(w, `{"data":[{"id":"1","name":"Mensagens","status":"ACTIVE","objective":"OUTCOME_ENGAGEMENT"}]}`)
	}))
	defer server.Close()

	campaigns, err := newTestClient(server.URL).GetCampaignsByAccountID(context.Background(), "987")

	require.NoError(t, err)
	assert.Equal(t, []metadomain.Campaign{{ID: "1", Name: "Mensagens", Status: "ACTIVE", Objective: "OUTCOME_ENGAGEMENT"}}, campaigns)
}

func TestCheckToken(t *testing.T) {
	t.Run("token válido", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/me", r.URL.Path)
			fmt.Fprint(w, `{"id":"42","name":"Gestor"}`)
		}))
		defer server.Close()

		assert.NoError(t, newTestClient(server.URL).CheckToken(context.Background()))
	})

	t.Run("token expirado", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error":{"message":"Error validating access token","type":"OAuthException","code":190}}`)
		}))
		defer server.Close()

		assert.ErrorIs(t, newTestClient(server.URL).CheckToken(context.Background()), ErrTokenInvalid)
	})

	t.Run("token vazio", func(t *testing.T) {
		client := newTestClient("http://localhost")
		client.accessToken = ""

		assert.Error(t, client.CheckToken(context.Background()))
	})
}
