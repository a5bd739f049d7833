package config

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const renderAPIURL = "https://api.render.com/v1"

// SecretStorage lê os secret files do serviço no Render (token da Meta, chave do JWT)
type SecretStorage interface {
	ListSecrets(ctx context.Context, serviceID string) (map[string]string, error)
	AddOrUpdateSecret(ctx context.Context, serviceID, secretName, secretContent string) error
}

type AddOrUpdateSecretRequest struct {
	Content string `json:"content"`
}

type RenderClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewRenderClient(config *Config) *RenderClient {
	return &RenderClient{
		APIKey:     config.Render.APIKey,
		BaseURL:    renderAPIURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *RenderClient) ListSecrets(ctx context.Context, serviceID string) (map[string]string, error) {
	url := fmt.Sprintf("%s/services/%s/secret-files?limit=100", c.BaseURL, serviceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("config: error list secrets: %s", body)
	}

	var response []struct {
		SecretFile struct {
			Content string `json:"content"`
			Name    string `json:"name"`
		} `json:"secretFile"`
		Cursor string `json:"cursor"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, err
	}

	secretsMap := make(map[string]string)
	for _, sf := range response {
		secretsMap[sf.SecretFile.Name] = sf.SecretFile.Content
	}

	return secretsMap, nil
}

func (c *RenderClient) AddOrUpdateSecret(ctx context.Context, serviceID, secretName, secretContent string) error {
	url := fmt.Sprintf("%s/services/%s/secret-files/%s", c.BaseURL, serviceID, secretName)

	jsonData, err := json.Marshal(AddOrUpdateSecretRequest{Content: secretContent})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("config: error add or update secret: %s", body)
	}
	return nil
}
