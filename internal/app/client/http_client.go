package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/exp/slog"

	"lifesprint/internal/app/client/config"
	"lifesprint/internal/domain/sync"
)

type httpRemote struct {
	client    *http.Client
	config    *config.Config
	log       *slog.Logger
	baseURL   string
	userID    string
	userAgent string
}

// NewHTTPRemote создаёт HTTP-клиент удалённого хранилища.
// Реализует RemoteStore поверх REST API сервера.
func NewHTTPRemote(cfg *config.Config, log *slog.Logger) (*httpRemote, error) {
	client := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	// Определяем протокол
	scheme := "http://"
	if cfg.EnableTLS {
		scheme = "https://"
	}
	baseURL := scheme + cfg.ServerAddress

	return &httpRemote{
		client:    client,
		config:    cfg,
		log:       log,
		baseURL:   baseURL,
		userAgent: "LifeSprint-Client/1.0",
	}, nil
}

// SetUserID устанавливает идентификатор пользователя для всех запросов
func (h *httpRemote) SetUserID(userID string) {
	h.userID = userID
}

// Ping проверяет доступность сервера
func (h *httpRemote) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", h.baseURL+"/api/v1/health", nil)
	if err != nil {
		return fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return sync.ErrOffline
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("сервер вернул статус: %d", resp.StatusCode)
	}

	return nil
}

// Fetch читает документ пользователя с сервера
func (h *httpRemote) Fetch(ctx context.Context, userID string, kind sync.Kind) (json.RawMessage, error) {
	resp, err := h.doRequest(ctx, "GET", "/api/v1/store/"+string(kind), userID, nil)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Payload json.RawMessage `json:"payload"`
	}
	if err := h.parseResponse(resp, &doc); err != nil {
		return nil, err
	}

	return doc.Payload, nil
}

// Store записывает документ пользователя на сервер
func (h *httpRemote) Store(ctx context.Context, userID string, kind sync.Kind, payload json.RawMessage) error {
	body := struct {
		Payload json.RawMessage `json:"payload"`
	}{Payload: payload}

	resp, err := h.doRequest(ctx, "PUT", "/api/v1/store/"+string(kind), userID, body)
	if err != nil {
		return err
	}

	return h.parseResponse(resp, nil)
}

// Delete удаляет документ пользователя на сервере
func (h *httpRemote) Delete(ctx context.Context, userID string, kind sync.Kind) error {
	resp, err := h.doRequest(ctx, "DELETE", "/api/v1/store/"+string(kind), userID, nil)
	if err != nil {
		return err
	}

	return h.parseResponse(resp, nil)
}

func (h *httpRemote) doRequest(ctx context.Context, method, path, userID string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	// Добавляем заголовки
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	if userID == "" {
		userID = h.userID
	}
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}

	h.log.Debug("Отправка запроса",
		"method", method,
		"url", req.URL.String(),
	)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, sync.ErrOffline
	}

	return resp, nil
}

func (h *httpRemote) parseResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	h.log.Debug("Получен ответ",
		"status", resp.StatusCode,
	)

	if resp.StatusCode == http.StatusNotFound {
		return sync.ErrRecordNotFound
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Detail string `json:"detail"`
			Error  string `json:"error"`
		}
		if err := json.Unmarshal(body, &errResp); err == nil {
			if errResp.Detail != "" {
				return fmt.Errorf("ошибка сервера: %s", errResp.Detail)
			}
			if errResp.Error != "" {
				return fmt.Errorf("ошибка сервера: %s", errResp.Error)
			}
		}
		return fmt.Errorf("ошибка сервера: статус %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("ошибка парсинга ответа: %w", err)
		}
	}

	return nil
}
