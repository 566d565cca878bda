package accountservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с AccountService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента AccountService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetOperator получает данные оператора по его ID
func (c *Client) GetOperator(ctx context.Context, userID int64) (*Operator, error) {
	url := fmt.Sprintf("%s/internal/operators/%d", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid operator ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrOperatorNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var operator Operator
	if err := json.NewDecoder(resp.Body).Decode(&operator); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &operator, nil
}

// GetOperatorWithGracefulDegradation получает данные оператора с graceful degradation
// При недоступности AccountService возвращает ErrServiceDegraded, что позволяет
// отдавать публичную страницу без карточки оператора
func (c *Client) GetOperatorWithGracefulDegradation(ctx context.Context, userID int64) (*Operator, error) {
	c.log.Info("Fetching operator user_id=%d", userID)

	operator, err := c.GetOperator(ctx, userID)
	if err != nil {
		// Если оператор не найден - это бизнес-ошибка, пробрасываем её дальше
		if err == ErrOperatorNotFound {
			c.log.Info("Operator not found, user_id=%d", userID)
			return nil, err
		}

		// Для всех остальных ошибок (недоступность сервиса, timeout, ошибки парсинга и т.д.)
		// применяем graceful degradation - возвращаем ErrServiceDegraded с контекстом
		c.log.Error("AccountService unavailable, applying graceful degradation for user_id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: user_id=%d, error=%v", ErrServiceDegraded, userID, err)
	}

	c.log.Info("Successfully fetched operator user_id=%d", userID)
	return operator, nil
}
