package identityservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerConfig настройки circuit breaker
type BreakerConfig struct {
	MaxRequests      uint32        // Запросов в полуоткрытом состоянии
	Interval         time.Duration // Период сброса счётчиков в закрытом состоянии
	Timeout          time.Duration // Время в открытом состоянии до перехода в полуоткрытое
	FailureThreshold uint32        // Подряд идущих ошибок до размыкания
}

// Client клиент для работы с IdentityService
// Все запросы проходят через circuit breaker; ответы 404 ошибкой сервиса не считаются
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
	log        Logger
}

// NewClient создает новый экземпляр клиента IdentityService
func NewClient(baseURL string, timeout time.Duration, breakerCfg BreakerConfig, log Logger) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}

	failureThreshold := breakerCfg.FailureThreshold
	if failureThreshold == 0 {
		failureThreshold = 5
	}

	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "identityservice",
		MaxRequests: breakerCfg.MaxRequests,
		Interval:    breakerCfg.Interval,
		Timeout:     breakerCfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Warn("IdentityService: circuit breaker %s changed state from=%s to=%s", name, from.String(), to.String())
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errNotFound)
		},
	})

	return c
}

// errNotFound внутренний маркер 404, транслируется в ErrDoctorNotFound/ErrPatientNotFound
var errNotFound = errors.New("identityservice client: resource not found")

// GetDoctor получает врача по ID
func (c *Client) GetDoctor(ctx context.Context, doctorID int64) (*Doctor, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/internal/doctors/%d", c.baseURL, doctorID))
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}

	var doctor Doctor
	if err := json.Unmarshal(body, &doctor); err != nil {
		return nil, fmt.Errorf("%w: failed to decode doctor: %v", ErrInvalidResponse, err)
	}

	return &doctor, nil
}

// GetPatient получает пациента по ID
func (c *Client) GetPatient(ctx context.Context, patientID int64) (*Patient, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/internal/patients/%d", c.baseURL, patientID))
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	var patient Patient
	if err := json.Unmarshal(body, &patient); err != nil {
		return nil, fmt.Errorf("%w: failed to decode patient: %v", ErrInvalidResponse, err)
	}

	return &patient, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.doGet(ctx, url)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	return body, err
}

func (c *Client) doGet(ctx context.Context, url string) ([]byte, error) {
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
	case http.StatusNotFound:
		return nil, errNotFound
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid id format", ErrInvalidResponse)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrInvalidResponse, err)
	}

	return body, nil
}
