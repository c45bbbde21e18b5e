package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client клиент справочника сотрудников, магазинов и клиентов CRM
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger

	redis    *redis.Client
	cacheTTL time.Duration
}

// NewClient создает новый экземпляр клиента справочника
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// UseRedisCache включает кеширование ответов справочника в Redis
func (c *Client) UseRedisCache(redisClient *redis.Client, ttl time.Duration) {
	c.redis = redisClient
	c.cacheTTL = ttl
}

// GetUser получает сотрудника по ID
func (c *Client) GetUser(ctx context.Context, userID int64) (*User, error) {
	cacheKey := fmt.Sprintf("directory:user:%d", userID)

	var user User
	if c.readCache(ctx, cacheKey, &user) {
		return &user, nil
	}

	url := fmt.Sprintf("%s/internal/users/%d", c.baseURL, userID)
	if err := c.get(ctx, url, ErrUserNotFound, &user); err != nil {
		return nil, err
	}

	c.writeCache(ctx, cacheKey, user)
	return &user, nil
}

// GetCustomer получает клиента по ID
func (c *Client) GetCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	cacheKey := fmt.Sprintf("directory:customer:%d", customerID)

	var customer Customer
	if c.readCache(ctx, cacheKey, &customer) {
		return &customer, nil
	}

	url := fmt.Sprintf("%s/internal/clients/%d", c.baseURL, customerID)
	if err := c.get(ctx, url, ErrCustomerNotFound, &customer); err != nil {
		return nil, err
	}

	c.writeCache(ctx, cacheKey, customer)
	return &customer, nil
}

func (c *Client) get(ctx context.Context, url string, notFound error, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return notFound
	case http.StatusBadRequest:
		return fmt.Errorf("%w: invalid ID format", ErrInvalidResponse)
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

func (c *Client) readCache(ctx context.Context, key string, out interface{}) bool {
	if c.redis == nil || c.cacheTTL <= 0 {
		return false
	}
	val, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("Directory cache read failed for %s: %v", key, err)
		}
		return false
	}
	return json.Unmarshal(val, out) == nil
}

func (c *Client) writeCache(ctx context.Context, key string, val interface{}) {
	if c.redis == nil || c.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.cacheTTL).Err(); err != nil {
		c.log.Warn("Directory cache write failed for %s: %v", key, err)
	}
}
