package ifood

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/allisson/ifood-integration/internal/errors"
)

const (
	eventsPollingPath = "/order/v1.0/events:polling"
	eventsAckPath     = "/order/v1.0/events/acknowledgment"
	ordersPath        = "/order/v1.0/orders/"
	merchantsPath     = "/merchant/v1.0/merchants/"
	pickingPathFmt    = "/picking/v1.0/orders/%s/items"
	catalogPathFmt    = "/catalog/v2.0/merchants/%s/products"
	promotionPathFmt  = "/promotion/v1.0/merchants/%s/promotions"

	merchantScopeHeader = "x-polling-merchants"
)

// ClientConfig holds the settings for a Client.
type ClientConfig struct {
	BaseURL             string
	MerchantID          string
	RetryMaxAttempts    int
	RetryInitialBackoff time.Duration
}

// Client is the stateless request layer for the iFood merchant API. Every call
// obtains a token from the TokenManager, attaches it and translates remote
// failures into the domain error taxonomy.
type Client struct {
	cfg        ClientConfig
	tokens     *TokenManager
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new Client.
func NewClient(cfg ClientConfig, tokens *TokenManager, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if cfg.RetryMaxAttempts < 1 {
		cfg.RetryMaxAttempts = 1
	}
	return &Client{
		cfg:        cfg,
		tokens:     tokens,
		httpClient: httpClient,
		logger:     logger,
	}
}

// PollEvents fetches pending events from the remote queue. A 204 response
// means the queue is empty and yields an empty slice.
func (c *Client) PollEvents(ctx context.Context) ([]RemoteEvent, error) {
	headers := map[string]string{merchantScopeHeader: c.cfg.MerchantID}

	body, status, err := c.do(ctx, http.MethodGet, eventsPollingPath, headers, nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNoContent || len(body) == 0 {
		return []RemoteEvent{}, nil
	}

	var events []RemoteEvent
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode events response")
	}
	return events, nil
}

// AckEvents acknowledges processed event ids so the remote stops redelivering
// them. An empty batch is a no-op.
func (c *Client) AckEvents(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	acks := make([]eventAck, 0, len(ids))
	for _, id := range ids {
		acks = append(acks, eventAck{ID: id})
	}

	_, _, err := c.do(ctx, http.MethodPost, eventsAckPath, nil, acks)
	return err
}

// ConfirmOrder confirms an order on the remote.
func (c *Client) ConfirmOrder(ctx context.Context, orderID string) error {
	return c.orderAction(ctx, orderID, "confirm", nil)
}

// StartPreparation signals that preparation started.
func (c *Client) StartPreparation(ctx context.Context, orderID string) error {
	return c.orderAction(ctx, orderID, "startPreparation", nil)
}

// ReadyToPickup signals that the order is ready for pickup.
func (c *Client) ReadyToPickup(ctx context.Context, orderID string) error {
	return c.orderAction(ctx, orderID, "readyToPickup", nil)
}

// Dispatch signals that the order left for delivery.
func (c *Client) Dispatch(ctx context.Context, orderID string) error {
	return c.orderAction(ctx, orderID, "dispatch", nil)
}

// RequestCancellation asks the remote to cancel an order with a numeric
// cancellation code.
func (c *Client) RequestCancellation(ctx context.Context, orderID string, code int, reason string) error {
	body := cancellationRequest{
		Reason:           reason,
		CancellationCode: strconv.Itoa(code),
	}
	return c.orderAction(ctx, orderID, "requestCancellation", body)
}

// StartSeparation signals that item separation started for a grocery order.
func (c *Client) StartSeparation(ctx context.Context, orderID string) error {
	return c.orderAction(ctx, orderID, "startSeparation", nil)
}

// EndSeparation signals that item separation finished for a grocery order.
func (c *Client) EndSeparation(ctx context.Context, orderID string) error {
	return c.orderAction(ctx, orderID, "endSeparation", nil)
}

// OrderTracking fetches the courier tracking document for a dispatched order.
func (c *Client) OrderTracking(ctx context.Context, orderID string) (json.RawMessage, error) {
	body, _, err := c.do(ctx, http.MethodGet, ordersPath+orderID+"/tracking", nil, nil)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// AddPickingItem adds an item to an order during separation.
func (c *Client) AddPickingItem(ctx context.Context, orderID string, item interface{}) error {
	path := fmt.Sprintf(pickingPathFmt, orderID)
	_, _, err := c.do(ctx, http.MethodPost, path, nil, item)
	return err
}

// ModifyPickingItem changes the quantity or weight of an item during
// separation.
func (c *Client) ModifyPickingItem(ctx context.Context, orderID, uniqueID string, changes interface{}) error {
	path := fmt.Sprintf(pickingPathFmt, orderID) + "/" + uniqueID
	_, _, err := c.do(ctx, http.MethodPatch, path, nil, changes)
	return err
}

// ReplacePickingItem swaps an item for a substitute during separation.
func (c *Client) ReplacePickingItem(ctx context.Context, orderID, uniqueID string, replacement interface{}) error {
	path := fmt.Sprintf(pickingPathFmt, orderID) + "/" + uniqueID + "/replace"
	_, _, err := c.do(ctx, http.MethodPost, path, nil, replacement)
	return err
}

// RemovePickingItem drops an out-of-stock item from an order during
// separation.
func (c *Client) RemovePickingItem(ctx context.Context, orderID, uniqueID string) error {
	path := fmt.Sprintf(pickingPathFmt, orderID) + "/" + uniqueID
	_, _, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// OrderDetails fetches the full remote order document.
func (c *Client) OrderDetails(ctx context.Context, orderID string) (*OrderDetails, error) {
	body, _, err := c.do(ctx, http.MethodGet, ordersPath+orderID, nil, nil)
	if err != nil {
		return nil, err
	}

	var details OrderDetails
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode order details")
	}
	details.Raw = body
	return &details, nil
}

// MerchantDetails fetches the remote merchant document.
func (c *Client) MerchantDetails(ctx context.Context) (json.RawMessage, error) {
	body, _, err := c.do(ctx, http.MethodGet, merchantsPath+c.cfg.MerchantID, nil, nil)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// MerchantStatus fetches the remote merchant availability.
func (c *Client) MerchantStatus(ctx context.Context) (*MerchantStatus, error) {
	body, _, err := c.do(ctx, http.MethodGet, merchantsPath+c.cfg.MerchantID+"/status", nil, nil)
	if err != nil {
		return nil, err
	}

	var status MerchantStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode merchant status")
	}
	status.Raw = body
	return &status, nil
}

// Interruptions lists the merchant's active and scheduled interruptions.
func (c *Client) Interruptions(ctx context.Context) (json.RawMessage, error) {
	body, _, err := c.do(ctx, http.MethodGet, merchantsPath+c.cfg.MerchantID+"/interruptions", nil, nil)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// CreateInterruption temporarily closes the merchant for the given window.
func (c *Client) CreateInterruption(ctx context.Context, interruption interface{}) (json.RawMessage, error) {
	body, _, err := c.do(ctx, http.MethodPost, merchantsPath+c.cfg.MerchantID+"/interruptions", nil, interruption)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// DeleteInterruption removes an interruption so the merchant reopens early.
func (c *Client) DeleteInterruption(ctx context.Context, interruptionID string) error {
	_, _, err := c.do(ctx, http.MethodDelete, merchantsPath+c.cfg.MerchantID+"/interruptions/"+interruptionID, nil, nil)
	return err
}

// OpeningHours fetches the merchant's standard opening hours.
func (c *Client) OpeningHours(ctx context.Context) (json.RawMessage, error) {
	body, _, err := c.do(ctx, http.MethodGet, merchantsPath+c.cfg.MerchantID+"/opening-hours", nil, nil)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// SetOpeningHours replaces the merchant's full opening hours schedule. Days
// not present in the payload become closed.
func (c *Client) SetOpeningHours(ctx context.Context, payload interface{}) (json.RawMessage, error) {
	body, _, err := c.do(ctx, http.MethodPut, merchantsPath+c.cfg.MerchantID+"/opening-hours", nil, payload)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// CreateProduct publishes a catalog product on the remote.
func (c *Client) CreateProduct(ctx context.Context, product interface{}) error {
	path := fmt.Sprintf(catalogPathFmt, c.cfg.MerchantID)
	_, _, err := c.do(ctx, http.MethodPost, path, nil, product)
	return err
}

// UpdateProduct replaces a catalog product on the remote.
func (c *Client) UpdateProduct(ctx context.Context, productID string, product interface{}) error {
	path := fmt.Sprintf(catalogPathFmt, c.cfg.MerchantID) + "/" + productID
	_, _, err := c.do(ctx, http.MethodPut, path, nil, product)
	return err
}

// CreatePromotion publishes a promotion on the remote.
func (c *Client) CreatePromotion(ctx context.Context, promotion interface{}) error {
	path := fmt.Sprintf(promotionPathFmt, c.cfg.MerchantID)
	_, _, err := c.do(ctx, http.MethodPost, path, nil, promotion)
	return err
}

// DeletePromotion removes a promotion from the remote.
func (c *Client) DeletePromotion(ctx context.Context, promotionID string) error {
	path := fmt.Sprintf(promotionPathFmt, c.cfg.MerchantID) + "/" + promotionID
	_, _, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// AuthStatus returns the credential snapshot from the token manager.
func (c *Client) AuthStatus() AuthStatus {
	return c.tokens.Status()
}

// orderAction issues one POST order action call.
func (c *Client) orderAction(ctx context.Context, orderID, action string, body interface{}) error {
	_, _, err := c.do(ctx, http.MethodPost, ordersPath+orderID+"/"+action, nil, body)
	return err
}

// do issues an authenticated request. A 401 invalidates the cached token and
// retries exactly once with a fresh one. A 429 fails immediately with
// ErrRateLimited. 5xx responses and network failures are retried with
// exponential backoff up to the attempt ceiling, then surfaced as transient.
func (c *Client) do(
	ctx context.Context,
	method, path string,
	headers map[string]string,
	body interface{},
) ([]byte, int, error) {
	var lastErr error
	refreshed := false

	for attempt := 0; attempt < c.cfg.RetryMaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-time.After(c.cfg.RetryInitialBackoff << (attempt - 1)):
			}
		}

		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, 0, err
		}

		respBody, status, err := c.send(ctx, method, path, headers, body, token)
		if err != nil {
			lastErr = err

			c.logger.Warn("remote request attempt failed",
				slog.String("method", method),
				slog.String("path", path),
				slog.Int("attempt", attempt+1),
				slog.Any("error", err),
			)
			continue
		}

		switch {
		case status >= http.StatusOK && status < http.StatusMultipleChoices:
			return respBody, status, nil

		case status == http.StatusUnauthorized:
			if refreshed {
				return nil, status, apperrors.Wrap(apperrors.ErrAuthExpired, "request rejected after token refresh")
			}
			refreshed = true
			c.tokens.Invalidate()
			// Retry immediately with a fresh token, without consuming a
			// backoff attempt.
			attempt--

		case status == http.StatusTooManyRequests:
			return nil, status, apperrors.Wrap(apperrors.ErrRateLimited, method+" "+path)

		case status == http.StatusNotFound:
			return nil, status, apperrors.Wrap(apperrors.ErrNotFound, method+" "+path)

		case status >= http.StatusInternalServerError:
			lastErr = apperrors.Wrap(apperrors.ErrTransient, "remote returned "+strconv.Itoa(status))

			c.logger.Warn("remote request attempt failed",
				slog.String("method", method),
				slog.String("path", path),
				slog.Int("attempt", attempt+1),
				slog.Int("status", status),
			)

		default:
			return nil, status, apperrors.Wrap(
				apperrors.ErrInvalidInput,
				"remote rejected request with status "+strconv.Itoa(status),
			)
		}
	}

	return nil, 0, lastErr
}

// send issues a single HTTP request with the given token attached.
func (c *Client) send(
	ctx context.Context,
	method, path string,
	headers map[string]string,
	body interface{},
	token *Token,
) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, 0, apperrors.Wrap(err, "failed to encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to build request")
	}

	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrTransient, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrTransient, err.Error())
	}

	return respBody, resp.StatusCode, nil
}
