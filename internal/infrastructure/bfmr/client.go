package bfmr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"

	"bfmr_bot/internal/domain"
	"bfmr_bot/internal/domain/entity"
	"bfmr_bot/pkg/errcodes"
	"bfmr_bot/pkg/logx"
)

const (
	DefaultBaseURL  = "https://api.bfmr.com"
	DefaultTimeout  = 20 * time.Second
	DefaultPageSize = 50

	dealsPath   = "/api/v2/deals"
	reservePath = "/api/v2/deals/reserve"

	headerAPIKey    = "API-KEY"
	headerAPISecret = "API-SECRET"

	reservedMessage = "Quantity reserved successfully"
	unknownMessage  = "Unknown error occurred"
)

type dealsObserver interface {
	AddDealsFetched(n int)
	IncReservation(result string)
}

// Client — HTTP-клиент BFMR API. Ключи передаются в каждый вызов: один
// клиент обслуживает всех пользователей бота.
type Client struct {
	http     *resty.Client
	validate *validator.Validate
	observer dealsObserver
	pageSize int
}

func NewClient(baseURL string, timeout time.Duration, transport http.RoundTripper) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	client.SetTimeout(timeout)
	client.SetHeader("Accept", "application/json")

	if transport != nil {
		client.SetTransport(transport)
	}

	return &Client{
		http:     client,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		pageSize: DefaultPageSize,
	}
}

func (c *Client) WithPageSize(pageSize int) *Client {
	if pageSize > 0 {
		c.pageSize = pageSize
	}

	return c
}

func (c *Client) WithObserver(observer dealsObserver) *Client {
	c.observer = observer
	return c
}

// Deals загружает активные сделки. Записи с нечитаемыми ценами пропускаются
// с предупреждением в лог.
func (c *Client) Deals(ctx context.Context, creds entity.Credentials, query entity.DealsQuery) ([]entity.Deal, error) {
	if query.PageSize <= 0 {
		query.PageSize = c.pageSize
	}

	if query.PageNo <= 0 {
		query.PageNo = 1
	}

	resp, err := c.request(ctx, creds).
		SetQueryParams(map[string]string{
			"page_size":            strconv.Itoa(query.PageSize),
			"page_no":              strconv.Itoa(query.PageNo),
			"exclusive_deals_only": boolParam(query.ExclusiveOnly),
		}).
		Get(dealsPath)
	if err != nil {
		return nil, networkError(err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, statusError(resp.StatusCode(), resp.Body())
	}

	dtos, err := decodeDeals(resp.Body())
	if err != nil {
		return nil, domain.WrapError(err, errcodes.InvalidDealsPayload, "unexpected deals payload")
	}

	deals := make([]entity.Deal, 0, len(dtos))

	for _, dto := range dtos {
		deal, err := dto.toDomain()
		if err != nil {
			logger(ctx).Warn("skip malformed deal",
				slog.String(logx.FieldDealID, dto.DealID.String()),
				logx.Error(err),
			)

			continue
		}

		deals = append(deals, deal)
	}

	if c.observer != nil {
		c.observer.AddDealsFetched(len(deals))
	}

	return deals, nil
}

// VerifyCredentials делает пробный запрос на одну сделку.
func (c *Client) VerifyCredentials(ctx context.Context, creds entity.Credentials) error {
	if _, err := c.Deals(ctx, creds, entity.DealsQuery{PageSize: 1, PageNo: 1}); err != nil {
		return fmt.Errorf("c.Deals: %w", err)
	}

	return nil
}

// Reserve резервирует количество позиции. Запрос не идемпотентен и не
// повторяется.
func (c *Client) Reserve(
	ctx context.Context,
	creds entity.Credentials,
	reservation entity.Reservation,
) (entity.ReservationResult, error) {
	if err := c.validate.StructCtx(ctx, reservation); err != nil {
		return entity.ReservationResult{}, failure.NewInvalidArgumentError(
			"invalid reservation",
			failure.WithCode(errcodes.InvalidReservation),
			failure.WithDescription(err.Error()),
		)
	}

	resp, err := c.request(ctx, creds).
		SetFormData(map[string]string{
			"deal_id":  strings.TrimSpace(reservation.DealID),
			"item_id":  strings.TrimSpace(reservation.ItemID),
			"item_qty": strconv.Itoa(reservation.Quantity),
		}).
		Post(reservePath)
	if err != nil {
		c.observeReservation(errcodes.DealsAPIUnavailable.String())
		return entity.ReservationResult{}, networkError(err)
	}

	if resp.StatusCode() == http.StatusOK {
		c.observeReservation("ok")

		logger(ctx).Info("quantity reserved",
			slog.String(logx.FieldDealID, reservation.DealID),
			slog.String(logx.FieldItemID, reservation.ItemID),
			slog.Int(logx.FieldQuantity, reservation.Quantity),
		)

		return entity.ReservationResult{Message: reservedMessage}, nil
	}

	rejectErr := classifyReservation(resp.StatusCode(), serverMessage(resp.Body()))

	code, _ := domain.GetCode(rejectErr)
	c.observeReservation(code.String())

	return entity.ReservationResult{}, rejectErr
}

func (c *Client) request(ctx context.Context, creds entity.Credentials) *resty.Request {
	return c.http.R().
		SetContext(ctx).
		SetHeaders(map[string]string{
			headerAPIKey:    creds.APIKey,
			headerAPISecret: creds.APISecret,
		})
}

func (c *Client) observeReservation(result string) {
	if c.observer != nil {
		c.observer.IncReservation(result)
	}
}

func networkError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.WrapError(err, errcodes.DealsAPIUnavailable, "BFMR API timed out")
	}

	return domain.WrapError(err, errcodes.DealsAPIUnavailable, "BFMR API is unreachable")
}

func boolParam(v bool) string {
	if v {
		return "1"
	}

	return "0"
}
