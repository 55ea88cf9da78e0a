package bfmr

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"

	"bfmr_bot/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// flexString принимает строку, число, bool, null или массив скаляров
// (склеивается через запятую). API отдаёт id и цены то строками, то числами.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*f = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("json.Unmarshal: %w", err)
		}

		*f = flexString(s)
	case data[0] == '[':
		var list []flexString
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("json.Unmarshal: %w", err)
		}

		parts := make([]string, 0, len(list))
		for _, v := range list {
			parts = append(parts, v.String())
		}

		*f = flexString(strings.Join(parts, ", "))
	default:
		*f = flexString(data)
	}

	return nil
}

func (f flexString) String() string {
	return strings.TrimSpace(string(f))
}

// Bool понимает true/1/"yes" в любом регистре.
func (f flexString) Bool() bool {
	v, err := strconv.ParseBool(f.String())
	if err == nil {
		return v
	}

	return strings.EqualFold(f.String(), "yes")
}

// Decimal: пустое значение — ноль; "$1,299.99" тоже разбирается.
func (f flexString) Decimal() (decimal.Decimal, error) {
	s := strings.NewReplacer("$", "", ",", "").Replace(f.String())
	if s == "" {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("decimal.NewFromString(%q): %w", s, err)
	}

	return d, nil
}

type dealsResponse struct {
	Deals jsoniter.RawMessage `json:"deals"`
}

type dealDTO struct {
	DealID      flexString `json:"deal_id"`
	Title       flexString `json:"title"`
	Description flexString `json:"description"`
	RetailPrice flexString `json:"retail_price"`
	PayoutPrice flexString `json:"payout_price"`
	Items       []itemDTO  `json:"items"`
	Retailers   flexString `json:"retailers"`
	RetailType  flexString `json:"retail_type"`
	DealCode    flexString `json:"deal_code"`
	ClosingAt   flexString `json:"closing_at"`
	IsExclusive flexString `json:"is_exclusive_deal"`
}

type itemDTO struct {
	ID            flexString        `json:"id"`
	Name          flexString        `json:"name"`
	Color         flexString        `json:"color"`
	RetailerLinks []retailerLinkDTO `json:"retailer_links"`
}

type retailerLinkDTO struct {
	Retailer flexString `json:"retailer"`
	URL      flexString `json:"url"`
}

type messageResponse struct {
	Message flexString `json:"message"`
}

// decodeDeals разбирает поле deals, которое бывает массивом или одиночным
// объектом.
func decodeDeals(body []byte) ([]dealDTO, error) {
	var resp dealsResponse

	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	raw := bytes.TrimSpace(resp.Deals)

	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		return nil, nil
	case raw[0] == '{':
		var single dealDTO
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil, fmt.Errorf("json.Unmarshal(deal): %w", err)
		}

		return []dealDTO{single}, nil
	default:
		var list []dealDTO
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("json.Unmarshal(deals): %w", err)
		}

		return list, nil
	}
}

func (d dealDTO) toDomain() (entity.Deal, error) {
	retail, err := d.RetailPrice.Decimal()
	if err != nil {
		return entity.Deal{}, fmt.Errorf("retail_price: %w", err)
	}

	payout, err := d.PayoutPrice.Decimal()
	if err != nil {
		return entity.Deal{}, fmt.Errorf("payout_price: %w", err)
	}

	items := make([]entity.Item, 0, len(d.Items))
	for _, item := range d.Items {
		items = append(items, item.toDomain())
	}

	return entity.Deal{
		DealID:          d.DealID.String(),
		Title:           d.Title.String(),
		Description:     d.Description.String(),
		RetailPrice:     retail,
		PayoutPrice:     payout,
		PriceDifference: payout.Sub(retail),
		ProductURL:      productURL(items),
		Items:           items,
		Retailers:       d.Retailers.String(),
		RetailType:      d.RetailType.String(),
		DealCode:        d.DealCode.String(),
		ClosingAt:       d.ClosingAt.String(),
		IsExclusive:     d.IsExclusive.Bool(),
	}, nil
}

func (i itemDTO) toDomain() entity.Item {
	links := make([]entity.RetailerLink, 0, len(i.RetailerLinks))
	for _, link := range i.RetailerLinks {
		links = append(links, entity.RetailerLink{
			Retailer: link.Retailer.String(),
			URL:      link.URL.String(),
		})
	}

	return entity.Item{
		ID:            i.ID.String(),
		Name:          i.Name.String(),
		Color:         i.Color.String(),
		RetailerLinks: links,
	}
}

// productURL — ссылка первой позиции у первого ритейлера, иначе пусто.
func productURL(items []entity.Item) string {
	if len(items) == 0 || len(items[0].RetailerLinks) == 0 {
		return ""
	}

	return items[0].RetailerLinks[0].URL
}

// serverMessage достаёт message из JSON-ответа; если тело не JSON,
// возвращает его как есть.
func serverMessage(body []byte) string {
	var resp messageResponse

	if err := json.Unmarshal(body, &resp); err != nil {
		return strings.TrimSpace(string(body))
	}

	return resp.Message.String()
}
