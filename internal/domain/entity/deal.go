package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100) //nolint:gochecknoglobals

// Deal — нормализованная сделка BFMR. Цены уже распарсены, PriceDifference
// посчитан при нормализации и всегда равен PayoutPrice - RetailPrice.
type Deal struct {
	DealID          string
	Title           string
	Description     string
	RetailPrice     decimal.Decimal
	PayoutPrice     decimal.Decimal
	PriceDifference decimal.Decimal
	ProductURL      string
	Items           []Item
	Retailers       string
	RetailType      string
	DealCode        string
	ClosingAt       string
	IsExclusive     bool
}

type Item struct {
	ID            string
	Name          string
	Color         string
	RetailerLinks []RetailerLink
}

type RetailerLink struct {
	Retailer string
	URL      string
}

// IsProfitable: выплата строго больше розничной цены.
func (d Deal) IsProfitable() bool {
	return d.PayoutPrice.GreaterThan(d.RetailPrice)
}

// ProfitPercent — разница относительно розницы в процентах; ноль, если
// розничная цена не положительна.
func (d Deal) ProfitPercent() decimal.Decimal {
	if !d.RetailPrice.IsPositive() {
		return decimal.Zero
	}

	return d.PriceDifference.Div(d.RetailPrice).Mul(hundred)
}

// Matches — регистронезависимый поиск подстроки в заголовке, описании и
// названиях позиций. Пустой запрос совпадает со всем.
func (d Deal) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}

	if strings.Contains(strings.ToLower(d.Title), term) ||
		strings.Contains(strings.ToLower(d.Description), term) {
		return true
	}

	for _, item := range d.Items {
		if strings.Contains(strings.ToLower(item.Name), term) {
			return true
		}
	}

	return false
}

// ShortName — часть названия до первого " - ", для подписи кнопки.
func (i Item) ShortName() string {
	name, _, _ := strings.Cut(i.Name, " - ")
	return name
}

// DealsQuery — параметры выборки. Нулевые PageSize и PageNo заменяются
// значениями по умолчанию.
type DealsQuery struct {
	PageSize      int
	PageNo        int
	ExclusiveOnly bool
}
