package deals

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"git.appkode.ru/pub/go/failure"

	"bfmr_bot/internal/domain/entity"
	"bfmr_bot/pkg/errcodes"
)

type Client interface {
	Deals(ctx context.Context, creds entity.Credentials, query entity.DealsQuery) ([]entity.Deal, error)
}

// Service — выборки сделок для бота, CLI и наблюдателя.
type Service struct {
	client        Client
	pageSize      int
	exclusiveOnly bool
}

func NewService(client Client) *Service {
	return &Service{client: client}
}

// WithPageSize задаёт размер страницы; 0 оставляет значение клиента.
func (s *Service) WithPageSize(pageSize int) *Service {
	s.pageSize = pageSize
	return s
}

func (s *Service) WithExclusiveOnly(exclusiveOnly bool) *Service {
	s.exclusiveOnly = exclusiveOnly
	return s
}

// All возвращает сделки в порядке API.
func (s *Service) All(ctx context.Context, creds entity.Credentials) ([]entity.Deal, error) {
	deals, err := s.client.Deals(ctx, creds, entity.DealsQuery{
		PageSize:      s.pageSize,
		PageNo:        1,
		ExclusiveOnly: s.exclusiveOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("client.Deals: %w", err)
	}

	return deals, nil
}

func (s *Service) Profitable(ctx context.Context, creds entity.Credentials) ([]entity.Deal, error) {
	deals, err := s.All(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("s.All: %w", err)
	}

	profitable := Profitable(deals)

	logger(ctx).Debug("profitable deals filtered",
		slog.Int("total", len(deals)),
		slog.Int("profitable", len(profitable)),
	)

	return profitable, nil
}

// Search требует непустой запрос.
func (s *Service) Search(ctx context.Context, creds entity.Credentials, term string) ([]entity.Deal, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, failure.NewInvalidArgumentError(
			"search term is empty",
			failure.WithCode(errcodes.MissingSearchTerm),
		)
	}

	deals, err := s.All(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("s.All: %w", err)
	}

	return Search(deals, term), nil
}

// Profitable оставляет сделки с выплатой выше розницы и сортирует их по
// убыванию разницы. Сортировка стабильная: равные сохраняют порядок API.
func Profitable(deals []entity.Deal) []entity.Deal {
	result := make([]entity.Deal, 0, len(deals))

	for _, deal := range deals {
		if deal.IsProfitable() {
			result = append(result, deal)
		}
	}

	SortByProfit(result)

	return result
}

// SortByProfit сортирует на месте по убыванию PriceDifference.
func SortByProfit(deals []entity.Deal) {
	slices.SortStableFunc(deals, func(a, b entity.Deal) int {
		return b.PriceDifference.Cmp(a.PriceDifference)
	})
}

func Search(deals []entity.Deal, term string) []entity.Deal {
	result := make([]entity.Deal, 0)

	for _, deal := range deals {
		if deal.Matches(term) {
			result = append(result, deal)
		}
	}

	return result
}
