package commands

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"bfmr_bot/internal/domain/entity"
	"bfmr_bot/internal/domain/service/deals"
)

type dealsFlags struct {
	pageSize   int
	profitable bool
	search     string
	exclusive  bool
}

func newDealsCmd(global *globalFlags) *cobra.Command {
	flags := &dealsFlags{}

	cmd := &cobra.Command{
		Use:   "deals",
		Short: "Lists active deals sorted by profit.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			creds, err := global.credentials()
			if err != nil {
				return err
			}

			svc := deals.NewService(global.client(cmd)).
				WithPageSize(flags.pageSize).
				WithExclusiveOnly(flags.exclusive)

			list, err := fetch(cmd, svc, creds, flags)
			if err != nil {
				return err
			}

			renderDeals(cmd.OutOrStdout(), list)

			return nil
		},
	}

	cmd.Flags().IntVar(&flags.pageSize, "page-size", 0, "deals per request (default: API client default)")
	cmd.Flags().BoolVar(&flags.profitable, "profitable", false, "only deals paying above retail")
	cmd.Flags().StringVar(&flags.search, "search", "", "case-insensitive search over title, description and items")
	cmd.Flags().BoolVar(&flags.exclusive, "exclusive", false, "only exclusive deals")

	return cmd
}

func fetch(cmd *cobra.Command, svc *deals.Service, creds entity.Credentials, flags *dealsFlags) ([]entity.Deal, error) {
	var (
		list []entity.Deal
		err  error
	)

	if flags.search != "" {
		list, err = svc.Search(cmd.Context(), creds, flags.search)
	} else {
		list, err = svc.All(cmd.Context(), creds)
	}

	if err != nil {
		return nil, fmt.Errorf("fetch deals: %w", err)
	}

	if flags.profitable {
		return deals.Profitable(list), nil
	}

	deals.SortByProfit(list)

	return list, nil
}

func renderDeals(w io.Writer, list []entity.Deal) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No deals found.")
		return
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)

	t.AppendHeader(table.Row{"#", "Deal ID", "Title", "Retail", "Payout", "Profit", "Profit %", "Excl.", "Closing"})

	for i, deal := range list {
		exclusive := ""
		if deal.IsExclusive {
			exclusive = "⭐"
		}

		t.AppendRow(table.Row{
			i + 1,
			deal.DealID,
			deal.Title,
			deal.RetailPrice.StringFixed(2),
			deal.PayoutPrice.StringFixed(2),
			deal.PriceDifference.StringFixed(2),
			deal.ProfitPercent().StringFixed(1) + "%",
			exclusive,
			deal.ClosingAt,
		})
	}

	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d deals", len(list))})
	t.Render()
}
