package conversation

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"bfmr_bot/internal/domain/entity"
	"bfmr_bot/internal/domain/value"
	"bfmr_bot/pkg/logx"
)

const (
	DefaultPromoURL = "https://buyinggrouppro.com"

	// Лимит Telegram на callback_data.
	maxCallbackDataLen = 64

	notAvailable = "N/A"
)

type RenderOptions struct {
	// Navigation добавляет ряд кнопок prev/next (только для /deals).
	Navigation bool
	// Position и Total выводят "n/m" в карточке, если Total > 0.
	Position int
	Total    int
	PromoURL string
}

// RenderDeal собирает карточку сделки: описание, кнопка на каждую позицию,
// навигация и ссылка на сайт последней строкой.
func RenderDeal(ctx context.Context, deal entity.Deal, opts RenderOptions) Message {
	promoURL := promoOrDefault(opts.PromoURL)

	var sb strings.Builder

	fmt.Fprintf(&sb, "🏷️ <b>%s</b>\n", html.EscapeString(deal.Title))

	if deal.IsExclusive {
		sb.WriteString("⭐ <b>EXCLUSIVE</b>\n")
	}

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "💰 Retail: %s\n", money(deal.RetailPrice))
	fmt.Fprintf(&sb, "💵 Payout: %s\n", money(deal.PayoutPrice))
	fmt.Fprintf(&sb, "📈 Profit: %s (%s%%)\n", money(deal.PriceDifference), deal.ProfitPercent().StringFixed(2))
	fmt.Fprintf(&sb, "🏪 Retailer: %s\n", orNA(deal.Retailers))
	fmt.Fprintf(&sb, "📦 Type: %s\n", orNA(deal.RetailType))
	fmt.Fprintf(&sb, "⏰ Closing: %s\n", orNA(deal.ClosingAt))

	if deal.ProductURL != "" {
		fmt.Fprintf(&sb, "🔗 <a href=\"%s\">Product link</a>\n", html.EscapeString(deal.ProductURL))
	}

	if opts.Total > 0 {
		fmt.Fprintf(&sb, "📄 %d/%d\n", opts.Position, opts.Total)
	}

	fmt.Fprintf(&sb, "\n🤖 <b>Powered by <a href=\"%s\">BuyingGroupPro.com</a></b>", html.EscapeString(promoURL))

	buttons := make([][]Button, 0, len(deal.Items)+2) //nolint:mnd

	for _, item := range deal.Items {
		data := value.SelectCallback(deal.DealID, item.ID)
		// Такую кнопку Telegram отклонит вместе со всем сообщением.
		if len(data) > maxCallbackDataLen {
			logger(ctx).Warn("item skipped: callback data too long",
				slog.String(logx.FieldDealID, deal.DealID),
				slog.String(logx.FieldItemID, item.ID),
				slog.Int("length", len(data)),
			)

			continue
		}

		buttons = append(buttons, []Button{{Text: commitLabel(item), CallbackData: data}})
	}

	if opts.Navigation {
		buttons = append(buttons, []Button{
			{Text: "⬅️ Previous", CallbackData: value.CallbackPrevDeal},
			{Text: "Next ➡️", CallbackData: value.CallbackNextDeal},
		})
	}

	buttons = append(buttons, []Button{promoButton(promoURL)})

	return Message{Text: sb.String(), Buttons: buttons}
}

// StartScreen: без ключей предлагает /setup, с ключами показывает быстрые
// действия.
func StartScreen(configured bool, promoURL string) Message {
	promoURL = promoOrDefault(promoURL)

	if !configured {
		return Message{
			Text: "👋 Welcome to the BFMR Deal Bot by BuyingGroupPro!\n\n" +
				"Before we begin, you'll need to set up your BFMR API credentials.\n" +
				"Use /setup to configure your API key and secret.\n\n" +
				promoLine(promoURL, "for more tools and resources!"),
			Buttons: [][]Button{{promoButton(promoURL)}},
		}
	}

	return Message{
		Text: "👋 Welcome to the BFMR Deal Bot by BuyingGroupPro!\n\n" +
			"🌟 <b>Features</b>:\n" +
			"• View all active BFMR deals at once (/viewall)\n" +
			"• Browse deals one at a time (/deals)\n" +
			"• Filter at or above retail priced deals (/profitable)\n" +
			"• Easy deal commitment\n\n" +
			promoLine(promoURL, "for more tools and resources!"),
		Buttons: [][]Button{
			{{Text: "📦 View All Deals", CallbackData: value.CallbackViewAll}},
			{{Text: "💰 Profitable Deals Only", CallbackData: value.CallbackViewProfitable}},
			{promoButton(promoURL)},
		},
	}
}

func HelpScreen(promoURL string) Message {
	promoURL = promoOrDefault(promoURL)

	return Message{
		Text: "🤖 <b>BFMR Deal Bot by BuyingGroupPro.com</b>\n\n" +
			"<b>Available Commands:</b>\n" +
			"/start - Start the bot\n" +
			"/setup - Configure your API credentials\n" +
			"/viewall - View all deals at once\n" +
			"/deals - Browse deals one at a time\n" +
			"/profitable - View profitable deals only\n" +
			"/search [term] - Search for specific deals\n" +
			"/cancel - Cancel setup or a pending commitment\n" +
			"/help - Show this help message\n\n" +
			"💡 <b>Pro Tips:</b>\n" +
			"• Use /viewall to see all available deals\n" +
			"• Try /search Macbook to find all Macbook deals\n\n" +
			promoLine(promoURL, "for more reselling tools!"),
		Buttons: [][]Button{{promoButton(promoURL)}},
	}
}

func commitLabel(item entity.Item) string {
	name := strings.TrimSpace(item.ShortName())
	if name == "" {
		name = item.ID
	}

	if item.Color == "" {
		return "Commit: " + name
	}

	return "Commit: " + name + " - " + item.Color
}

func promoButton(promoURL string) Button {
	return Button{Text: "🌐 Visit BuyingGroupPro.com", URL: promoURL}
}

func promoLine(promoURL, suffix string) string {
	return fmt.Sprintf("🔗 Visit <a href=\"%s\">BuyingGroupPro.com</a> %s", html.EscapeString(promoURL), suffix)
}

func promoOrDefault(promoURL string) string {
	if promoURL == "" {
		return DefaultPromoURL
	}

	return promoURL
}

// money: "$12.50", для отрицательных "-$2.00".
func money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}

	return "$" + d.StringFixed(2)
}

func orNA(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return notAvailable
	}

	return html.EscapeString(s)
}
