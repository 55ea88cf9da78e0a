package tests

// Deal собирает сделку в формате BFMR API. Цены передаются строками, как их
// отдаёт API.
func Deal(dealID, title, retail, payout string, items ...map[string]any) map[string]any {
	if items == nil {
		items = []map[string]any{}
	}

	return map[string]any{
		"deal_id":           dealID,
		"title":             title,
		"description":       "",
		"retail_price":      retail,
		"payout_price":      payout,
		"items":             items,
		"retailers":         "Amazon",
		"retail_type":       "Online",
		"deal_code":         "BG-" + dealID,
		"closing_at":        "2030-01-01 00:00:00",
		"is_exclusive_deal": false,
	}
}

func Item(id, name, color string, urls ...string) map[string]any {
	links := make([]map[string]any, 0, len(urls))
	for _, u := range urls {
		links = append(links, map[string]any{"retailer": "Amazon", "url": u})
	}

	return map[string]any{
		"id":             id,
		"name":           name,
		"color":          color,
		"retailer_links": links,
	}
}
