package entity

import "bfmr_bot/internal/domain/value"

// PendingCommitment существует, пока пользователь выбрал позицию и ещё не
// ввёл количество.
type PendingCommitment struct {
	DealID string `json:"deal_id"`
	ItemID string `json:"item_id"`
}

// BrowseState — закешированный список для постраничного просмотра /deals.
type BrowseState struct {
	Deals []Deal `json:"deals"`
	Index int    `json:"index"`
}

// SetupDraft — незавершённый диалог /setup. Ключ хранится только до ввода
// секрета.
type SetupDraft struct {
	State  value.SetupState `json:"state"`
	APIKey string           `json:"api_key,omitempty"`
}

func (b BrowseState) Empty() bool {
	return len(b.Deals) == 0
}

// Current возвращает текущую сделку; ok=false для пустого списка.
func (b BrowseState) Current() (Deal, bool) {
	if b.Empty() {
		return Deal{}, false
	}

	return b.Deals[b.normalized(b.Index)], true
}

// Move сдвигает индекс на step с переходом через края списка.
func (b BrowseState) Move(step int) BrowseState {
	if b.Empty() {
		return b
	}

	b.Index = b.normalized(b.Index + step)

	return b
}

func (b BrowseState) normalized(index int) int {
	n := len(b.Deals)

	return ((index % n) + n) % n
}
