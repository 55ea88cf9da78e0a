package value

// SetupState — шаг диалога настройки ключей.
type SetupState string

const (
	SetupIdle           SetupState = "idle"
	SetupAwaitingKey    SetupState = "awaiting_key"
	SetupAwaitingSecret SetupState = "awaiting_secret"
	SetupValidating     SetupState = "validating"
	SetupDone           SetupState = "done"
)

func (s SetupState) String() string {
	return string(s)
}

// Active: диалог ждёт ввода от пользователя.
func (s SetupState) Active() bool {
	return s == SetupAwaitingKey || s == SetupAwaitingSecret
}

// BrowseState — шаг диалога выбора позиции и количества.
type BrowseState string

const (
	BrowseIdle         BrowseState = "idle"
	BrowseItemSelected BrowseState = "item_selected"
)

func (s BrowseState) String() string {
	return string(s)
}
