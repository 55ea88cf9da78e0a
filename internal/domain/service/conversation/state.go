package conversation

import (
	"fmt"

	"bfmr_bot/internal/domain"
	"bfmr_bot/internal/domain/value"
	"bfmr_bot/pkg/errcodes"
)

type Event string

const (
	EventSetup          Event = "setup"
	EventKeyReceived    Event = "key_received"
	EventSecretReceived Event = "secret_received"
	EventVerified       Event = "verified"
	EventRejected       Event = "rejected"
	EventCancel         Event = "cancel"

	EventItemSelected     Event = "item_selected"
	EventQuantityAccepted Event = "quantity_accepted"
	EventQuantityRejected Event = "quantity_rejected"
)

type TransitionTable[S ~string] map[S]map[Event]S

// SetupTransitions: idle -> awaiting_key -> awaiting_secret -> validating -> done.
// /setup перезапускает диалог из любого ожидающего состояния.
//
//nolint:gochecknoglobals
var SetupTransitions = TransitionTable[value.SetupState]{
	value.SetupIdle: {
		EventSetup: value.SetupAwaitingKey,
	},
	value.SetupAwaitingKey: {
		EventSetup:       value.SetupAwaitingKey,
		EventKeyReceived: value.SetupAwaitingSecret,
		EventCancel:      value.SetupDone,
	},
	value.SetupAwaitingSecret: {
		EventSetup:          value.SetupAwaitingKey,
		EventSecretReceived: value.SetupValidating,
		EventCancel:         value.SetupDone,
	},
	value.SetupValidating: {
		EventVerified: value.SetupDone,
		EventRejected: value.SetupDone,
	},
	value.SetupDone: {
		EventSetup: value.SetupAwaitingKey,
	},
}

// BrowseTransitions: неверное количество оставляет позицию выбранной.
//
//nolint:gochecknoglobals
var BrowseTransitions = TransitionTable[value.BrowseState]{
	value.BrowseIdle: {
		EventItemSelected: value.BrowseItemSelected,
	},
	value.BrowseItemSelected: {
		EventItemSelected:     value.BrowseItemSelected,
		EventQuantityRejected: value.BrowseItemSelected,
		EventQuantityAccepted: value.BrowseIdle,
		EventCancel:           value.BrowseIdle,
	},
}

// Transition возвращает следующее состояние или InvalidTransition, если
// событие в текущем состоянии не предусмотрено.
func Transition[S ~string](table TransitionTable[S], state S, event Event) (S, error) {
	next, ok := table[state][event]
	if !ok {
		return state, domain.NewError(
			errcodes.InvalidTransition,
			fmt.Sprintf("event %s is not allowed in state %s", event, state),
		)
	}

	return next, nil
}
