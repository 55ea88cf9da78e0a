package conversation

import "context"

// Button — inline-кнопка: либо CallbackData, либо URL.
type Button struct {
	Text         string
	CallbackData string
	URL          string
}

// Message — ответ бота без привязки к транспорту. Text в разметке HTML.
type Message struct {
	Text       string
	Buttons    [][]Button
	ForceReply bool
}

type MessageRef struct {
	ChatID    int64
	MessageID int
}

// Responder доставляет сообщения пользователю.
type Responder interface {
	Send(ctx context.Context, chatID int64, msg Message) (MessageRef, error)
	Edit(ctx context.Context, ref MessageRef, msg Message) error
	Delete(ctx context.Context, ref MessageRef) error
}

// Input — кто и откуда прислал событие. Для нажатий кнопок MessageID
// указывает на сообщение с кнопкой.
type Input struct {
	UserID    int64
	ChatID    int64
	MessageID int
}

func (in Input) Ref() MessageRef {
	return MessageRef{ChatID: in.ChatID, MessageID: in.MessageID}
}

func textMessage(text string) Message {
	return Message{Text: text}
}
