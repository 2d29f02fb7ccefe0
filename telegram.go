package main

import (
	"log"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

// chatLocks serializes event processing per chat. Updates of different chats
// run in parallel; two events of the same chat never race to persist stale
// visitor state.
type chatLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newChatLocks() *chatLocks {
	return &chatLocks{locks: make(map[int64]*sync.Mutex)}
}

func (c *chatLocks) acquire(chatID int64) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.locks[chatID]
	if !ok {
		m = &sync.Mutex{}
		c.locks[chatID] = m
	}
	return m
}

// dispatchUpdate handles one Telegram update to completion. A panic in a
// handler is recovered so one event's failure never affects the loop.
func dispatchUpdate(bot *tgbotapi.BotAPI, d *Dispatcher, locks *chatLocks, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("recovered from handler panic: %v", r)
		}
	}()

	if update.CallbackQuery != nil {
		cq := update.CallbackQuery
		if cq.Message == nil {
			return
		}
		chatID := cq.Message.Chat.ID

		lock := locks.acquire(chatID)
		lock.Lock()
		defer lock.Unlock()

		replies := d.HandleCallback(CallbackEvent{
			ChatID:    chatID,
			MessageID: cq.Message.MessageID,
			Data:      cq.Data,
		})
		if _, err := bot.AnswerCallbackQuery(tgbotapi.NewCallback(cq.ID, "")); err != nil {
			log.Printf("answer callback query: %v", err)
		}
		sendReplies(bot, replies)
		return
	}

	if update.Message != nil && update.Message.Text != "" {
		msg := update.Message

		lock := locks.acquire(msg.Chat.ID)
		lock.Lock()
		defer lock.Unlock()

		replies := d.HandleText(TextEvent{
			ChatID:   msg.Chat.ID,
			Username: msg.From.UserName,
			Text:     msg.Text,
		})
		sendReplies(bot, replies)
	}
}

// sendReplies converts abstract reply values into Telegram API calls.
func sendReplies(bot *tgbotapi.BotAPI, replies []Reply) {
	for _, r := range replies {
		if err := sendReply(bot, r); err != nil {
			log.Printf("send reply to chat %d: %v", r.ChatID, err)
		}
	}
}

func sendReply(bot *tgbotapi.BotAPI, r Reply) error {
	switch {
	case r.Document != nil:
		doc := tgbotapi.NewDocumentUpload(r.ChatID, tgbotapi.FileBytes{
			Name:  r.Document.Name,
			Bytes: r.Document.Data,
		})
		_, err := bot.Send(doc)
		return err

	case r.EditMessageID > 0:
		edit := tgbotapi.NewEditMessageText(r.ChatID, r.EditMessageID, r.Text)
		if len(r.Keyboard) > 0 {
			markup := toInlineKeyboard(r.Keyboard)
			edit.ReplyMarkup = &markup
		}
		_, err := bot.Send(edit)
		return err

	default:
		msg := tgbotapi.NewMessage(r.ChatID, r.Text)
		if len(r.Keyboard) > 0 {
			msg.ReplyMarkup = toInlineKeyboard(r.Keyboard)
		}
		_, err := bot.Send(msg)
		return err
	}
}

func toInlineKeyboard(kb Keyboard) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, row := range kb {
		var buttons []tgbotapi.InlineKeyboardButton
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Payload))
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
