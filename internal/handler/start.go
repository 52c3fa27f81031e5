package handler

import (
	"fmt"

	"wordcards/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command and the main menu button
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User opened main menu",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	h.ResetState(userID)

	stats := h.stats.Summary()
	return h.render(c, mainMenuText(stats), mainMenuMarkup(stats))
}

// handleCancel cancels current operation and resets state
func (h *Handler) handleCancel(c tele.Context) error {
	return h.handleStart(c)
}

// handleCategory lists the words of one category
func (h *Handler) handleCategory(c tele.Context) error {
	categoryID := cleanCallbackData(c.Data())

	category, ok := h.findCategory(categoryID)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown category"})
	}

	words := h.store.WordsByCategory(category.ID)

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnLearn, btnMainMenu))

	return h.render(c, categoryText(category, words), markup)
}

// handleMasteredList shows every mastered word
func (h *Handler) handleMasteredList(c tele.Context) error {
	words := h.store.MasteredWords()
	if len(words) == 0 {
		return c.Respond(&tele.CallbackResponse{
			Text:      "No mastered words yet",
			ShowAlert: true,
		})
	}

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnMainMenu))

	return h.render(c, masteredText(words), markup)
}

func (h *Handler) findCategory(id string) (domain.Category, bool) {
	for _, c := range h.categories {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Category{}, false
}

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup(stats domain.Stats) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	rows := []tele.Row{}
	for _, cc := range stats.Categories {
		label := fmt.Sprintf("%s (%d)", cc.Category.Name, cc.Words)
		rows = append(rows, menu.Row(menu.Data(label, btnCategory.Unique, cc.Category.ID)))
	}
	rows = append(rows,
		menu.Row(btnLearn, btnMasteredList),
		menu.Row(btnImportDemo),
		menu.Row(btnImportURL),
	)

	menu.Inline(rows...)
	return menu
}

// render edits the message behind a callback, or sends a new one for commands
func (h *Handler) render(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if c.Callback() != nil {
		if err := c.Edit(text, markup); err != nil {
			if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
				return nil // Message was already modified, just acknowledged
			}
			return c.Send(text, markup)
		}
		return c.Respond()
	}
	return c.Send(text, markup)
}
