package handler

import (
	"errors"
	"strings"

	"wordcards/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleImportCommand handles "/import demo" and "/import <url>"
func (h *Handler) handleImportCommand(c tele.Context) error {
	payload := strings.TrimSpace(c.Message().Payload)

	switch payload {
	case "":
		return h.handleImportURLPrompt(c)
	case "demo":
		return h.handleImportDemo(c)
	default:
		return h.importFromURL(c, payload)
	}
}

// handleImportDemo imports the built-in demo bundle
func (h *Handler) handleImportDemo(c tele.Context) error {
	ctx, cancel := opContext()
	defer cancel()

	result, err := h.importer.ImportDemo(ctx)
	if err != nil {
		h.logger.Error("Demo import failed", zap.Error(err))
		return h.render(c, importErrorText(err), backMarkup())
	}

	return h.render(c, "✅ Import complete\n\n"+result.Message(), backMarkup())
}

// handleImportURLPrompt asks the user for a bundle URL
func (h *Handler) handleImportURLPrompt(c tele.Context) error {
	h.SetState(c.Sender().ID, &domain.StateData{State: domain.StateWaitingURL})

	cancelMarkup := &tele.ReplyMarkup{}
	cancelMarkup.Inline(cancelMarkup.Row(btnCancel))

	return h.render(c, "🌐 Send the URL of a JSON word bundle", cancelMarkup)
}

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	state := h.GetState(userID)

	switch state.State {
	case domain.StateWaitingURL:
		return h.importFromURL(c, text)
	default:
		return c.Send("Use /start to open the menu.")
	}
}

func (h *Handler) importFromURL(c tele.Context, url string) error {
	userID := c.Sender().ID

	ctx, cancel := opContext()
	defer cancel()

	result, err := h.importer.ImportFromURL(ctx, url)
	if err != nil {
		h.logger.Warn("URL import failed",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("url", url),
		)
		// Stay in waiting state so the user can send another URL
		cancelMarkup := &tele.ReplyMarkup{}
		cancelMarkup.Inline(cancelMarkup.Row(btnCancel))
		return c.Send(importErrorText(err), cancelMarkup)
	}

	h.logger.Info("URL import completed",
		zap.Int64("user_id", userID),
		zap.Int("added", result.Added),
		zap.Int("total", result.Total),
	)

	h.ResetState(userID)
	return c.Send("✅ Import complete\n\n"+result.Message(), backMarkup())
}

// importErrorText maps import failures to user-facing messages
func importErrorText(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyURL):
		return "Please enter an API URL."
	case errors.Is(err, domain.ErrFetch):
		return "❌ Failed to fetch data from the API: " + err.Error()
	case errors.Is(err, domain.ErrDecodeBundle):
		return "❌ The response is not valid JSON."
	case errors.Is(err, domain.ErrInvalidBundle):
		return "❌ Invalid data format: categories or words field is missing."
	default:
		return "❌ Import failed. Please try again later."
	}
}

func backMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnMainMenu))
	return markup
}
