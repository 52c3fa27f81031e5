package handler

import (
	"strings"
	"unicode"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// parseCallbackData splits raw "\funique|payload" callback data into its parts.
// Data without a separator is treated as a bare unique.
func parseCallbackData(data string) (unique, payload string) {
	data = cleanCallbackData(data)
	unique, payload, _ = strings.Cut(data, "|")
	return unique, payload
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	// Pressing the same button twice yields an identical message
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message not modified, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		_ = c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// handleCallback routes callbacks that reached the generic OnCallback handler,
// e.g. when a client delivers the unique inside the data field
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	unique, payload := callback.Unique, cleanCallbackData(callback.Data)
	if unique == "" {
		unique, payload = parseCallbackData(callback.Data)
	}

	h.logger.Debug("Routing callback",
		zap.String("unique", unique),
		zap.String("payload", payload),
		zap.Int64("user_id", c.Sender().ID),
	)

	switch unique {
	case btnLearn.Unique:
		return h.handleLearn(c)
	case btnNext.Unique:
		return h.handleNext(c)
	case btnMasteredList.Unique:
		return h.handleMasteredList(c)
	case btnImportDemo.Unique:
		return h.handleImportDemo(c)
	case btnImportURL.Unique:
		return h.handleImportURLPrompt(c)
	case btnCancel.Unique:
		return h.handleCancel(c)
	case btnMainMenu.Unique:
		return h.handleStart(c)
	case btnCategory.Unique, btnReveal.Unique, btnMarkMastered.Unique:
		return h.withPayload(c, unique, payload)
	}

	h.logger.Warn("Unhandled callback",
		zap.String("unique", unique),
		zap.String("payload", payload),
	)
	return c.Respond()
}

// withPayload dispatches a payload button whose data arrived unsplit
func (h *Handler) withPayload(c tele.Context, unique, payload string) error {
	pc := payloadContext{Context: c, payload: payload}
	switch unique {
	case btnCategory.Unique:
		return h.handleCategory(pc)
	case btnReveal.Unique:
		return h.handleReveal(pc)
	default:
		return h.handleMarkMastered(pc)
	}
}

// payloadContext overrides Data with the parsed payload
type payloadContext struct {
	tele.Context
	payload string
}

func (p payloadContext) Data() string {
	return p.payload
}
