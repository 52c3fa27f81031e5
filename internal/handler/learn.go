package handler

import (
	"wordcards/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleLearn starts walking the unmastered words from the first card
func (h *Handler) handleLearn(c tele.Context) error {
	userID := c.Sender().ID
	h.SetState(userID, &domain.StateData{State: domain.StateLearning})
	return h.showCard(c, userID)
}

// handleNext moves to the following unmastered card, wrapping at the end
func (h *Handler) handleNext(c tele.Context) error {
	userID := c.Sender().ID
	state := h.GetState(userID)
	h.SetState(userID, &domain.StateData{
		State:  domain.StateLearning,
		Cursor: state.Cursor + 1,
	})
	return h.showCard(c, userID)
}

// handleReveal flips the card and counts a review
func (h *Handler) handleReveal(c tele.Context) error {
	userID := c.Sender().ID
	wordID := cleanCallbackData(c.Data())

	ctx, cancel := opContext()
	defer cancel()

	if err := h.store.IncrementReviewCount(ctx, wordID); err != nil {
		h.logger.Error("Failed to increment review count",
			zap.Error(err),
			zap.String("word_id", wordID),
		)
		return c.Respond(&tele.CallbackResponse{Text: "Could not save progress"})
	}

	word, ok := h.store.Word(wordID)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Word not found"})
	}

	words := h.store.UnmasteredWords()
	position, total := positionOf(words, wordID)

	state := h.GetState(userID)
	h.SetState(userID, &domain.StateData{
		State:    domain.StateLearning,
		Cursor:   state.Cursor,
		Revealed: true,
	})

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data("✅ I know it", btnMarkMastered.Unique, word.ID)),
		markup.Row(btnNext, btnMainMenu),
	)

	return h.render(c, cardBackText(word, position, total), markup)
}

// handleMarkMastered marks the word as learned and shows the next card
func (h *Handler) handleMarkMastered(c tele.Context) error {
	userID := c.Sender().ID
	wordID := cleanCallbackData(c.Data())

	ctx, cancel := opContext()
	defer cancel()

	if err := h.store.MarkMastered(ctx, wordID); err != nil {
		h.logger.Error("Failed to mark word mastered",
			zap.Error(err),
			zap.String("word_id", wordID),
		)
		return c.Respond(&tele.CallbackResponse{Text: "Could not save progress"})
	}

	h.logger.Info("Word mastered",
		zap.Int64("user_id", userID),
		zap.String("word_id", wordID),
	)

	// The mastered word drops out of the list, so the same cursor now points at the next card
	return h.showCard(c, userID)
}

// showCard renders the front of the card under the user's cursor
func (h *Handler) showCard(c tele.Context, userID int64) error {
	words := h.store.UnmasteredWords()
	if len(words) == 0 {
		h.ResetState(userID)
		markup := &tele.ReplyMarkup{}
		markup.Inline(markup.Row(btnMainMenu))
		return h.render(c, "🎉 Every word is mastered!", markup)
	}

	state := h.GetState(userID)
	cursor := state.Cursor % len(words)
	h.SetState(userID, &domain.StateData{State: domain.StateLearning, Cursor: cursor})

	word := words[cursor]

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data("👀 Reveal", btnReveal.Unique, word.ID)),
		markup.Row(btnNext, btnMainMenu),
	)

	return h.render(c, cardFrontText(word, cursor+1, len(words)), markup)
}

// positionOf returns the 1-based position of id in words and the list length
func positionOf(words []domain.Word, id string) (int, int) {
	for i, w := range words {
		if w.ID == id {
			return i + 1, len(words)
		}
	}
	return 0, len(words)
}
