package handler

import (
	"context"
	"sync"
	"time"

	"wordcards/internal/domain"
	"wordcards/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const opTimeout = 30 * time.Second

// Handler manages all bot interactions
type Handler struct {
	bot        *tele.Bot
	store      *service.WordStore
	importer   *service.ImportService
	stats      *service.StatsService
	categories []domain.Category
	logger     *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	store *service.WordStore,
	importer *service.ImportService,
	stats *service.StatsService,
	categories []domain.Category,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:        bot,
		store:      store,
		importer:   importer,
		stats:      stats,
		categories: categories,
		logger:     logger,
		states:     make(map[int64]*domain.StateData),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/import", h.handleImportCommand)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnLearn, h.handleLearn)
	h.bot.Handle(&btnNext, h.handleNext)
	h.bot.Handle(&btnMasteredList, h.handleMasteredList)
	h.bot.Handle(&btnImportDemo, h.handleImportDemo)
	h.bot.Handle(&btnImportURL, h.handleImportURLPrompt)
	h.bot.Handle(&btnCancel, h.handleCancel)
	h.bot.Handle(&btnMainMenu, h.handleStart)

	// Buttons carrying a payload
	h.bot.Handle(&btnCategory, h.handleCategory)
	h.bot.Handle(&btnReveal, h.handleReveal)
	h.bot.Handle(&btnMarkMastered, h.handleMarkMastered)

	// Generic callback handler for anything the routes above missed
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	copied := *state
	return &copied
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

// Inline keyboard buttons
var (
	btnLearn = tele.Btn{
		Unique: "learn",
		Text:   "🃏 Learn",
	}
	btnNext = tele.Btn{
		Unique: "next",
		Text:   "➡️ Next",
	}
	btnMasteredList = tele.Btn{
		Unique: "mastered_list",
		Text:   "✅ Mastered",
	}
	btnImportDemo = tele.Btn{
		Unique: "import_demo",
		Text:   "📝 Import demo words",
	}
	btnImportURL = tele.Btn{
		Unique: "import_url",
		Text:   "🌐 Import from URL",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Cancel",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Main menu",
	}

	// Payload buttons: built per message with markup.Data(text, Unique, payload)
	btnCategory     = tele.Btn{Unique: "category"}
	btnReveal       = tele.Btn{Unique: "reveal"}
	btnMarkMastered = tele.Btn{Unique: "mark_mastered"}
)
