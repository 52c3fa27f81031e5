package handler

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"wordcards/internal/dataset"
	"wordcards/internal/domain"
	"wordcards/internal/service"
	"wordcards/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

const testSlotKey = "@test_words"

// fakeContext records what handlers send back to the chat
type fakeContext struct {
	tele.Context

	sender   *tele.User
	text     string
	payload  string
	data     string
	callback *tele.Callback
	editErr  error

	sent      []string
	edited    []string
	responses []*tele.CallbackResponse
}

func newFakeContext(userID int64) *fakeContext {
	return &fakeContext{sender: &tele.User{ID: userID, Username: "tester"}}
}

func (f *fakeContext) withCallback(unique, data string) *fakeContext {
	f.callback = &tele.Callback{ID: "cb", Unique: unique, Data: data}
	f.data = data
	return f
}

func (f *fakeContext) Sender() *tele.User { return f.sender }
func (f *fakeContext) Text() string { return f.text }
func (f *fakeContext) Data() string { return f.data }
func (f *fakeContext) Callback() *tele.Callback { return f.callback }
func (f *fakeContext) Message() *tele.Message { return &tele.Message{Text: f.text, Payload: f.payload} }

func (f *fakeContext) Send(what interface{}, _ ...interface{}) error {
	f.sent = append(f.sent, fmt.Sprint(what))
	return nil
}

func (f *fakeContext) Edit(what interface{}, _ ...interface{}) error {
	if f.editErr != nil {
		return f.editErr
	}
	f.edited = append(f.edited, fmt.Sprint(what))
	return nil
}

func (f *fakeContext) Respond(resp ...*tele.CallbackResponse) error {
	f.responses = append(f.responses, resp...)
	return nil
}

// lastOutput returns the most recent text shown to the user
func (f *fakeContext) lastOutput() string {
	if len(f.edited) > 0 {
		return f.edited[len(f.edited)-1]
	}
	if len(f.sent) > 0 {
		return f.sent[len(f.sent)-1]
	}
	return ""
}

func newTestHandler(t *testing.T, fetcher service.Fetcher) (*Handler, *service.WordStore, *testutil.MemorySlots) {
	t.Helper()

	logger := testutil.NewTestLogger()
	slots := testutil.NewMemorySlots()
	store := service.NewWordStore(slots, testSlotKey, dataset.SampleWords(), logger)
	store.Load(context.Background())
	require.False(t, store.Loading())

	categories := dataset.Categories()
	importer := service.NewImportService(store, fetcher, dataset.DemoBundle(), logger)
	stats := service.NewStatsService(store, categories, logger)

	return NewHandler(nil, store, importer, stats, categories, logger), store, slots
}

func TestHandleStart(t *testing.T) {
	h, _, _ := newTestHandler(t, nil)
	h.SetState(1, &domain.StateData{State: domain.StateWaitingURL})

	c := newFakeContext(1)
	require.NoError(t, h.handleStart(c))

	require.Len(t, c.sent, 1)
	assert.Contains(t, c.sent[0], "Mastered 0 / 8")
	assert.Equal(t, domain.StateIdle, h.GetState(1).State)
}

func TestHandleStart_EditsOnCallback(t *testing.T) {
	h, _, _ := newTestHandler(t, nil)

	c := newFakeContext(1).withCallback(btnMainMenu.Unique, "")
	require.NoError(t, h.handleStart(c))

	assert.Empty(t, c.sent)
	require.Len(t, c.edited, 1)
	assert.Contains(t, c.edited[0], "Word cards")
}

func TestRender_EditFailures(t *testing.T) {
	h, _, _ := newTestHandler(t, nil)

	t.Run("not modified is acknowledged", func(t *testing.T) {
		c := newFakeContext(1).withCallback(btnMainMenu.Unique, "")
		c.editErr = errors.New("telegram: message is not modified (400)")

		require.NoError(t, h.render(c, "text", nil))
		assert.Empty(t, c.sent)
	})

	t.Run("other errors fall back to send", func(t *testing.T) {
		c := newFakeContext(1).withCallback(btnMainMenu.Unique, "")
		c.editErr = errors.New("telegram: message to edit not found (400)")

		require.NoError(t, h.render(c, "text", nil))
		assert.Equal(t, []string{"text"}, c.sent)
	})
}

func TestHandleCategory(t *testing.T) {
	h, store, _ := newTestHandler(t, nil)
	require.NoError(t, store.MarkMastered(context.Background(), "5"))

	c := newFakeContext(1).withCallback(btnCategory.Unique, "travel")
	require.NoError(t, h.handleCategory(c))

	out := c.lastOutput()
	assert.Contains(t, out, "📂 Travel (2)")
	assert.Contains(t, out, "passport")
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "luggage")
	assert.NotContains(t, out, "breakfast")
}

func TestHandleCategory_Unknown(t *testing.T) {
	h, _, _ := newTestHandler(t, nil)

	c := newFakeContext(1).withCallback(btnCategory.Unique, "space")
	require.NoError(t, h.handleCategory(c))

	assert.Empty(t, c.edited)
	require.Len(t, c.responses, 1)
	assert.Equal(t, "Unknown category", c.responses[0].Text)
}

func TestHandleMasteredList(t *testing.T) {
	h, store, _ := newTestHandler(t, nil)

	c := newFakeContext(1).withCallback(btnMasteredList.Unique, "")
	require.NoError(t, h.handleMasteredList(c))
	require.Len(t, c.responses, 1)
	assert.True(t, c.responses[0].ShowAlert)

	require.NoError(t, store.MarkMastered(context.Background(), "3"))

	c = newFakeContext(1).withCallback(btnMasteredList.Unique, "")
	require.NoError(t, h.handleMasteredList(c))
	assert.Contains(t, c.lastOutput(), "✅ Mastered words (1)")
	assert.Contains(t, c.lastOutput(), "deadline")
}

func TestLearnFlow(t *testing.T) {
	h, store, slots := newTestHandler(t, nil)

	c := newFakeContext(1).withCallback(btnLearn.Unique, "")
	require.NoError(t, h.handleLearn(c))
	assert.Contains(t, c.lastOutput(), "🃏 1 / 8\n\nbreakfast")
	assert.Equal(t, domain.StateLearning, h.GetState(1).State)

	c = newFakeContext(1).withCallback(btnReveal.Unique, "1")
	require.NoError(t, h.handleReveal(c))
	assert.Contains(t, c.lastOutput(), "Reviewed 1 times")
	assert.True(t, h.GetState(1).Revealed)

	word, ok := store.Word("1")
	require.True(t, ok)
	assert.Equal(t, 1, word.ReviewCount)
	assert.Equal(t, 1, slots.MustWords(testSlotKey)[0].ReviewCount)

	c = newFakeContext(1).withCallback(btnNext.Unique, "")
	require.NoError(t, h.handleNext(c))
	assert.Contains(t, c.lastOutput(), "🃏 2 / 8\n\nneighbor")
	assert.False(t, h.GetState(1).Revealed)

	c = newFakeContext(1).withCallback(btnMarkMastered.Unique, "2")
	require.NoError(t, h.handleMarkMastered(c))
	assert.Contains(t, c.lastOutput(), "🃏 2 / 7\n\ndeadline")

	word, ok = store.Word("2")
	require.True(t, ok)
	assert.True(t, word.Mastered)
}

func TestLearnFlow_CursorWraps(t *testing.T) {
	h, _, _ := newTestHandler(t, nil)
	h.SetState(1, &domain.StateData{State: domain.StateLearning, Cursor: 7})

	c := newFakeContext(1).withCallback(btnNext.Unique, "")
	require.NoError(t, h.handleNext(c))

	assert.Contains(t, c.lastOutput(), "🃏 1 / 8\n\nbreakfast")
	assert.Equal(t, 0, h.GetState(1).Cursor)
}

func TestLearnFlow_AllMastered(t *testing.T) {
	h, store, _ := newTestHandler(t, nil)
	ctx := context.Background()

	for _, w := range store.Words() {
		require.NoError(t, store.MarkMastered(ctx, w.ID))
	}

	c := newFakeContext(1).withCallback(btnLearn.Unique, "")
	require.NoError(t, h.handleLearn(c))

	assert.Contains(t, c.lastOutput(), "Every word is mastered")
	assert.Equal(t, domain.StateIdle, h.GetState(1).State)
}

func TestHandleImportDemo(t *testing.T) {
	h, store, _ := newTestHandler(t, nil)

	c := newFakeContext(1).withCallback(btnImportDemo.Unique, "")
	require.NoError(t, h.handleImportDemo(c))
	assert.Contains(t, c.lastOutput(), "4 new words added. 12 words in total.")
	assert.Len(t, store.Words(), 12)

	c = newFakeContext(1).withCallback(btnImportDemo.Unique, "")
	require.NoError(t, h.handleImportDemo(c))
	assert.Contains(t, c.lastOutput(), "0 new words added. 12 words in total.")
}

func TestImportFromURLFlow(t *testing.T) {
	body := []byte(`{"categories":[],"words":[{"id":"900","word":"ferry","meaning":"a boat","category":"travel"}]}`)

	fetcher := new(testutil.MockFetcher)
	fetcher.On("Fetch", mock.Anything, "https://example.com/words.json").Return(body, nil)

	h, store, _ := newTestHandler(t, fetcher)

	c := newFakeContext(1).withCallback(btnImportURL.Unique, "")
	require.NoError(t, h.handleImportURLPrompt(c))
	assert.Equal(t, domain.StateWaitingURL, h.GetState(1).State)

	msg := newFakeContext(1)
	msg.text = " https://example.com/words.json "
	require.NoError(t, h.handleText(msg))

	require.Len(t, msg.sent, 1)
	assert.Contains(t, msg.sent[0], "1 new words added. 9 words in total.")
	assert.Equal(t, domain.StateIdle, h.GetState(1).State)

	_, ok := store.Word("900")
	assert.True(t, ok)
	fetcher.AssertExpectations(t)
}

func TestImportFromURLFlow_ErrorKeepsWaiting(t *testing.T) {
	fetcher := new(testutil.MockFetcher)
	fetcher.On("Fetch", mock.Anything, "https://example.com/down").
		Return(nil, fmt.Errorf("%w: status 503", domain.ErrFetch))

	h, store, _ := newTestHandler(t, fetcher)
	h.SetState(1, &domain.StateData{State: domain.StateWaitingURL})

	msg := newFakeContext(1)
	msg.text = "https://example.com/down"
	require.NoError(t, h.handleText(msg))

	require.Len(t, msg.sent, 1)
	assert.Contains(t, msg.sent[0], "Failed to fetch data from the API")
	assert.Equal(t, domain.StateWaitingURL, h.GetState(1).State)
	assert.Len(t, store.Words(), 8)
}

func TestHandleImportCommand(t *testing.T) {
	h, store, _ := newTestHandler(t, nil)

	c := newFakeContext(1)
	c.payload = "demo"
	require.NoError(t, h.handleImportCommand(c))
	assert.Contains(t, c.lastOutput(), "4 new words added")
	assert.Len(t, store.Words(), 12)

	c = newFakeContext(1)
	require.NoError(t, h.handleImportCommand(c))
	assert.Contains(t, c.lastOutput(), "Send the URL")
	assert.Equal(t, domain.StateWaitingURL, h.GetState(1).State)
}

func TestHandleText_IdleAndCommands(t *testing.T) {
	h, _, _ := newTestHandler(t, nil)

	c := newFakeContext(1)
	c.text = "/unknown"
	require.NoError(t, h.handleText(c))
	assert.Empty(t, c.sent)

	c = newFakeContext(1)
	c.text = "hello"
	require.NoError(t, h.handleText(c))
	assert.Equal(t, []string{"Use /start to open the menu."}, c.sent)
}

func TestImportErrorText(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"empty url", domain.ErrEmptyURL, "Please enter an API URL."},
		{"fetch", fmt.Errorf("%w: timeout", domain.ErrFetch), "❌ Failed to fetch data from the API: failed to fetch bundle: timeout"},
		{"decode", fmt.Errorf("%w: bad", domain.ErrDecodeBundle), "❌ The response is not valid JSON."},
		{"invalid", domain.ErrInvalidBundle, "❌ Invalid data format: categories or words field is missing."},
		{"other", errors.New("disk full"), "❌ Import failed. Please try again later."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, importErrorText(tt.err))
		})
	}
}

func TestHandleCallback_FallbackRouting(t *testing.T) {
	h, store, _ := newTestHandler(t, nil)

	t.Run("unique in data", func(t *testing.T) {
		c := newFakeContext(1).withCallback("", "\freveal|3")
		require.NoError(t, h.handleCallback(c))

		word, ok := store.Word("3")
		require.True(t, ok)
		assert.Equal(t, 1, word.ReviewCount)
	})

	t.Run("bare unique", func(t *testing.T) {
		c := newFakeContext(1).withCallback(btnMainMenu.Unique, "")
		require.NoError(t, h.handleCallback(c))
		assert.Contains(t, c.lastOutput(), "Word cards")
	})

	t.Run("unknown is acknowledged", func(t *testing.T) {
		c := newFakeContext(1).withCallback("mystery", "")
		require.NoError(t, h.handleCallback(c))
		assert.Empty(t, c.edited)
		assert.Empty(t, c.sent)
	})
}

func TestImportFromURLFlow_WrongShapeIsNotAParseError(t *testing.T) {
	fetcher := new(testutil.MockFetcher)
	fetcher.On("Fetch", mock.Anything, "https://example.com/list.json").
		Return([]byte(`[{"word":"x"}]`), nil)

	h, _, _ := newTestHandler(t, fetcher)
	h.SetState(1, &domain.StateData{State: domain.StateWaitingURL})

	msg := newFakeContext(1)
	msg.text = "https://example.com/list.json"
	require.NoError(t, h.handleText(msg))

	require.Len(t, msg.sent, 1)
	assert.Equal(t, "❌ Invalid data format: categories or words field is missing.", msg.sent[0])
}
