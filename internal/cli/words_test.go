package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"wordcards/internal/domain"
	"wordcards/internal/testutil"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newGolden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

// progressedServices returns services where word 5 is mastered and word 1 was reviewed twice
func progressedServices(t *testing.T) *Services {
	t.Helper()

	svc, _ := newTestServices(nil)
	ctx := context.Background()
	svc.Store.Load(ctx)
	require.NoError(t, svc.Store.MarkMastered(ctx, "5"))
	require.NoError(t, svc.Store.IncrementReviewCount(ctx, "1"))
	require.NoError(t, svc.Store.IncrementReviewCount(ctx, "1"))
	return svc
}

func TestListText(t *testing.T) {
	out, err := execute(t, progressedServices(t), "list")
	require.NoError(t, err)

	newGolden(t).Assert(t, "list", []byte(out))
}

func TestStatsText(t *testing.T) {
	out, err := execute(t, progressedServices(t), "stats")
	require.NoError(t, err)

	newGolden(t).Assert(t, "stats", []byte(out))
}

func TestCategoriesText(t *testing.T) {
	out, err := execute(t, progressedServices(t), "categories")
	require.NoError(t, err)

	newGolden(t).Assert(t, "categories", []byte(out))
}

func TestListFilters(t *testing.T) {
	tests := []struct {
		name string
		args []string
		ids  []string
	}{
		{"category", []string{"list", "--category", "travel"}, []string{"5", "6"}},
		{"mastered", []string{"list", "--mastered"}, []string{"5"}},
		{"unmastered in category", []string{"list", "--unmastered", "--category", "travel"}, []string{"6"}},
		{"unknown category", []string{"list", "--category", "space"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(tt.args, "--format", "json")
			out, err := execute(t, progressedServices(t), args...)
			require.NoError(t, err)

			var resp struct {
				Status string        `json:"status"`
				Data   []domain.Word `json:"data"`
			}
			require.NoError(t, json.Unmarshal([]byte(out), &resp))
			assert.Equal(t, "ok", resp.Status)

			ids := []string{}
			for _, w := range resp.Data {
				ids = append(ids, w.ID)
			}
			assert.Equal(t, tt.ids, ids)
		})
	}
}

func TestListMasteredFlagsExclusive(t *testing.T) {
	_, err := execute(t, progressedServices(t), "list", "--mastered", "--unmastered")
	assert.Error(t, err)
}

func TestShow(t *testing.T) {
	svc := progressedServices(t)

	out, err := execute(t, svc, "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "breakfast")
	assert.Contains(t, out, "  reviews:  2\n")

	_, err = execute(t, svc, "show", "999")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestMasterAndReview(t *testing.T) {
	svc, slots := newTestServices(nil)

	out, err := execute(t, svc, "master", "3")
	require.NoError(t, err)
	assert.Equal(t, "deadline mastered\n", out)

	out, err = execute(t, svc, "review", "3", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Data domain.Word `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Data.Mastered)
	assert.Equal(t, 1, resp.Data.ReviewCount)

	persisted := slots.MustWords(testSlotKey)
	assert.True(t, persisted[2].Mastered)
	assert.Equal(t, 1, persisted[2].ReviewCount)
}

func TestMaster_UnknownIDStillPersists(t *testing.T) {
	svc, slots := newTestServices(nil)

	_, err := execute(t, svc, "master", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	// seed write plus the no-op mutation write
	assert.Equal(t, 2, slots.Writes())
}

func TestImportDemo(t *testing.T) {
	svc, _ := newTestServices(nil)

	out, err := execute(t, svc, "import", "demo")
	require.NoError(t, err)
	assert.Equal(t, "4 new words added. 12 words in total.\n", out)

	out, err = execute(t, svc, "import", "demo", "--format", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","data":{"source":"demo","added":0,"total":12}}`, out)
}

func TestImportFile(t *testing.T) {
	svc, _ := newTestServices(nil)
	dir := t.TempDir()

	valid := filepath.Join(dir, "words.json")
	require.NoError(t, os.WriteFile(valid, []byte(`{
		"categories": [{"id": "travel", "name": "Travel", "color": "#45B7D1"}],
		"words": [
			{"word": "ferry", "meaning": "a boat", "category": "travel"},
			{"word": "passport", "meaning": "duplicate", "category": "travel"}
		]
	}`), 0o600))

	out, err := execute(t, svc, "import", "file", valid)
	require.NoError(t, err)
	assert.Equal(t, "1 new words added. 9 words in total.\n", out)

	missing := filepath.Join(dir, "words-missing.json")
	require.NoError(t, os.WriteFile(missing, []byte(`{"categories": []}`), 0o600))

	_, err = execute(t, svc, "import", "file", missing)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidBundle)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	_, err = execute(t, svc, "import", "file", filepath.Join(dir, "absent.json"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestImportURL(t *testing.T) {
	fetcher := new(testutil.MockFetcher)
	fetcher.On("Fetch", mock.Anything, "https://example.com/words.json").
		Return([]byte(`not json`), nil)

	svc, _ := newTestServices(fetcher)

	_, err := execute(t, svc, "import", "url", "https://example.com/words.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDecodeBundle)
	fetcher.AssertExpectations(t)
}
