package tui

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arithma_tech/entity"
	"arithma_tech/internal/compression"
	"arithma_tech/internal/db/gorm/sqlite"
	"arithma_tech/internal/history"
	"arithma_tech/pkg/logger"
)

type failingDeleteHistory struct {
	History
}

func (failingDeleteHistory) DeleteByTimestamp(context.Context, time.Time) (int64, error) {
	return 0, errors.New("locked")
}

func newTestModel(t *testing.T) (*Model, *compression.Controller, *history.Repository) {
	t.Helper()

	db, err := sqlite.NewDB("")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	l := logger.NewWithWriter("error", io.Discard)
	repo := history.NewRepository(db, l)
	require.NoError(t, repo.Init(context.Background()))

	ctrl := compression.NewController(repo, l, compression.WithProgressFactory(compression.SimulatedFactory(50)))
	return New(context.Background(), ctrl, repo, "guide text"), ctrl, repo
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func typeString(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestTabSwitchesMode(t *testing.T) {
	m, ctrl, _ := newTestModel(t)
	assert.Equal(t, entity.ModeFile, ctrl.Snapshot().Mode)

	m.Update(key(tea.KeyTab))
	assert.Equal(t, entity.ModeText, ctrl.Snapshot().Mode)
	assert.Contains(t, m.View(), "Text input mode selected")

	m.Update(key(tea.KeyTab))
	assert.Equal(t, entity.ModeFile, ctrl.Snapshot().Mode)
}

func TestTextCompressionRunsToCompletion(t *testing.T) {
	m, ctrl, repo := newTestModel(t)

	m.Update(key(tea.KeyTab))
	typeString(m, "hi")
	assert.Equal(t, "hi", ctrl.Snapshot().Text)

	_, cmd := m.Update(key(tea.KeyCtrlE))
	require.NotNil(t, cmd)
	assert.True(t, ctrl.Busy())

	for i := 0; i < 3; i++ {
		m.Update(tickMsg{})
	}
	assert.False(t, ctrl.Busy())
	assert.Equal(t, "Your text has been compressed successfully!", m.message)

	records, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "hi", records[0].TextContent)
}

func TestEmptyTextShowsHint(t *testing.T) {
	m, ctrl, _ := newTestModel(t)
	m.Update(key(tea.KeyTab))

	_, cmd := m.Update(key(tea.KeyCtrlD))
	assert.Nil(t, cmd)
	assert.False(t, ctrl.Busy())
	assert.Equal(t, "Empty Input: Please enter text to decompress", m.message)
}

func TestFileSelection(t *testing.T) {
	m, ctrl, _ := newTestModel(t)

	typeString(m, "/tmp/notes.txt")
	m.Update(key(tea.KeyEnter))
	assert.Contains(t, m.message, "Unsupported File")
	assert.Equal(t, compression.NoFileLabel, ctrl.SelectedFileLabel())

	m.Update(key(tea.KeyCtrlX))
	typeString(m, "/tmp/cat.png")
	m.Update(key(tea.KeyEnter))
	assert.Empty(t, m.message)
	assert.Contains(t, m.View(), "Selected: cat.png")

	m.Update(key(tea.KeyCtrlX))
	assert.Equal(t, compression.NoFileLabel, ctrl.SelectedFileLabel())
}

func TestTypingIgnoredWhileBusy(t *testing.T) {
	m, ctrl, _ := newTestModel(t)
	m.Update(key(tea.KeyTab))
	typeString(m, "a")
	m.Update(key(tea.KeyCtrlE))

	typeString(m, "b")
	assert.Equal(t, "a", ctrl.Snapshot().Text)

	m.Update(key(tea.KeyTab))
	assert.Equal(t, "Please wait for the current operation to finish.", m.message)
	assert.Equal(t, entity.ModeText, ctrl.Snapshot().Mode)
}

func TestHistoryPane(t *testing.T) {
	m, _, repo := newTestModel(t)
	ctx := context.Background()

	m.Update(key(tea.KeyCtrlR))
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	assert.Equal(t, "No Selection: Please select an entry to delete.", m.message)

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for i, name := range []string{"/p/a.png", "/p/b.png"} {
		rec := entity.NewOperationRecord(entity.Selection{Mode: entity.ModeFile, FilePath: name}, entity.Compress)
		rec.Timestamp = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, repo.Insert(ctx, &rec))
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.Len(t, m.records, 2)
	assert.Equal(t, "b.png", m.records[0].Name)
	assert.Contains(t, m.View(), "b.png")

	m.Update(key(tea.KeyDown))
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	require.Len(t, m.records, 1)
	assert.Equal(t, "b.png", m.records[0].Name)
	assert.Zero(t, m.cursor)

	m.history = failingDeleteHistory{History: repo}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	assert.Equal(t, "Delete Failed: Could not delete the entry.", m.message)

	m.Update(key(tea.KeyEsc))
	assert.Equal(t, viewMain, m.view)
}

func TestGuidePane(t *testing.T) {
	m, _, _ := newTestModel(t)

	m.Update(key(tea.KeyCtrlG))
	assert.Contains(t, m.View(), "guide text")

	m.Update(key(tea.KeyEsc))
	assert.Equal(t, viewMain, m.view)

	_, cmd := m.Update(key(tea.KeyEsc))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
