package xlsx

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestWorkbook(t *testing.T) *Workbook {
	t.Helper()

	path := filepath.Join(t.TempDir(), "rozpocet.xlsx")
	w, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, w.EnsureSheet("Rozpočet"))
	return w
}

func TestValueRoundTrip(t *testing.T) {
	w := openTestWorkbook(t)

	require.NoError(t, w.SetValue("Rozpočet", 2, 3, "Kabel CYKY 3x1.5"))
	require.NoError(t, w.SetValue("Rozpočet", 2, 9, 125.5))

	v, err := w.Value("Rozpočet", 2, 3)
	require.NoError(t, err)
	assert.Equal(t, "Kabel CYKY 3x1.5", v)

	price, err := w.Value("Rozpočet", 2, 9)
	require.NoError(t, err)
	assert.Equal(t, "125.5", price)
}

func TestNoteRoundTrip(t *testing.T) {
	w := openTestWorkbook(t)

	note := "📦 Kabel CYKY-J 3x1,5\n🔗 ID: 42"
	require.NoError(t, w.SetNote("Rozpočet", 2, 9, note))

	got, err := w.Note("Rozpočet", 2, 9)
	require.NoError(t, err)
	assert.Equal(t, note, got)

	// overwrite, then clear
	require.NoError(t, w.SetNote("Rozpočet", 2, 9, "jiný text"))
	got, err = w.Note("Rozpočet", 2, 9)
	require.NoError(t, err)
	assert.Equal(t, "jiný text", got)

	require.NoError(t, w.SetNote("Rozpočet", 2, 9, ""))
	got, err = w.Note("Rozpočet", 2, 9)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFillRoundTrip(t *testing.T) {
	w := openTestWorkbook(t)

	require.NoError(t, w.SetFill("Rozpočet", 2, 9, "#fff3cd"))
	fill, err := w.Fill("Rozpočet", 2, 9)
	require.NoError(t, err)
	assert.Equal(t, "#fff3cd", fill)

	require.NoError(t, w.SetFill("Rozpočet", 2, 9, ""))
	fill, err = w.Fill("Rozpočet", 2, 9)
	require.NoError(t, err)
	assert.Empty(t, fill)
}

func TestMissingSheet(t *testing.T) {
	w := openTestWorkbook(t)

	_, err := w.Value("ADMIN_DATABASE", 1, 1)
	assert.Error(t, err)
	assert.False(t, w.HasSheet("ADMIN_DATABASE"))

	require.NoError(t, w.EnsureSheet("ADMIN_DATABASE"))
	assert.True(t, w.HasSheet("ADMIN_DATABASE"))
}

func TestSavePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.xlsx")

	w, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, w.EnsureSheet("List1"))
	require.NoError(t, w.SetValue("List1", 1, 1, "trvalé"))
	require.NoError(t, w.Save())
	require.NoError(t, w.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	v, err := reopened.Value("List1", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "trvalé", v)
}
