package storage

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptStore_Save(t *testing.T) {
	t.Run("writes the decoded file under the member directory", func(t *testing.T) {
		dir := t.TempDir()
		store := NewReceiptStore(dir, 0)

		payload := base64.StdEncoding.EncodeToString([]byte("fake image bytes"))

		stored, err := store.Save("Maria Lopez", "transfer.png", payload)

		require.NoError(t, err)
		today := time.Now().Format("2006-01-02")
		assert.Equal(t, "maria_lopez_"+today+".png", stored.Filename)
		assert.Equal(t, "/uploads/receipts/maria_lopez/"+stored.Filename, stored.URL)

		data, err := os.ReadFile(filepath.Join(dir, "receipts", "maria_lopez", stored.Filename))
		require.NoError(t, err)
		assert.Equal(t, []byte("fake image bytes"), data)
	})

	t.Run("strips a data URL prefix", func(t *testing.T) {
		store := NewReceiptStore(t.TempDir(), 0)

		payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("pixels"))

		stored, err := store.Save("Luis", "receipt.png", payload)

		require.NoError(t, err)
		assert.NotEmpty(t, stored.Filename)
	})

	t.Run("defaults the extension to jpg", func(t *testing.T) {
		store := NewReceiptStore(t.TempDir(), 0)

		payload := base64.StdEncoding.EncodeToString([]byte("pixels"))

		stored, err := store.Save("Luis", "receipt", payload)

		require.NoError(t, err)
		assert.Contains(t, stored.Filename, ".jpg")
	})

	t.Run("rejects empty payloads", func(t *testing.T) {
		store := NewReceiptStore(t.TempDir(), 0)

		_, err := store.Save("Luis", "receipt.png", "   ")

		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("rejects invalid base64", func(t *testing.T) {
		store := NewReceiptStore(t.TempDir(), 0)

		_, err := store.Save("Luis", "receipt.png", "not-base64!!!")

		assert.Error(t, err)
	})

	t.Run("enforces the size limit", func(t *testing.T) {
		store := NewReceiptStore(t.TempDir(), 8)

		payload := base64.StdEncoding.EncodeToString([]byte("more than eight bytes"))

		_, err := store.Save("Luis", "receipt.png", payload)

		assert.ErrorIs(t, err, ErrFileTooLarge)
	})

	t.Run("sanitizes hostile member names", func(t *testing.T) {
		store := NewReceiptStore(t.TempDir(), 0)

		payload := base64.StdEncoding.EncodeToString([]byte("pixels"))

		stored, err := store.Save("../..//Ñandú  <script>", "r.png", payload)

		require.NoError(t, err)
		assert.NotContains(t, stored.URL, "..")
	})
}
