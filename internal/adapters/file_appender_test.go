package adapters

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taktziv/internal/core"
)

func testSnapshot(t *testing.T, date string) core.Snapshot {
	t.Helper()
	d, err := core.ParseDate(date)
	require.NoError(t, err)
	return core.Snapshot{
		Date: d,
		Assets: map[string]core.AssetValue{
			"checking": {Amount: decimal.RequireFromString("1000")},
			"savings":  {Amount: decimal.RequireFromString("500")},
		},
		Liabilities: map[string]core.AssetValue{
			"card": {Amount: decimal.RequireFromString("250")},
		},
		Note: "monthly check",
	}
}

func TestFileAppenderWritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backups", "snapshots.csv")
	appender, err := NewFileAppender(path)
	require.NoError(t, err)

	ref, err := appender.Append(context.Background(), testSnapshot(t, "2024-01-01"))
	require.NoError(t, err)
	assert.Contains(t, ref, "snapshots.csv")

	_, err = appender.Append(context.Background(), testSnapshot(t, "2024-02-01"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3, "one header plus two rows")
	assert.Equal(t, "date,assets,liabilities,net_worth,breakdown,note", lines[0])
	assert.Contains(t, lines[1], "2024-01-01")
	assert.Contains(t, lines[1], "1250")
	assert.Contains(t, lines[2], "2024-02-01")
}

func TestFileAppenderRejectsEmptyPath(t *testing.T) {
	_, err := NewFileAppender("")
	assert.Error(t, err)
}
