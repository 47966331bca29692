package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"
	"ursa-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSession() *domain.ReplaySession {
	return &domain.ReplaySession{
		LevelName: "warehouse",
		Seed:      42,
		Timestamp: 1764806400,
		Ticks:     900,
		Actions: []domain.ReplayAction{
			{Tick: 0, Action: domain.ActionMove, Payload: json.RawMessage(`{"dx":1,"dy":0}`)},
			{Tick: 120, Action: domain.ActionStun, Payload: json.RawMessage(`{"agentId":"guard-1","ticks":30}`)},
			{Tick: 300, Action: domain.ActionRetry, Payload: json.RawMessage{}},
		},
	}
}

func TestReplay_BinaryRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeBinary(&buf, sampleSession()))

	got, err := readBinary(&buf)
	require.NoError(t, err)
	assert.Equal(t, sampleSession(), got)
}

func TestReplay_SaveLoad(t *testing.T) {
	svc, err := NewReplayService(t.TempDir())
	require.NoError(t, err)

	path, err := svc.Save(sampleSession())
	require.NoError(t, err)
	assert.Contains(t, path, "replay_warehouse_42_")

	got, err := svc.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 900, got.Ticks)
	assert.Len(t, got.Actions, 3)
}

func TestReplay_RejectsGarbage(t *testing.T) {
	_, err := readBinary(bytes.NewReader([]byte("CDRP\x01\x00\x00\x00")))
	assert.Error(t, err)

	// Верная сигнатура, но обрезанный файл
	var buf bytes.Buffer
	require.NoError(t, writeBinary(&buf, sampleSession()))
	_, err = readBinary(bytes.NewReader(buf.Bytes()[:buf.Len()-5]))
	assert.Error(t, err)

	_, err = LoadFile(os.DevNull)
	assert.Error(t, err)
}

func TestReplay_DetectsCorruption(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeBinary(&buf, sampleSession()))

	// Портим байт в payload STUN: структура цела, сумма нет
	data := buf.Bytes()
	data[len(data)-20] ^= 0xFF

	_, err := readBinary(bytes.NewReader(data))
	assert.ErrorContains(t, err, "checksum mismatch")
}

func TestReplay_SaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewReplayService(dir)
	require.NoError(t, err)

	_, err = svc.Save(sampleSession())
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].Name(), ".tmp")
}
