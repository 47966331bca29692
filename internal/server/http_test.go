package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"ursa-server/internal/config"
	"ursa-server/internal/engine"
	"ursa-server/internal/network"
	"ursa-server/pkg/api"
	"ursa-server/pkg/level"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLevel = `
name: yard
obstacles:
  - {x: 0, y: 0, w: 320, h: 16}
  - {x: 0, y: 304, w: 320, h: 16}
player:
  spawn: {x: 40, y: 160}
enemies:
  - id: guard-1
    spawn: {x: 280, y: 160}
    waypoints:
      - {x: 280, y: 100}
      - {x: 280, y: 220}
`

func newTestServer(t *testing.T) (*httptest.Server, *engine.GameService) {
	t.Helper()

	file, err := level.Parse([]byte(testLevel))
	require.NoError(t, err)

	cfg := engine.NewConfig()
	cfg.Seed = 5
	cfg.TickRate = 200
	svc := engine.NewService(cfg, config.Profiles{"normal": config.DefaultProfile()}, network.NewBroadcaster())
	_, err = svc.AddLevel(file)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	svc.Start(ctx)

	ts := httptest.NewServer(New(svc, "0").Handler())
	t.Cleanup(func() {
		ts.Close()
		cancel()
	})
	return ts, svc
}

func TestServer_Health(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestServer_DebugEndpoints(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/debug/instances")
	require.NoError(t, err)
	var instances []engine.InstanceSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&instances))
	resp.Body.Close()
	require.Len(t, instances, 1)
	assert.Equal(t, "yard", instances[0].Level)

	resp, err = http.Get(ts.URL + "/debug/agents?level=yard")
	require.NoError(t, err)
	var agents []engine.AgentDebug
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&agents))
	resp.Body.Close()
	require.Len(t, agents, 1)
	assert.Equal(t, "guard-1", agents[0].ID)
	assert.Len(t, agents[0].Route, 2)

	resp, err = http.Get(ts.URL + "/debug/agents?level=nowhere")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_WebSocketSession(t *testing.T) {
	ts, svc := newTestServer(t)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(api.ClientCommand{Token: "tester", Level: "yard", Action: "INIT"}))

	// Ждем INIT с картой, UPDATE могут прийти раньше
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	var snap api.Snapshot
	for snap.Type != api.MsgTypeInit {
		require.NoError(t, conn.ReadJSON(&snap))
	}
	require.NotNil(t, snap.Grid)
	assert.Equal(t, "yard", snap.Level)
	require.Len(t, snap.Agents, 1)

	// Команда движения доходит до уровня
	require.NoError(t, conn.WriteJSON(api.ClientCommand{Action: "MOVE", Payload: json.RawMessage(`{"dx":1,"dy":0}`)}))
	assert.Eventually(t, func() bool {
		return svc.Instance("yard").Summary().Actions == 1
	}, 3*time.Second, 10*time.Millisecond)
}
