package inspector

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dialBridge starts the bridge behind a test server and connects a fake
// preview frame to it.
func dialBridge(t *testing.T, b *Bridge) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestBridgeReadyHandshake(t *testing.T) {
	b := NewBridge(nil)
	conn := dialBridge(t, b)

	payload, _ := json.Marshal(VersionPayload{Version: "1"})
	require.NoError(t, conn.WriteJSON(Envelope{Type: MsgReady, Payload: payload}))

	require.Eventually(t, func() bool {
		return b.FrameVersion() == "1"
	}, time.Second, 5*time.Millisecond)
}

func TestBridgeDispatchesElementSelected(t *testing.T) {
	b := NewBridge(nil)
	selected := make(chan ElementInfo, 1)
	b.Handle(MsgElementSelected, func(payload json.RawMessage) {
		var info ElementInfo
		if err := json.Unmarshal(payload, &info); err == nil {
			selected <- info
		}
	})

	conn := dialBridge(t, b)

	info := ElementInfo{
		ID:            "div#root>button.btn:nth-of-type(1)",
		TagName:       "button",
		ComponentName: "Button",
		Styles:        map[string]string{"color": "red"},
		Rect:          Rect{Top: 10, Left: 20, Width: 100, Height: 40},
	}
	payload, _ := json.Marshal(info)
	require.NoError(t, conn.WriteJSON(Envelope{Type: MsgElementSelected, Payload: payload}))

	select {
	case got := <-selected:
		assert.Equal(t, info.ID, got.ID)
		assert.Equal(t, "Button", got.ComponentName)
	case <-time.After(time.Second):
		t.Fatal("element-selected never dispatched")
	}
}

func TestBridgeUpdateStyleReachesFrame(t *testing.T) {
	b := NewBridge(nil)
	conn := dialBridge(t, b)

	// Wait for the server side to register the connection.
	require.Eventually(t, func() bool {
		return b.UpdateStyle("btn-1", map[string]string{"color": "#fff"}) == nil
	}, time.Second, 5*time.Millisecond)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var env Envelope
	require.NoError(t, conn.ReadJSON(&env))
	assert.Equal(t, MsgUpdateStyle, env.Type)

	var sp StylePayload
	require.NoError(t, json.Unmarshal(env.Payload, &sp))
	assert.Equal(t, "btn-1", sp.ID)
	assert.Equal(t, "#fff", sp.Styles["color"])
}

func TestBridgeSendWithoutFrame(t *testing.T) {
	b := NewBridge(nil)

	assert.Error(t, b.Ping())
}
