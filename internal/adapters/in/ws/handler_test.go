package ws_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"foodgo/internal/adapters/in/ws"
	"foodgo/internal/core/application/events"
	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/realtime"
)

var testSecret = []byte("test-secret")

type wsFixture struct {
	hub    *realtime.Hub
	server *httptest.Server
}

func newFixture(t *testing.T) *wsFixture {
	t.Helper()

	hub := realtime.NewHub(0, nil)
	handler := ws.NewHandler(hub, testSecret, nil)

	e := echo.New()
	handler.Register(e)

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	return &wsFixture{hub: hub, server: server}
}

func (f *wsFixture) dial(t *testing.T, token string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws?token=" + token
	conn, err := websocket.Dial(url, "", "http://localhost/")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	return conn
}

func signToken(t *testing.T, userID kernel.UUID, role kernel.Role) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID.String(),
		"role":   role.String(),
	})
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func TestDial_RejectsBadToken(t *testing.T) {
	fixture := newFixture(t)

	url := "ws" + strings.TrimPrefix(fixture.server.URL, "http") + "/ws?token=garbage"
	_, err := websocket.Dial(url, "", "http://localhost/")
	require.Error(t, err)
}

func TestPartner_ReceivesBroadcastOffers(t *testing.T) {
	fixture := newFixture(t)
	conn := fixture.dial(t, signToken(t, kernel.NewUUID(), kernel.RoleDeliveryPartner))

	require.Eventually(t, func() bool {
		return fixture.hub.SubscriberCount(events.ChannelBroadcast) == 1
	}, 2*time.Second, 10*time.Millisecond)

	err := fixture.hub.Publish(t.Context(), events.NewOrder{
		OrderID:        "FGO17250001",
		RestaurantName: "Biryani House",
		Total:          329,
	})
	require.NoError(t, err)

	var frame realtime.Frame
	require.NoError(t, websocket.JSON.Receive(conn, &frame))
	assert.Equal(t, "newOrder", frame.Event)
	assert.Contains(t, string(frame.Data), "FGO17250001")
}

func TestCustomer_JoinsOrderChannel(t *testing.T) {
	fixture := newFixture(t)
	conn := fixture.dial(t, signToken(t, kernel.NewUUID(), kernel.RoleCustomer))

	require.NoError(t, websocket.JSON.Send(conn, map[string]string{
		"action": ws.ActionJoinOrder,
		"id":     "FGO17250001",
	}))

	orderChannel := events.OrderChannel("FGO17250001")
	require.Eventually(t, func() bool {
		return fixture.hub.SubscriberCount(orderChannel) == 1
	}, 2*time.Second, 10*time.Millisecond)

	err := fixture.hub.Publish(t.Context(), events.StatusUpdate{
		OrderID:   "FGO17250001",
		Status:    "picked_up",
		Timestamp: time.Now(),
	})
	require.NoError(t, err)

	var frame realtime.Frame
	require.NoError(t, websocket.JSON.Receive(conn, &frame))
	assert.Equal(t, "statusUpdate", frame.Event)
}

func TestPartner_CannotJoinForeignPartnerChannel(t *testing.T) {
	fixture := newFixture(t)
	conn := fixture.dial(t, signToken(t, kernel.NewUUID(), kernel.RoleDeliveryPartner))

	foreignID := kernel.NewUUID().String()
	require.NoError(t, websocket.JSON.Send(conn, map[string]string{
		"action": ws.ActionJoinPartner,
		"id":     foreignID,
	}))

	assert.Never(t, func() bool {
		return fixture.hub.SubscriberCount(events.PartnerChannel(foreignID)) > 0
	}, 300*time.Millisecond, 50*time.Millisecond)
}

func TestAdmin_JoinsAnyPartnerChannel(t *testing.T) {
	fixture := newFixture(t)
	conn := fixture.dial(t, signToken(t, kernel.NewUUID(), kernel.RoleAdmin))

	partnerID := kernel.NewUUID().String()
	require.NoError(t, websocket.JSON.Send(conn, map[string]string{
		"action": ws.ActionJoinPartner,
		"id":     partnerID,
	}))

	require.Eventually(t, func() bool {
		return fixture.hub.SubscriberCount(events.PartnerChannel(partnerID)) == 1
	}, 2*time.Second, 10*time.Millisecond)
}
