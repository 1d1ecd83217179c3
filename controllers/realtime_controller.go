package controllers

import (
	"net/http"
	"time"

	"moodbite/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	pingInterval = 25 * time.Second
	writeWait    = 10 * time.Second
)

type RealtimeController struct {
	RT  *services.RealtimeHub
	log *zap.Logger
}

func NewRealtimeController(rt *services.RealtimeHub, log *zap.Logger) *RealtimeController {
	return &RealtimeController{RT: rt, log: log.Named("ws")}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// InsightsWS upgrades the request and keeps the connection registered until
// the client goes away. Insight updates are pushed by the hub.
func (rc *RealtimeController) InsightsWS(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		rc.log.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	cl := &services.WSClient{UserID: uid, Conn: conn}
	rc.RT.Register(cl)

	done := make(chan struct{})
	defer close(done)

	// keep the connection alive through proxies that drop idle sockets
	go func() {
		t := time.NewTicker(pingInterval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					rc.RT.Unregister(cl)
					return
				}
			}
		}
	}()

	// read loop ends on client close/error
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			rc.RT.Unregister(cl)
			return
		}
	}
}
