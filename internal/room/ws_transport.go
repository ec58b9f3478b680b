package room

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 25 * time.Second
)

// wire message envelope shared by both directions.
type wireMsg struct {
	Type string `json:"type"`

	// join
	Room     string `json:"room,omitempty"`
	Identity string `json:"identity,omitempty"`
	Token    string `json:"token,omitempty"`

	// rpc_request / rpc_response
	ID             string          `json:"id,omitempty"`
	Method         string          `json:"method,omitempty"`
	CallerIdentity string          `json:"caller_identity,omitempty"`
	Result         json.RawMessage `json:"result,omitempty"`
	Error          string          `json:"error,omitempty"`

	// set_audio
	Enabled *bool `json:"enabled,omitempty"`

	// audio_chunk
	Participant string `json:"participant,omitempty"`
	AudioBase64 string `json:"audio_base64,omitempty"`
	IsFinal     bool   `json:"is_final,omitempty"`

	// data
	Payload json.RawMessage `json:"payload,omitempty"`
}

// WSTransport speaks the room signaling protocol over a websocket. One
// connection serves one room.
type WSTransport struct {
	url      string
	roomName string
	identity string
	token    string
	log      *logrus.Entry

	writeMu sync.Mutex
	conn    *websocket.Conn

	mu           sync.Mutex
	rpcHandlers  map[string]RPCHandler
	audioHandler AudioChunkHandler
	joinHandler  ParticipantHandler
	closed       bool
	done         chan struct{}
	cancel       context.CancelFunc
}

func NewWSTransport(url, roomName, identity, token string, logger *logrus.Logger) *WSTransport {
	if logger == nil {
		logger = logrus.New()
	}
	return &WSTransport{
		url:      url,
		roomName: roomName,
		identity: identity,
		token:    token,
		log: logger.WithFields(logrus.Fields{
			"component": "room-transport",
			"room":      roomName,
		}),
		rpcHandlers: make(map[string]RPCHandler),
		done:        make(chan struct{}),
	}
}

func (t *WSTransport) RegisterRPC(method string, handler RPCHandler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rpcHandlers[method] = handler
}

func (t *WSTransport) OnAudioChunk(fn AudioChunkHandler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.audioHandler = fn
}

func (t *WSTransport) OnParticipantJoined(fn ParticipantHandler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.joinHandler = fn
}

// Connect dials the signaling endpoint, joins the room, and starts the read
// and keepalive loops. ctx bounds the dial only: the read loop and the RPC
// handlers it invokes outlive the caller (typically a bootstrap HTTP request),
// so they run under a connection-scoped context canceled by Close.
func (t *WSTransport) Connect(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, t.url, nil)
	if err != nil {
		return fmt.Errorf("room: dial %s: %w", t.url, err)
	}
	t.conn = conn

	if err := t.write(wireMsg{Type: "join", Room: t.roomName, Identity: t.identity, Token: t.token}); err != nil {
		conn.Close()
		return fmt.Errorf("room: join: %w", err)
	}

	connCtx, cancel := context.WithCancel(context.Background())
	t.mu.Lock()
	t.cancel = cancel
	t.mu.Unlock()

	go t.readLoop(connCtx)
	go t.pingLoop()
	t.log.Info("room connected")
	return nil
}

func (t *WSTransport) SetAudioEnabled(_ context.Context, enabled bool) error {
	return t.write(wireMsg{Type: "set_audio", Enabled: &enabled})
}

func (t *WSTransport) PublishData(_ context.Context, payload []byte) error {
	return t.write(wireMsg{Type: "data", Payload: payload})
}

// PublishAudio pushes synthesized agent speech into the room. The chunk is
// always marked final; synthesis happens per utterance, not per frame.
func (t *WSTransport) PublishAudio(_ context.Context, audio []byte) error {
	return t.write(wireMsg{
		Type:        "audio_chunk",
		Participant: t.identity,
		AudioBase64: base64.StdEncoding.EncodeToString(audio),
		IsFinal:     true,
	})
}

func (t *WSTransport) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	close(t.done)
	cancel := t.cancel
	t.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	if t.conn != nil {
		return t.conn.Close()
	}
	return nil
}

func (t *WSTransport) write(msg wireMsg) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	if t.conn == nil {
		return fmt.Errorf("room: not connected")
	}
	t.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return t.conn.WriteMessage(websocket.TextMessage, b)
}

func (t *WSTransport) readLoop(ctx context.Context) {
	_ = t.conn.SetReadDeadline(time.Now().Add(pongWait))
	t.conn.SetPongHandler(func(string) error {
		_ = t.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := t.conn.ReadMessage()
		if err != nil {
			t.mu.Lock()
			closed := t.closed
			t.mu.Unlock()
			if !closed {
				t.log.WithError(err).Warn("room read failed")
			}
			return
		}

		var msg wireMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			t.log.WithError(err).Debug("dropping malformed room message")
			continue
		}

		switch msg.Type {
		case "rpc_request":
			go t.serveRPC(ctx, msg)

		case "audio_chunk":
			t.mu.Lock()
			handler := t.audioHandler
			t.mu.Unlock()
			if handler == nil {
				continue
			}
			audio, err := base64.StdEncoding.DecodeString(msg.AudioBase64)
			if err != nil {
				t.log.WithError(err).Debug("dropping undecodable audio chunk")
				continue
			}
			handler(msg.Participant, audio, msg.IsFinal)

		case "participant_joined":
			t.mu.Lock()
			handler := t.joinHandler
			t.mu.Unlock()
			if handler != nil {
				handler(msg.Identity)
			}

		case "joined", "pong":
			// acks, nothing to do

		default:
			t.log.WithField("msg_type", msg.Type).Debug("unhandled room message")
		}
	}
}

func (t *WSTransport) serveRPC(ctx context.Context, msg wireMsg) {
	t.mu.Lock()
	handler := t.rpcHandlers[msg.Method]
	t.mu.Unlock()

	resp := wireMsg{Type: "rpc_response", ID: msg.ID}
	if handler == nil {
		resp.Error = "unknown method: " + msg.Method
	} else {
		result, err := handler(ctx, Invocation{Method: msg.Method, CallerIdentity: msg.CallerIdentity})
		if err != nil {
			resp.Error = err.Error()
		} else if result != nil {
			b, merr := json.Marshal(result)
			if merr != nil {
				resp.Error = "marshal result: " + merr.Error()
			} else {
				resp.Result = b
			}
		}
	}
	if err := t.write(resp); err != nil {
		t.log.WithError(err).Warn("rpc response write failed")
	}
}

func (t *WSTransport) pingLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-t.done:
			return
		case <-ticker.C:
			t.writeMu.Lock()
			t.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := t.conn.WriteMessage(websocket.PingMessage, nil)
			t.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}
