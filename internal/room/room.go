// Package room is the client side of the realtime room platform: joining a
// pre-provisioned room, toggling audio input, registering remote procedures,
// and publishing data to participants.
package room

import "context"

// Invocation carries the caller context of one remote procedure call.
type Invocation struct {
	Method         string
	CallerIdentity string
}

// RPCHandler serves one named remote procedure. The returned value is
// JSON-marshaled into the response.
type RPCHandler func(ctx context.Context, inv Invocation) (any, error)

// AudioChunkHandler receives candidate audio. final marks the end of an
// utterance.
type AudioChunkHandler func(participant string, audio []byte, final bool)

// ParticipantHandler observes participants joining the room.
type ParticipantHandler func(identity string)

// Transport is the room platform collaborator. Handlers must be registered
// before Connect.
type Transport interface {
	Connect(ctx context.Context) error
	RegisterRPC(method string, handler RPCHandler)
	OnAudioChunk(fn AudioChunkHandler)
	OnParticipantJoined(fn ParticipantHandler)
	SetAudioEnabled(ctx context.Context, enabled bool) error
	PublishData(ctx context.Context, payload []byte) error
	PublishAudio(ctx context.Context, audio []byte) error
	Close() error
}
