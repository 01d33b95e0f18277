package ipc

// ID identifies the message type. The ID space is a small contiguous
// enumeration fixed at build time; the handler table is sized to it.
type ID uint8

const (
	IDNone ID = iota
	IDDisplayFrameSync
	IDDisplaySleep
	IDChannelStats
	IDAudioStats
	IDRSSIStats
	IDTXDone
	IDSDCardStatus
	IDShutdown

	idCount
)

// NumIDs is the size of the message-ID space.
const NumIDs = int(idCount)

// Valid reports whether the ID is inside the bounded space.
func (id ID) Valid() bool { return id > IDNone && id < idCount }

func (id ID) String() string {
	switch id {
	case IDNone:
		return "none"
	case IDDisplayFrameSync:
		return "display_frame_sync"
	case IDDisplaySleep:
		return "display_sleep"
	case IDChannelStats:
		return "channel_stats"
	case IDAudioStats:
		return "audio_stats"
	case IDRSSIStats:
		return "rssi_stats"
	case IDTXDone:
		return "tx_done"
	case IDSDCardStatus:
		return "sd_card_status"
	case IDShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// MaxPayloadBytes is the maximum payload size carried by one message.
const MaxPayloadBytes = 32

// Message is a fixed-size message envelope. Ownership is transient: a
// producer constructs it, a queue copies it, and it is dead once the
// registered handler returns.
type Message struct {
	ID   ID
	Len  uint16
	Data [MaxPayloadBytes]byte
}

// Payload returns the live portion of the data buffer.
func (m *Message) Payload() []byte { return m.Data[:m.Len] }

// New builds a message, truncating oversized payloads.
func New(id ID, payload []byte) Message {
	var m Message
	m.ID = id
	if len(payload) > MaxPayloadBytes {
		payload = payload[:MaxPayloadBytes]
	}
	m.Len = uint16(len(payload))
	copy(m.Data[:], payload)
	return m
}
