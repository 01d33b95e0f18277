package ipc

import "encoding/binary"

// ChannelStatsPayload encodes an IDChannelStats payload.
//
// Layout (little-endian):
//   - i32: peak level, dB * 100
//   - u32: saturated sample count
func ChannelStatsPayload(peakCentiDB int32, saturated uint32) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(peakCentiDB))
	binary.LittleEndian.PutUint32(buf[4:8], saturated)
	return buf
}

// DecodeChannelStatsPayload decodes a ChannelStatsPayload.
func DecodeChannelStatsPayload(payload []byte) (peakCentiDB int32, saturated uint32, ok bool) {
	if len(payload) < 8 {
		return 0, 0, false
	}
	peakCentiDB = int32(binary.LittleEndian.Uint32(payload[0:4]))
	saturated = binary.LittleEndian.Uint32(payload[4:8])
	return peakCentiDB, saturated, true
}

// RSSIStatsPayload encodes an IDRSSIStats payload.
//
// Layout:
//   - u8: min
//   - u8: avg
//   - u8: max
func RSSIStatsPayload(min, avg, max uint8) []byte {
	return []byte{min, avg, max}
}

// DecodeRSSIStatsPayload decodes an RSSIStatsPayload.
func DecodeRSSIStatsPayload(payload []byte) (min, avg, max uint8, ok bool) {
	if len(payload) < 3 {
		return 0, 0, 0, false
	}
	return payload[0], payload[1], payload[2], true
}

// AudioStatsPayload encodes an IDAudioStats payload.
//
// Layout (little-endian):
//   - i32: rms level, dB * 100
//   - i32: max level, dB * 100
//   - u32: sample count
func AudioStatsPayload(rmsCentiDB, maxCentiDB int32, count uint32) []byte {
	buf := make([]byte, 12)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(rmsCentiDB))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(maxCentiDB))
	binary.LittleEndian.PutUint32(buf[8:12], count)
	return buf
}

// DecodeAudioStatsPayload decodes an AudioStatsPayload.
func DecodeAudioStatsPayload(payload []byte) (rmsCentiDB, maxCentiDB int32, count uint32, ok bool) {
	if len(payload) < 12 {
		return 0, 0, 0, false
	}
	rmsCentiDB = int32(binary.LittleEndian.Uint32(payload[0:4]))
	maxCentiDB = int32(binary.LittleEndian.Uint32(payload[4:8]))
	count = binary.LittleEndian.Uint32(payload[8:12])
	return rmsCentiDB, maxCentiDB, count, true
}

// TXDonePayload encodes an IDTXDone payload.
//
// Layout:
//   - u32: progress, percent
func TXDonePayload(progress uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, progress)
	return buf
}

// DecodeTXDonePayload decodes a TXDonePayload.
func DecodeTXDonePayload(payload []byte) (progress uint32, ok bool) {
	if len(payload) < 4 {
		return 0, false
	}
	return binary.LittleEndian.Uint32(payload), true
}

// SDCardStatusPayload encodes an IDSDCardStatus payload.
//
// Layout:
//   - u8: 1 if media present
func SDCardStatusPayload(present bool) []byte {
	if present {
		return []byte{1}
	}
	return []byte{0}
}

// DecodeSDCardStatusPayload decodes an SDCardStatusPayload.
func DecodeSDCardStatusPayload(payload []byte) (present bool, ok bool) {
	if len(payload) < 1 {
		return false, false
	}
	return payload[0] != 0, true
}

// DisplaySleepPayload encodes an IDDisplaySleep payload.
//
// Layout:
//   - u8: 1 to sleep, 0 to wake
func DisplaySleepPayload(sleep bool) []byte {
	if sleep {
		return []byte{1}
	}
	return []byte{0}
}

// DecodeDisplaySleepPayload decodes a DisplaySleepPayload.
func DecodeDisplaySleepPayload(payload []byte) (sleep bool, ok bool) {
	if len(payload) < 1 {
		return false, false
	}
	return payload[0] != 0, true
}
