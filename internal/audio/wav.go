// Package audio converts raw speech output into formats browsers can play.
package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"mime"
	"strconv"
	"strings"
)

// DefaultSampleRate is assumed for PCM data whose MIME type carries no rate.
const DefaultSampleRate = 24000

// WAVMIMEType is the content type of EncodeWAV output.
const WAVMIMEType = "audio/wav"

// wavHeader is the canonical 44 byte RIFF/WAVE header for mono 16-bit PCM.
type wavHeader struct {
	ChunkID       [4]byte
	ChunkSize     uint32
	Format        [4]byte
	Subchunk1ID   [4]byte
	Subchunk1Size uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Subchunk2ID   [4]byte
	Subchunk2Size uint32
}

// WriteWAV writes pcm (mono, signed 16-bit little-endian) to out as a WAV stream.
func WriteWAV(out io.Writer, pcm []byte, sampleRate int) error {
	const (
		numChannels   = 1
		bitsPerSample = 16
	)
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}

	h := wavHeader{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     uint32(36 + len(pcm)),
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1, // PCM
		NumChannels:   numChannels,
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate * numChannels * bitsPerSample / 8),
		BlockAlign:    numChannels * bitsPerSample / 8,
		BitsPerSample: bitsPerSample,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: uint32(len(pcm)),
	}
	if err := binary.Write(out, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("failed to write WAV header: %w", err)
	}
	if _, err := out.Write(pcm); err != nil {
		return fmt.Errorf("failed to write WAV data: %w", err)
	}
	return nil
}

// EncodeWAV wraps pcm in a WAV container.
func EncodeWAV(pcm []byte, sampleRate int) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(44 + len(pcm))
	if err := WriteWAV(&buf, pcm, sampleRate); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PCMSampleRate extracts the rate parameter from a raw PCM MIME type such as
// "audio/L16;codec=pcm;rate=24000". ok is false when mimeType is not raw PCM.
func PCMSampleRate(mimeType string) (rate int, ok bool) {
	mediaType, params, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return 0, false
	}
	if !strings.EqualFold(mediaType, "audio/l16") && !strings.EqualFold(params["codec"], "pcm") {
		return 0, false
	}
	rate, err = strconv.Atoi(params["rate"])
	if err != nil || rate <= 0 {
		rate = DefaultSampleRate
	}
	return rate, true
}

// ToWAV returns data as WAV. Raw PCM is wrapped; anything else, including
// data that is already WAV, is returned unchanged along with its MIME type.
func ToWAV(data []byte, mimeType string) ([]byte, string, error) {
	rate, ok := PCMSampleRate(mimeType)
	if !ok {
		return data, mimeType, nil
	}
	wav, err := EncodeWAV(data, rate)
	if err != nil {
		return nil, "", err
	}
	return wav, WAVMIMEType, nil
}
