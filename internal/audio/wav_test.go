package audio

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeWAVHeader(t *testing.T) {
	pcm := []byte{1, 0, 2, 0, 3, 0, 4, 0}

	wav, err := EncodeWAV(pcm, 24000)
	require.NoError(t, err)
	require.Len(t, wav, 44+len(pcm))

	assert.Equal(t, "RIFF", string(wav[0:4]))
	assert.Equal(t, uint32(36+len(pcm)), binary.LittleEndian.Uint32(wav[4:8]))
	assert.Equal(t, "WAVE", string(wav[8:12]))
	assert.Equal(t, "fmt ", string(wav[12:16]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[20:22]), "PCM format")
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[22:24]), "mono")
	assert.Equal(t, uint32(24000), binary.LittleEndian.Uint32(wav[24:28]))
	assert.Equal(t, uint32(48000), binary.LittleEndian.Uint32(wav[28:32]), "byte rate")
	assert.Equal(t, uint16(2), binary.LittleEndian.Uint16(wav[32:34]), "block align")
	assert.Equal(t, uint16(16), binary.LittleEndian.Uint16(wav[34:36]))
	assert.Equal(t, "data", string(wav[36:40]))
	assert.Equal(t, uint32(len(pcm)), binary.LittleEndian.Uint32(wav[40:44]))
	assert.Equal(t, pcm, wav[44:])
}

func TestEncodeWAVDefaultRate(t *testing.T) {
	wav, err := EncodeWAV(nil, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(DefaultSampleRate), binary.LittleEndian.Uint32(wav[24:28]))
}

func TestPCMSampleRate(t *testing.T) {
	tests := []struct {
		mime   string
		rate   int
		wantOK bool
	}{
		{mime: "audio/L16;codec=pcm;rate=24000", rate: 24000, wantOK: true},
		{mime: "audio/l16; rate=16000", rate: 16000, wantOK: true},
		{mime: "audio/pcm;codec=pcm", rate: DefaultSampleRate, wantOK: true},
		{mime: "audio/L16;rate=abc", rate: DefaultSampleRate, wantOK: true},
		{mime: "audio/wav", wantOK: false},
		{mime: "audio/mpeg", wantOK: false},
		{mime: ";;", wantOK: false},
	}

	for _, tc := range tests {
		t.Run(tc.mime, func(t *testing.T) {
			rate, ok := PCMSampleRate(tc.mime)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.rate, rate)
			}
		})
	}
}

func TestToWAV(t *testing.T) {
	data, mimeType, err := ToWAV([]byte{0, 0}, "audio/L16;codec=pcm;rate=24000")
	require.NoError(t, err)
	assert.Equal(t, WAVMIMEType, mimeType)
	assert.Len(t, data, 46)

	passthrough := []byte("ID3...")
	data, mimeType, err = ToWAV(passthrough, "audio/mpeg")
	require.NoError(t, err)
	assert.Equal(t, "audio/mpeg", mimeType)
	assert.Equal(t, passthrough, data)
}
