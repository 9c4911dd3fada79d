package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/lingua-api/internal/generation"
	"github.com/phrazzld/lingua-api/internal/language"
	"github.com/phrazzld/lingua-api/internal/mocks"
	"github.com/phrazzld/lingua-api/internal/platform/logger"
)

func newTestService(t *testing.T, tr, sy *mocks.MockGenerator) *Service {
	t.Helper()
	svc, err := NewService(tr, sy, logger.Discard())
	require.NoError(t, err)
	svc.pickVoice = func() Voice { return Voices[1] }
	return svc
}

func TestNewServiceRequiresBackends(t *testing.T) {
	_, err := NewService(nil, &mocks.MockGenerator{}, nil)
	assert.Error(t, err)
	_, err = NewService(&mocks.MockGenerator{}, nil, nil)
	assert.Error(t, err)
}

func TestTranscribe(t *testing.T) {
	tr := &mocks.MockGenerator{Text: "  Magandang umaga po.\n"}
	svc := newTestService(t, tr, &mocks.MockGenerator{})

	got, err := svc.Transcribe(context.Background(), []byte{1, 2, 3}, "", "tl-PH")
	require.NoError(t, err)
	assert.Equal(t, Transcription{Text: "Magandang umaga po.", Language: "tl-PH", DetectedLanguage: "tl-PH"}, *got)

	req := tr.LastRequest()
	assert.Equal(t, generation.ModelAudio, req.Model)
	assert.Contains(t, req.Prompt, "Tagalog")
	require.Len(t, req.Media, 1)
	assert.Equal(t, DefaultAudioMIMEType, req.Media[0].MIMEType)

	_, err = svc.Transcribe(context.Background(), []byte{1}, "audio/ogg", "tl-PH")
	require.NoError(t, err)
	assert.Equal(t, "audio/ogg", tr.LastRequest().Media[0].MIMEType)
}

func TestTranscribeErrors(t *testing.T) {
	tr := &mocks.MockGenerator{Err: generation.ErrTransientFailure}
	svc := newTestService(t, tr, &mocks.MockGenerator{})
	ctx := context.Background()

	_, err := svc.Transcribe(ctx, []byte{1}, "", "xx-XX")
	assert.True(t, errors.Is(err, language.ErrUnsupported))

	_, err = svc.Transcribe(ctx, nil, "", "en-US")
	assert.True(t, errors.Is(err, ErrEmptyAudio))

	_, err = svc.Transcribe(ctx, []byte{1}, "", "en-US")
	assert.True(t, errors.Is(err, generation.ErrTransientFailure))
}

func TestSynthesizeWrapsPCM(t *testing.T) {
	pcm := []byte{0x01, 0x00, 0xff, 0x7f}
	sy := &mocks.MockGenerator{Audio: &generation.Audio{Data: pcm, MIMEType: "audio/L16;codec=pcm;rate=24000"}}
	svc := newTestService(t, &mocks.MockGenerator{}, sy)

	got, err := svc.Synthesize(context.Background(), " Hola ", "es-ES")
	require.NoError(t, err)
	assert.Equal(t, "Hola", sy.LastSpeechRequest().Text)
	assert.Equal(t, "Charon", sy.LastSpeechRequest().Voice)
	assert.Equal(t, "male", got.Voice)
	assert.Equal(t, "Charon", got.VoiceName)
	assert.Equal(t, "audio/wav", got.MIMEType)
	assert.Equal(t, "es-ES", got.Language)

	data, err := base64.StdEncoding.DecodeString(got.AudioContent)
	require.NoError(t, err)
	require.Len(t, data, 44+len(pcm))
	assert.Equal(t, []byte("RIFF"), data[:4])
	assert.True(t, bytes.Equal(pcm, data[44:]))
}

func TestSynthesizePassesThroughEncodedAudio(t *testing.T) {
	sy := &mocks.MockGenerator{Audio: &generation.Audio{Data: []byte("ID3mp3"), MIMEType: "audio/mpeg"}}
	svc := newTestService(t, &mocks.MockGenerator{}, sy)

	got, err := svc.Synthesize(context.Background(), "Hello", "en-US")
	require.NoError(t, err)
	assert.Equal(t, "audio/mpeg", got.MIMEType)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("ID3mp3")), got.AudioContent)
}

func TestSynthesizeErrors(t *testing.T) {
	sy := &mocks.MockGenerator{Err: generation.ErrContentBlocked}
	svc := newTestService(t, &mocks.MockGenerator{}, sy)
	ctx := context.Background()

	_, err := svc.Synthesize(ctx, "Hello", "xx-XX")
	assert.True(t, errors.Is(err, language.ErrUnsupported))

	_, err = svc.Synthesize(ctx, "   ", "en-US")
	assert.True(t, errors.Is(err, ErrEmptyText))

	_, err = svc.Synthesize(ctx, "Hello", "en-US")
	assert.True(t, errors.Is(err, generation.ErrContentBlocked))
}

func TestVoicesHaveTypes(t *testing.T) {
	require.Len(t, Voices, 5)
	for _, v := range Voices {
		assert.Contains(t, []string{"female", "male"}, v.Type, v.Name)
	}
}
