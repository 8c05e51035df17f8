package encoderio

import (
	"testing"

	"github.com/hraban/opus"
	"github.com/stretchr/testify/require"

	"github.com/iamf-tools/go-iamf/obu"
)

// fakeExternalEncoder is a minimal ExternalAudioEncoder used only to verify
// the interface shape is satisfiable by a per-codec collaborator.
type fakeExternalEncoder struct {
	initialized bool
	closed      bool
}

func (f *fakeExternalEncoder) Init(CodecParameters) error {
	f.initialized = true
	return nil
}

func (f *fakeExternalEncoder) Encode(pcm []byte) ([]*obu.AudioFrame, error) {
	return []*obu.AudioFrame{obu.NewExplicitAudioFrame(1, pcm)}, nil
}

func (f *fakeExternalEncoder) Close() { f.closed = true }

func TestExternalAudioEncoderInterfaceSatisfaction(t *testing.T) {
	t.Parallel()

	var enc ExternalAudioEncoder = &fakeExternalEncoder{}
	require.NoError(t, enc.Init(CodecParameters{NumChannels: 2, InputSampleRate: 48000, NumSamplesPerFrame: 960})) //nolint:mnd

	frames, err := enc.Encode([]byte{1, 2, 3, 4})
	require.NoError(t, err)
	require.Len(t, frames, 1)

	enc.Close()
	require.True(t, enc.(*fakeExternalEncoder).initialized)
	require.True(t, enc.(*fakeExternalEncoder).closed)
}

func TestOpusEncoderMetadataUsesOpusApplicationEnum(t *testing.T) {
	t.Parallel()

	m := OpusEncoderMetadata{
		Application:             opus.AppAudio,
		TargetBitratePerChannel: 64000, //nolint:mnd
		UseFloatAPI:             true,
	}
	require.Equal(t, opus.AppAudio, m.Application)
}

func TestAacEncoderMetadataFields(t *testing.T) {
	t.Parallel()

	m := AacEncoderMetadata{EnableAfterburner: true, BitrateMode: 1, SignalingMode: "implicit"}
	require.True(t, m.EnableAfterburner)
	require.Equal(t, "implicit", m.SignalingMode)
}
