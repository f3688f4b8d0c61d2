package merge

import (
	"fmt"

	"fixmerge/models"
)

// Profile is the backend-specific part of the merge command: flags placed
// before the input and the video codec flags.
type Profile struct {
	PreInput   []string
	VideoCodec []string
}

// profiles maps every backend to its command profile. BackendNone has empty
// groups and falls through to ffmpeg's default software encoder.
var profiles = map[models.Backend]Profile{
	models.BackendNone: {},
	models.BackendCUDA: {
		PreInput: []string{"-hwaccel", "nvdec"},
		VideoCodec: []string{
			"-c:v", "h264_nvenc",
			"-rc:v", "vbr",
			"-cq:v", "28",
			"-preset:v", "fast",
			"-tune:v", "hq",
			"-profile:v", "main",
			"-threads", "8",
		},
	},
	models.BackendVAAPI: {
		PreInput: []string{
			"-hwaccel", "vaapi",
			"-hwaccel_output_format", "vaapi",
		},
		VideoCodec: []string{"-c:v", "h264_vaapi"},
	},
	models.BackendVideoToolbox: {
		VideoCodec: []string{
			"-c:v", "h264_videotoolbox",
			"-crf", "28",
			"-threads", "8",
			"-maxrate", "20M",
			"-bufsize", "25M",
			"-preset:v", "veryfast",
			"-tune:v", "fastdecode",
			"-profile:v", "main",
			"-level:v", "4.0",
		},
	},
	models.BackendQSV: {
		VideoCodec: []string{
			"-c:v", "h264_qsv",
			"-crf", "28",
			"-preset:v", "veryfast",
			"-tune:v", "fastdecode",
			"-profile:v", "main",
			"-global_quality", "28",
			"-look_ahead", "1",
			"-look_ahead_depth", "40",
			"-look_ahead_downsampling", "2x",
			"-threads", "8",
			"-async_depth", "8",
		},
	},
}

// ProfileFor returns the command profile of backend. The zero Backend is
// treated as BackendNone.
func ProfileFor(backend models.Backend) (Profile, error) {
	if backend == "" {
		backend = models.BackendNone
	}
	p, ok := profiles[backend]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", models.ErrUnsupportedBackend, string(backend))
	}
	return Profile{
		PreInput:   append([]string(nil), p.PreInput...),
		VideoCodec: append([]string(nil), p.VideoCodec...),
	}, nil
}
