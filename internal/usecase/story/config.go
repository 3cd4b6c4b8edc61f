package story

// RenditionSize is one fixed thumbnail target.
type RenditionSize struct {
	Label  string
	Width  int
	Height int
}

// RenditionSizes lists the targets every successful derivation must
// produce, in order. The first entry is the canonical thumbnail.
var RenditionSizes = []RenditionSize{
	{Label: "small", Width: 150, Height: 150},
	{Label: "medium", Width: 300, Height: 300},
	{Label: "large", Width: 600, Height: 600},
}

const (
	// DefaultMaxOriginalSizeBytes is the ceiling above which originals are
	// re-encoded before renditions are derived.
	DefaultMaxOriginalSizeBytes = int64(50 << 20)

	// DefaultCompressionQuality is the quality level used when an
	// oversized image is re-encoded.
	DefaultCompressionQuality = 85

	// FrameOffsetSecs is where video frames are grabbed. Not zero: first
	// frames are frequently black.
	FrameOffsetSecs = 1.0

	// FallbackProbeDurationSecs is assumed when ffprobe cannot report a
	// duration. Kept as a named constant on purpose: the behaviour is
	// intentional degraded mode, not a silent default.
	FallbackProbeDurationSecs = 5.0

	// MaxPreviewSecs caps the animated preview length.
	MaxPreviewSecs = 5.0
)

var imageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/bmp":  true,
	"image/webp": true,
}

var videoContentTypes = map[string]bool{
	"video/mp4":       true,
	"video/avi":       true,
	"video/quicktime": true,
	"video/x-msvideo": true,
	"video/webm":      true,
}

var imageExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true,
	"bmp": true, "webp": true, "tiff": true,
}

var videoExtensions = map[string]bool{
	"mp4": true, "avi": true, "mov": true, "wmv": true,
	"flv": true, "webm": true, "mkv": true, "m4v": true,
}
