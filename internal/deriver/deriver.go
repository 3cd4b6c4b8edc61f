package deriver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/festalab/stories-ms-go/internal/db"
	"github.com/festalab/stories-ms-go/internal/logger"
	"github.com/festalab/stories-ms-go/internal/model"
	"github.com/festalab/stories-ms-go/internal/port"
	"github.com/festalab/stories-ms-go/internal/usecase/story"
)

// Config tunes the local derivation pipeline.
type Config struct {
	// StagingDir holds staged originals and derivation outputs. Created on
	// first use when missing.
	StagingDir string
	// MaxOriginalSizeBytes triggers re-encoding of oversized originals.
	// Zero means the default ceiling.
	MaxOriginalSizeBytes int64
	// CompressionQuality is the -q:v value for oversized images. Zero
	// means the default.
	CompressionQuality int
	// PreviewEnabled turns on the short animated GIF for videos.
	PreviewEnabled bool
}

// Deriver produces fixed-size renditions from staged originals by driving
// an external transcoder.
type Deriver struct {
	cfg Config
	tc  port.Transcoder
}

// compile-time check: *Deriver must satisfy port.AssetDeriver
var _ port.AssetDeriver = (*Deriver)(nil)

func NewDeriver(cfg Config, tc port.Transcoder) *Deriver {
	if cfg.MaxOriginalSizeBytes <= 0 {
		cfg.MaxOriginalSizeBytes = story.DefaultMaxOriginalSizeBytes
	}
	if cfg.CompressionQuality <= 0 {
		cfg.CompressionQuality = story.DefaultCompressionQuality
	}
	return &Deriver{cfg: cfg, tc: tc}
}

func (d *Deriver) Stage(ctx context.Context, r io.Reader, originalFilename string) (string, error) {
	if err := os.MkdirAll(d.cfg.StagingDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", story.ErrTempFileCreation, err)
	}

	ext := strings.ToLower(filepath.Ext(originalFilename))
	name := db.NewUUID().String() + "_original" + ext
	dest := filepath.Join(d.cfg.StagingDir, name)

	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("%w: %v", story.ErrTempFileCreation, err)
	}
	written, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dest)
		return "", fmt.Errorf("%w: %v", story.ErrTempFileCreation, err)
	}
	if written == 0 {
		_ = os.Remove(dest)
		return "", fmt.Errorf("%w: uploaded content is empty", story.ErrTempFileCreation)
	}

	return dest, nil
}

func (d *Deriver) Derive(ctx context.Context, stagedPath, mediaCategory string) (res *port.DerivationResult, err error) {
	var created []string
	defer func() {
		if err == nil {
			return
		}
		for _, f := range created {
			if rmErr := os.Remove(f); rmErr != nil && !os.IsNotExist(rmErr) {
				logger.Warnf(ctx, "failed to remove %q after derivation error: %v", f, rmErr)
			}
		}
	}()

	info, err := os.Stat(stagedPath)
	if err != nil {
		return nil, fmt.Errorf("staged file %q is gone: %w", stagedPath, err)
	}

	sourcePath := stagedPath
	if info.Size() > d.cfg.MaxOriginalSizeBytes {
		logger.Infof(ctx, "original %q is %d bytes, re-encoding...", stagedPath, info.Size())
		compressed, cErr := d.compress(ctx, stagedPath, mediaCategory)
		if cErr != nil {
			return nil, cErr
		}
		created = append(created, compressed)
		// The oversized staged file is only dropped once its replacement
		// exists.
		if rmErr := os.Remove(stagedPath); rmErr != nil {
			logger.Warnf(ctx, "failed to remove oversized original %q: %v", stagedPath, rmErr)
		}
		sourcePath = compressed
	}

	renditions := make([]port.Rendition, 0, len(story.RenditionSizes))
	for _, size := range story.RenditionSizes {
		out := d.siblingPath(sourcePath, "_"+size.Label, ".jpg")
		created = append(created, out)

		switch mediaCategory {
		case model.CategoryImage:
			err = d.renderImageRendition(ctx, sourcePath, out, size)
		case model.CategoryVideo:
			err = d.renderVideoFrame(ctx, sourcePath, out, size)
		default:
			err = fmt.Errorf("unknown media category %q", mediaCategory)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s rendition: %v", story.ErrThumbnailGeneration, size.Label, err)
		}
		if err = requireNonEmpty(out); err != nil {
			return nil, fmt.Errorf("%w: %s rendition: %v", story.ErrThumbnailGeneration, size.Label, err)
		}

		renditions = append(renditions, port.Rendition{
			Label:     size.Label,
			Width:     size.Width,
			Height:    size.Height,
			Format:    "jpg",
			LocalPath: out,
		})
	}

	res = &port.DerivationResult{
		MediaCategory:     mediaCategory,
		Renditions:        renditions,
		OriginalLocalPath: sourcePath,
	}

	if mediaCategory == model.CategoryVideo && d.cfg.PreviewEnabled {
		preview := d.siblingPath(sourcePath, "_preview", ".gif")
		if pErr := d.renderPreview(ctx, sourcePath, preview); pErr != nil {
			// A story survives without its preview.
			logger.Warnf(ctx, "failed generating animated preview for %q: %v", sourcePath, pErr)
			_ = os.Remove(preview)
		} else if nErr := requireNonEmpty(preview); nErr != nil {
			logger.Warnf(ctx, "discarding unusable animated preview for %q: %v", sourcePath, nErr)
			_ = os.Remove(preview)
		} else {
			res.AnimatedPreviewPath = preview
		}
	}

	return res, nil
}

// compress re-encodes an oversized original next to the staged file and
// returns the new path.
func (d *Deriver) compress(ctx context.Context, stagedPath, mediaCategory string) (string, error) {
	switch mediaCategory {
	case model.CategoryImage:
		out := d.siblingPath(stagedPath, "_compressed", ".jpg")
		err := d.tc.Run(ctx, []string{
			"-y", "-i", stagedPath,
			"-q:v", fmt.Sprint(jpegScaleQuality(d.cfg.CompressionQuality)),
			out,
		})
		if err != nil {
			_ = os.Remove(out)
			return "", err
		}
		if err := requireNonEmpty(out); err != nil {
			_ = os.Remove(out)
			return "", fmt.Errorf("%w: %v", story.ErrTranscodeFailed, err)
		}
		return out, nil
	case model.CategoryVideo:
		out := d.siblingPath(stagedPath, "_compressed", ".mp4")
		err := d.tc.Run(ctx, []string{
			"-y", "-i", stagedPath,
			"-c:v", "libx264",
			"-profile:v", "high", "-level", "4.1",
			"-pix_fmt", "yuv420p",
			"-crf", "26",
			"-vf", "scale=1920:1080:force_original_aspect_ratio=decrease,pad=1920:1080:(ow-iw)/2:(oh-ih)/2",
			"-r", "30",
			"-c:a", "aac", "-b:a", "128k", "-ar", "48000", "-ac", "2",
			"-movflags", "+faststart",
			out,
		})
		if err != nil {
			_ = os.Remove(out)
			return "", err
		}
		if err := requireNonEmpty(out); err != nil {
			_ = os.Remove(out)
			return "", fmt.Errorf("%w: %v", story.ErrTranscodeFailed, err)
		}
		return out, nil
	default:
		return "", fmt.Errorf("unknown media category %q", mediaCategory)
	}
}

func (d *Deriver) renderImageRendition(ctx context.Context, src, out string, size story.RenditionSize) error {
	filter := fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d",
		size.Width, size.Height, size.Width, size.Height)
	return d.tc.Run(ctx, []string{"-y", "-i", src, "-vf", filter, out})
}

func (d *Deriver) renderVideoFrame(ctx context.Context, src, out string, size story.RenditionSize) error {
	offset := story.FrameOffsetSecs
	duration, err := d.tc.ProbeDuration(ctx, src)
	if err != nil {
		logger.Warnf(ctx, "failed probing %q, assuming %gs: %v", src, story.FallbackProbeDurationSecs, err)
		duration = story.FallbackProbeDurationSecs
	}
	// Clips shorter than the offset still succeed: grab the first frame.
	if duration <= offset {
		offset = 0
	}

	filter := fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2:white",
		size.Width, size.Height, size.Width, size.Height)
	return d.tc.Run(ctx, []string{
		"-y",
		"-ss", fmt.Sprintf("%.3f", offset),
		"-i", src,
		"-vframes", "1",
		"-vf", filter,
		out,
	})
}

func (d *Deriver) renderPreview(ctx context.Context, src, out string) error {
	return d.tc.Run(ctx, []string{
		"-y",
		"-t", fmt.Sprintf("%.0f", story.MaxPreviewSecs),
		"-i", src,
		"-vf", "fps=15,scale=480:320:force_original_aspect_ratio=decrease",
		out,
	})
}

// siblingPath replaces a file's "_original" suffix and extension with the
// given ones, keeping it in the same directory.
func (d *Deriver) siblingPath(src, suffix, ext string) string {
	base := filepath.Base(src)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.TrimSuffix(base, "_original")
	base = strings.TrimSuffix(base, "_compressed")
	return filepath.Join(filepath.Dir(src), base+suffix+ext)
}

// jpegScaleQuality maps a 1-100 quality to ffmpeg's inverted 2-31 -q:v
// scale.
func jpegScaleQuality(quality int) int {
	if quality > 100 {
		quality = 100
	}
	if quality < 1 {
		quality = 1
	}
	q := 2 + (100-quality)*29/99
	return q
}

func requireNonEmpty(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("output %q was not produced", path)
		}
		return err
	}
	if info.Size() == 0 {
		return fmt.Errorf("output %q is empty", path)
	}
	return nil
}
