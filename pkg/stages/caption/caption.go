// Package caption implements the caption text builder stage. It turns photo
// metadata into the two caption lines the compositor draws.
package caption

import (
	"context"
	"fmt"
	"strings"

	"github.com/user/framelens/pkg/pipeline"
	"github.com/user/framelens/pkg/ports"
)

// ShotOnPrefix is the recognized first-line prefix. The compositor renders
// the prefix at regular weight and the camera name after it at bold weight.
const ShotOnPrefix = "Shot on "

// Build derives the caption lines from photo metadata. The first line names
// the camera; the second line lists the exposure settings, falling back to
// the capture date when none are present. Missing metadata yields empty
// lines, which the compositor skips.
func Build(meta ports.PhotoMeta) pipeline.CaptionLines {
	var lines pipeline.CaptionLines

	camera := cameraName(meta)
	if camera != "" {
		lines.Line1 = ShotOnPrefix + camera
	}

	var parts []string
	if meta.FNumber > 0 {
		parts = append(parts, fmt.Sprintf("f/%.1f", meta.FNumber))
	}
	if meta.ExposureTime != "" {
		parts = append(parts, meta.ExposureTime+"s")
	}
	if meta.ISO > 0 {
		parts = append(parts, fmt.Sprintf("ISO %d", meta.ISO))
	}
	if meta.FocalLength > 0 {
		parts = append(parts, fmt.Sprintf("%.0fmm", meta.FocalLength))
	}

	if len(parts) > 0 {
		lines.Line2 = strings.Join(parts, "  ")
	} else if !meta.TakenAt.IsZero() {
		lines.Line2 = meta.TakenAt.Format("2006.01.02")
	}

	return lines
}

// cameraName prefers the model string; many vendors embed the make in the
// model, so the make is only prepended when it adds information.
func cameraName(meta ports.PhotoMeta) string {
	model := strings.TrimSpace(meta.CameraModel)
	make := strings.TrimSpace(meta.CameraMake)
	if model == "" {
		return make
	}
	if make != "" && !strings.Contains(strings.ToLower(model), strings.ToLower(firstWord(make))) {
		return make + " " + model
	}
	return model
}

func firstWord(s string) string {
	if i := strings.IndexByte(s, ' '); i > 0 {
		return s[:i]
	}
	return s
}

// SplitShotOn splits a first line into its prefix and camera name segments.
// Lines without the prefix return an empty prefix and the full text as the
// camera segment.
func SplitShotOn(line string) (prefix, camera string) {
	if strings.HasPrefix(line, ShotOnPrefix) {
		return ShotOnPrefix, line[len(ShotOnPrefix):]
	}
	return "", line
}

// Stage builds caption lines from photo bytes through a MetadataReader.
type Stage struct {
	reader ports.MetadataReader
	logger ports.Logger
}

// NewStage creates a new caption stage.
func NewStage(reader ports.MetadataReader, logger ports.Logger) *Stage {
	return &Stage{
		reader: reader,
		logger: logger.WithComponent("caption"),
	}
}

// Execute extracts metadata and builds the caption lines. Photos without
// metadata produce empty lines, not an error.
func (s *Stage) Execute(ctx context.Context, input pipeline.CaptionInput) (pipeline.CaptionResult, error) {
	meta, err := s.reader.ReadMeta(input.Data)
	if err != nil {
		return pipeline.CaptionResult{}, fmt.Errorf("read metadata: %w", err)
	}

	lines := Build(meta)
	if lines.Empty() {
		s.logger.Debug("No caption metadata found")
	} else {
		s.logger.Debug("Caption built: %q / %q", lines.Line1, lines.Line2)
	}

	return pipeline.CaptionResult{Lines: lines}, nil
}
