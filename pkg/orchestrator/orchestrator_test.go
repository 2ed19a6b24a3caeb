package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/jpeg"
	"testing"

	"github.com/user/framelens/pkg/adapters/ggrenderer"
	"github.com/user/framelens/pkg/mocks"
	"github.com/user/framelens/pkg/palette"
	"github.com/user/framelens/pkg/pipeline"
	"github.com/user/framelens/pkg/ports"
	"github.com/user/framelens/pkg/stages/caption"
	"github.com/user/framelens/pkg/stages/classify"
	"github.com/user/framelens/pkg/stages/composite"
	"github.com/user/framelens/pkg/stages/layout"
)

// encodeJPEG produces an in-memory photo of the given dimensions.
func encodeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode test photo: %v", err)
	}
	return buf.Bytes()
}

type testHarness struct {
	orch *Orchestrator
	fs   *mocks.FileSystem
	sink *mocks.DebugSink
	log  *mocks.Logger
}

func newTestHarness(t *testing.T, renderer ports.Renderer) *testHarness {
	t.Helper()

	fs := mocks.NewFileSystem()
	sink := mocks.NewDebugSink()
	log := mocks.NewLogger()

	reader := &mocks.MetadataReader{
		ReadMetaFunc: func(data []byte) (ports.PhotoMeta, error) {
			return ports.PhotoMeta{CameraModel: "X-T4", ISO: 200}, nil
		},
	}

	orch := New(
		classify.NewStage(),
		caption.NewStage(reader, log),
		composite.NewStage(renderer, sink, log),
		renderer,
		fs,
		sink,
		log,
	)
	return &testHarness{orch: orch, fs: fs, sink: sink, log: log}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.InputPath = "photo.jpg"
	cfg.OutputPath = "out.jpg"
	cfg.ExportLongSide = 350
	cfg.PreviewHeight = 140
	return cfg
}

func TestRun(t *testing.T) {
	renderer := ggrenderer.New()
	h := newTestHarness(t, renderer)
	h.fs.Files["photo.jpg"] = encodeJPEG(t, 150, 200)

	cfg := testConfig()
	cfg.PreviewPath = "preview.png"

	if err := h.orch.Run(context.Background(), cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// export output written at the export resolution
	out, ok := h.fs.Files["out.jpg"]
	if !ok {
		t.Fatal("expected out.jpg to be written")
	}
	img, err := jpeg.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	wantW, wantH := pipeline.RatioPortrait.CanvasSize(350)
	if img.Bounds().Dx() != wantW || img.Bounds().Dy() != wantH {
		t.Errorf("output size %dx%d, want %dx%d", img.Bounds().Dx(), img.Bounds().Dy(), wantW, wantH)
	}

	// preview written too, scaled by the device pixel ratio
	if _, ok := h.fs.Files["preview.png"]; !ok {
		t.Error("expected preview.png to be written")
	}

	// the debug sink saw both passes, the metadata and the thumbnail
	if _, ok := h.sink.GeometryJSON["preview"]; !ok {
		t.Error("expected preview geometry to be recorded")
	}
	data, ok := h.sink.GeometryJSON["export"]
	if !ok {
		t.Fatal("expected export geometry to be recorded")
	}

	// the recorded geometry round-trips and matches the export pass
	var geom pipeline.Geometry
	if err := json.Unmarshal(data, &geom); err != nil {
		t.Fatalf("unmarshal export geometry: %v", err)
	}
	expected := layout.ComputeGeometry(wantW, wantH, pipeline.RatioPortrait, pipeline.SpacingM, 150, 200)
	if geom != expected {
		t.Errorf("export geometry mismatch: expected %+v, got %+v", expected, geom)
	}

	if h.sink.MetaJSON == nil {
		t.Error("expected caption metadata to be recorded")
	}
	if len(h.sink.Thumbnails) != 1 {
		t.Errorf("expected 1 thumbnail, got %d", len(h.sink.Thumbnails))
	}

	if !h.log.Logged("Render completed: %dx%d") {
		t.Error("expected a render completion log entry")
	}
	if !h.log.Logged("Export completed in %d ms") {
		t.Error("expected an export timing log entry")
	}
}

func TestRun_UnsupportedAspectRatio(t *testing.T) {
	h := newTestHarness(t, ggrenderer.New())
	h.fs.Files["photo.jpg"] = encodeJPEG(t, 100, 100)

	err := h.orch.Run(context.Background(), testConfig())
	if !errors.Is(err, ErrUnsupportedAspectRatio) {
		t.Errorf("expected ErrUnsupportedAspectRatio, got %v", err)
	}
	if _, ok := h.fs.Files["out.jpg"]; ok {
		t.Error("rejected photo must not produce output")
	}
}

func TestRun_MissingInput(t *testing.T) {
	h := newTestHarness(t, ggrenderer.New())

	if err := h.orch.Run(context.Background(), testConfig()); err == nil {
		t.Error("expected error for missing input file")
	}
}

func TestRun_NoSurface(t *testing.T) {
	real := ggrenderer.New()
	renderer := &mocks.Renderer{
		DecodeImageFunc: real.DecodeImage,
		// CreateCanvasFunc left nil: no drawing surface
	}
	h := newTestHarness(t, renderer)
	h.fs.Files["photo.jpg"] = encodeJPEG(t, 150, 200)

	err := h.orch.Run(context.Background(), testConfig())
	if !errors.Is(err, ErrNoSurface) {
		t.Errorf("expected ErrNoSurface, got %v", err)
	}
}

func TestRun_CaptionOverrides(t *testing.T) {
	h := newTestHarness(t, ggrenderer.New())
	h.fs.Files["photo.jpg"] = encodeJPEG(t, 150, 200)

	cfg := testConfig()
	cfg.CaptionLine1 = "Tokyo, 2024"

	if err := h.orch.Run(context.Background(), cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// manual captions bypass metadata extraction entirely
	if h.sink.MetaJSON != nil {
		t.Error("expected no metadata extraction with a manual caption")
	}
}

func TestPreview(t *testing.T) {
	h := newTestHarness(t, ggrenderer.New())
	h.fs.Files["photo.jpg"] = encodeJPEG(t, 150, 200)

	cfg := testConfig()
	cfg.OutputPath = ""
	cfg.PreviewPath = "preview.png"

	if err := h.orch.Preview(context.Background(), cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := h.fs.Files["preview.png"]; !ok {
		t.Error("expected preview.png to be written")
	}
	if _, ok := h.fs.Files["out.jpg"]; ok {
		t.Error("preview must not run the export pass")
	}
}

func TestRun_AutoColorRequiresPhotoPixels(t *testing.T) {
	h := newTestHarness(t, ggrenderer.New())
	h.fs.Files["photo.jpg"] = encodeJPEG(t, 150, 200)

	cfg := testConfig()
	cfg.Color = palette.Selection{Base: palette.ColorAuto}

	// the photo is loaded, so auto sampling succeeds
	if err := h.orch.Run(context.Background(), cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestInspect(t *testing.T) {
	h := newTestHarness(t, ggrenderer.New())
	h.fs.Files["photo.jpg"] = encodeJPEG(t, 150, 200)

	result, err := h.orch.Inspect(context.Background(), "photo.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Width != 150 || result.Height != 200 {
		t.Errorf("unexpected dimensions %dx%d", result.Width, result.Height)
	}
	if result.Class != pipeline.Source3x4 || !result.Accepted {
		t.Errorf("unexpected verdict %+v", result)
	}
	if result.Caption.Line1 != "Shot on X-T4" {
		t.Errorf("unexpected caption %+v", result.Caption)
	}
}

// Inspect reports unsupported photos instead of rejecting them.
func TestInspect_Unsupported(t *testing.T) {
	h := newTestHarness(t, ggrenderer.New())
	h.fs.Files["photo.jpg"] = encodeJPEG(t, 100, 100)

	result, err := h.orch.Inspect(context.Background(), "photo.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Accepted || result.Class != pipeline.SourceUnsupported {
		t.Errorf("unexpected verdict %+v", result)
	}
}
