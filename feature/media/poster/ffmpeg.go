package poster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Generator produces a still image from video bytes.
type Generator interface {
	Generate(ctx context.Context, video []byte) ([]byte, error)
}

// Defaults match the posters produced for the original uploads.
const (
	DefaultTimemark = "1"
	DefaultWidth    = 640
)

// FFmpeg grabs a single frame with the ffmpeg binary.
type FFmpeg struct {
	// Path is the ffmpeg binary, resolved through PATH when relative.
	Path string
	// Timemark is the seek position in seconds.
	Timemark string
	// Width is the output width; height keeps the aspect ratio.
	Width int
}

// NewFFmpeg creates a generator using the binary at path.
func NewFFmpeg(path string) *FFmpeg {
	if path == "" {
		path = "ffmpeg"
	}
	return &FFmpeg{Path: path, Timemark: DefaultTimemark, Width: DefaultWidth}
}

// Available reports whether the ffmpeg binary can be found.
func (f *FFmpeg) Available() bool {
	_, err := exec.LookPath(f.Path)
	return err == nil
}

// Generate writes video to a temporary file, since most containers need a
// seekable input, and returns the JPEG frame ffmpeg writes to stdout.
func (f *FFmpeg) Generate(ctx context.Context, video []byte) ([]byte, error) {
	if len(video) == 0 {
		return nil, errors.New("empty video")
	}

	tmp, err := os.CreateTemp("", "poster-src-*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(video); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	cmd := exec.CommandContext(ctx, f.Path, f.args(tmp.Name())...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("ffmpeg: %w", ctx.Err())
		}
		return nil, fmt.Errorf("ffmpeg: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	if stdout.Len() == 0 {
		return nil, errors.New("ffmpeg produced no frame")
	}

	return stdout.Bytes(), nil
}

func (f *FFmpeg) args(input string) []string {
	width := f.Width
	if width <= 0 {
		width = DefaultWidth
	}
	timemark := f.Timemark
	if timemark == "" {
		timemark = DefaultTimemark
	}
	return []string{
		"-loglevel", "error",
		"-ss", timemark,
		"-i", input,
		"-frames:v", "1",
		"-vf", fmt.Sprintf("scale=%d:-2", width),
		"-f", "image2",
		"-c:v", "mjpeg",
		"pipe:1",
	}
}
