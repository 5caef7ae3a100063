package plot

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Viewer shows a rendered PNG interactively.
type Viewer interface {
	View(ctx context.Context, png []byte) error
}

// SystemViewer opens images with the platform's default application.
// Command overrides the opener; it receives the image path as its last
// argument.
type SystemViewer struct {
	Command []string
}

// View writes png to a temporary file and starts the opener on it. The file
// is left for the viewer to read.
func (v SystemViewer) View(ctx context.Context, png []byte) error {
	f, err := os.CreateTemp("", "swls-*.png")
	if err != nil {
		return err
	}
	if _, err := f.Write(png); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	argv := v.Command
	if len(argv) == 0 {
		argv = opener()
	}
	if len(argv) == 0 {
		return fmt.Errorf("no image viewer known for %s", runtime.GOOS)
	}
	args := append(append([]string(nil), argv[1:]...), f.Name())
	return exec.CommandContext(ctx, argv[0], args...).Run()
}

func opener() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"open"}
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler"}
	case "linux", "freebsd", "openbsd", "netbsd":
		return []string{"xdg-open"}
	default:
		return nil
	}
}
