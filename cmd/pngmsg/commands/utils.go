package commands

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/docker/pngmsg/internal/utils"
	"github.com/docker/pngmsg/pkg/png"
	"github.com/docker/pngmsg/pkg/pngfile"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Exit statuses returned by the pngmsg binary.
const (
	ExitError            = 1
	ExitUsage            = 2
	ExitIO               = 3
	ExitInvalidSignature = 4
	ExitInvalidChunkType = 5
	ExitChunkParse       = 6
	ExitChunkNotFound    = 7
	ExitTextDecode       = 8
)

// ErrUsage marks invalid invocations: missing or conflicting arguments.
var ErrUsage = errors.New("usage error")

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.Is(err, png.ErrInvalidSignature):
		return ExitInvalidSignature
	case errors.Is(err, png.ErrChunkNotFound):
		return ExitChunkNotFound
	case errors.Is(err, png.ErrInvalidChunkType):
		return ExitInvalidChunkType
	case errors.Is(err, png.ErrChunkParse):
		return ExitChunkParse
	case errors.Is(err, png.ErrTextDecode):
		return ExitTextDecode
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return ExitIO
	}
	return ExitError
}

func usageErrorf(cmd *cobra.Command, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s\nUsage: %s", ErrUsage, fmt.Sprintf(format, args...), cmd.UseLine())
}

// requireExactArgs returns a cobra.PositionalArgs that reports missing or
// extra arguments as a usage error naming what was expected.
func requireExactArgs(n int, name string, expected string) cobra.PositionalArgs {
	return requireArgRange(n, n, name, expected)
}

func requireArgRange(minArgs, maxArgs int, name string, expected string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) >= minArgs && (maxArgs < 0 || len(args) <= maxArgs) {
			return nil
		}
		if len(args) < minArgs {
			return usageErrorf(cmd, "%q requires %s", name, expected)
		}
		return usageErrorf(cmd, "%q accepts at most %d arguments, got %d: %s",
			name, maxArgs, len(args), strings.Join(args, " "))
	}
}

// loadPNG reads and parses the file at path.
func loadPNG(path string) (*png.PNG, error) {
	fileLog := log.WithField("path", utils.SanitizeForLog(path, 0))

	data, err := pngfile.Read(path)
	if err != nil {
		fileLog.WithError(err).Debug("read failed")
		return nil, err
	}
	fileLog.WithField("size", len(data)).Debug("read file")

	p, err := png.Parse(data)
	if err != nil {
		fileLog.WithError(err).Debug("parse failed")
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	fileLog.Debugf("parsed %d chunks", len(p.Chunks()))
	return p, nil
}

// savePNG serializes p and atomically writes it to path.
func savePNG(path string, p *png.PNG) error {
	data := p.Bytes()
	if err := pngfile.Write(path, data); err != nil {
		return err
	}
	log.WithFields(map[string]interface{}{
		"path":   utils.SanitizeForLog(path, 0),
		"size":   len(data),
		"chunks": len(p.Chunks()),
	}).Info("wrote file")
	return nil
}

// outputPath picks where a modified file is written. An explicit output
// given both positionally and with --output must agree.
func outputPath(cmd *cobra.Command, input, positional, flag string) (string, error) {
	switch {
	case positional != "" && flag != "" && positional != flag:
		return "", usageErrorf(cmd, "output given twice: %q and --output %q", positional, flag)
	case positional != "":
		return positional, nil
	case flag != "":
		return flag, nil
	}
	return input, nil
}
