package png

import (
	"errors"
	"fmt"

	"github.com/containerd/errdefs"
)

var (
	// ErrInvalidChunkType is returned when bytes or text do not form four ASCII letters.
	ErrInvalidChunkType = fmt.Errorf("invalid chunk type: %w", errdefs.ErrInvalidArgument)
	// ErrChunkParse is returned for truncated or malformed chunks and checksum
	// mismatches. Checksum mismatches also match errdefs.IsDataLoss.
	ErrChunkParse       = errors.New("chunk parse error")
	// ErrInvalidSignature is returned when a buffer does not start with the PNG magic.
	ErrInvalidSignature = fmt.Errorf("invalid PNG signature: %w", errdefs.ErrInvalidArgument)
	ErrChunkNotFound    = fmt.Errorf("chunk not found: %w", errdefs.ErrNotFound)
	ErrTextDecode       = fmt.Errorf("chunk data is not valid UTF-8: %w", errdefs.ErrInvalidArgument)
)
