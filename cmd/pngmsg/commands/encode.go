package commands

import (
	"io"

	"github.com/docker/pngmsg/internal/utils"
	"github.com/docker/pngmsg/pkg/png"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// stdinMessage makes encode read the message from standard input.
const stdinMessage = "-"

func newEncodeCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "encode PATH CHUNK_TYPE MESSAGE [OUTPUT]",
		Short: "Hide a message in a new chunk",
		Long: `Append a chunk of type CHUNK_TYPE holding MESSAGE to the PNG at PATH.

The result is written to OUTPUT (or --output) and replaces PATH when no
output is given. Pass "-" as MESSAGE to read it from standard input.

Examples:
  pngmsg encode cat.png ruSt "meet at noon"
  pngmsg encode cat.png ruSt "meet at noon" secret.png
  echo "meet at noon" | pngmsg encode cat.png ruSt - -o secret.png`,
		Args: requireArgRange(3, 4, "encode", "PATH CHUNK_TYPE MESSAGE [OUTPUT]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			var positional string
			if len(args) == 4 {
				positional = args[3]
			}
			out, err := outputPath(cmd, args[0], positional, output)
			if err != nil {
				return err
			}
			return runEncode(cmd, args[0], args[1], args[2], out)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the result to this file instead of PATH")
	return cmd
}

func runEncode(cmd *cobra.Command, path, code, message, output string) error {
	chunkType, err := png.ParseChunkType(code)
	if err != nil {
		return err
	}
	if !chunkType.IsReservedBitValid() {
		log.Warnf("chunk type %s has a lowercase third letter; strict PNG readers may reject the file", chunkType)
	}
	if chunkType.IsCritical() {
		log.Warnf("chunk type %s is critical; viewers that do not know it will refuse to display the image", chunkType)
	}

	var data []byte
	if message == stdinMessage {
		data, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return errors.Wrap(err, "reading message from stdin")
		}
	} else {
		data = []byte(message)
	}

	p, err := loadPNG(path)
	if err != nil {
		return err
	}

	chunk := png.NewChunk(chunkType, data)
	p.Append(chunk)
	log.WithFields(map[string]interface{}{
		"chunk":   chunkType.String(),
		"crc":     chunk.CRC(),
		"message": utils.SanitizeForLog(string(data), utils.DefaultPreviewLength),
	}).Debug("appended chunk")

	if err := savePNG(output, p); err != nil {
		return err
	}
	cmd.Printf("Hid %d byte message in %s chunk of %s\n", chunk.Length(), chunkType, output)
	return nil
}
