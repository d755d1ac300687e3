package commands

import (
	"fmt"

	"github.com/docker/pngmsg/pkg/png"
	"github.com/spf13/cobra"
)

func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode PATH CHUNK_TYPE",
		Short: "Print the message stored in a chunk",
		Long: `Print the data of the first CHUNK_TYPE chunk in the PNG at PATH as text.

Examples:
  pngmsg decode secret.png ruSt`,
		Args: requireExactArgs(2, "decode", "PATH CHUNK_TYPE"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd, args[0], args[1])
		},
	}
	return cmd
}

func runDecode(cmd *cobra.Command, path, code string) error {
	chunkType, err := png.ParseChunkType(code)
	if err != nil {
		return err
	}

	p, err := loadPNG(path)
	if err != nil {
		return err
	}

	chunk, ok := p.ChunkByType(chunkType.String())
	if !ok {
		return fmt.Errorf("%w: no %s chunk in %s", png.ErrChunkNotFound, chunkType, path)
	}

	message, err := chunk.DataString()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Message: %s\n", message)
	return nil
}
