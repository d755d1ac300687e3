package commands

import (
	"github.com/docker/pngmsg/pkg/png"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newRemoveCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "remove PATH CHUNK_TYPE",
		Aliases: []string{"rm"},
		Short:   "Remove a chunk",
		Long: `Remove the first CHUNK_TYPE chunk from the PNG at PATH.

The file is rewritten in place unless --output is given.

Examples:
  pngmsg remove secret.png ruSt
  pngmsg rm secret.png ruSt -o clean.png`,
		Args: requireExactArgs(2, "remove", "PATH CHUNK_TYPE"),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := outputPath(cmd, args[0], "", output)
			if err != nil {
				return err
			}
			return runRemove(cmd, args[0], args[1], out)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the result to this file instead of PATH")
	return cmd
}

func runRemove(cmd *cobra.Command, path, code, output string) error {
	chunkType, err := png.ParseChunkType(code)
	if err != nil {
		return err
	}

	p, err := loadPNG(path)
	if err != nil {
		return err
	}

	removed, err := p.RemoveChunk(chunkType.String())
	if err != nil {
		return errors.Wrapf(err, "removing from %s", path)
	}

	if err := savePNG(output, p); err != nil {
		return err
	}
	cmd.Printf("Removed %s chunk (%d bytes) from %s\n", chunkType, removed.Length(), output)
	return nil
}
