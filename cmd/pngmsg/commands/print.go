package commands

import (
	_ "crypto/sha256"
	"fmt"
	"io"
	"strconv"

	"github.com/docker/go-units"
	"github.com/docker/pngmsg/internal/utils"
	"github.com/docker/pngmsg/pkg/png"
	"github.com/docker/pngmsg/pkg/pngfile"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/opencontainers/go-digest"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentReads bounds how many files print loads at once.
const maxConcurrentReads = 4

type printOptions struct {
	showData bool
}

// inspected is one parsed file ready for display.
type inspected struct {
	path   string
	size   int
	digest digest.Digest
	png    *png.PNG
}

func newPrintCmd() *cobra.Command {
	var opts printOptions

	cmd := &cobra.Command{
		Use:     "print PATH...",
		Aliases: []string{"ls"},
		Short:   "List the chunks of PNG files",
		Long: `List every chunk of each PNG with its length, CRC and type flags.

Examples:
  pngmsg print cat.png
  pngmsg print --data cat.png dog.png`,
		Args: requireArgRange(1, -1, "print", "at least one PATH"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrint(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.showData, "data", false, "Show a preview of each chunk's data")
	return cmd
}

func runPrint(cmd *cobra.Command, paths []string, opts printOptions) error {
	files := make([]inspected, len(paths))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(maxConcurrentReads)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := pngfile.Read(path)
			if err != nil {
				return err
			}
			p, err := png.Parse(data)
			if err != nil {
				return errors.Wrapf(err, "parsing %s", path)
			}
			files[i] = inspected{
				path:   path,
				size:   len(data),
				digest: digest.FromBytes(data),
				png:    p,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, f := range files {
		if i > 0 {
			fmt.Fprintln(out)
		}
		log.Debugf("rendering %d chunks", len(f.png.Chunks()))
		renderFile(out, f, opts)
	}
	return nil
}

func renderFile(out io.Writer, f inspected, opts printOptions) {
	chunks := f.png.Chunks()
	title := color.New(color.Bold).Sprint(f.path)
	fmt.Fprintf(out, "%s: %d chunks, %s, %s\n", title, len(chunks), units.HumanSize(float64(f.size)), f.digest)

	header := []string{"#", "TYPE", "LENGTH", "CRC", "CRITICAL", "PUBLIC", "SAFE TO COPY"}
	if opts.showData {
		header = append(header, "DATA")
	}
	table := tablewriter.NewTable(out,
		tablewriter.WithHeader(header),
	)

	for i, c := range chunks {
		t := c.Type()
		row := []string{
			strconv.Itoa(i),
			t.String(),
			strconv.FormatUint(uint64(c.Length()), 10),
			fmt.Sprintf("%08x", c.CRC()),
			yesNo(t.IsCritical()),
			yesNo(t.IsPublic()),
			yesNo(t.IsSafeToCopy()),
		}
		if opts.showData {
			row = append(row, utils.Preview(c.Data(), utils.DefaultPreviewLength))
		}
		table.Append(row)
	}

	table.Render()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
