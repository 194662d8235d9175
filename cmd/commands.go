package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
	"github.com/zhengshuai-xiao/pngmsg/internal/compression"
	"github.com/zhengshuai-xiao/pngmsg/pkg/steg"
	"github.com/zhengshuai-xiao/pngmsg/pkg/store"
)

const locationHelp = `
FILE is a local path, file:///path, s3://bucket/key or redis://[:password@]host:port[/db]/key.
S3 locations use --s3-* flags (or MINIO_ROOT_USER / MINIO_ROOT_PASSWORD).`

// withService builds the store and service from the global flags for one
// command and releases the backends afterwards.
func withService(c *cli.Context, fn func(*steg.Service) error) error {
	conf, err := configFromContext(c)
	if err != nil {
		return err
	}
	compressor, err := compression.GetCompressorViaString(conf.Compression)
	if err != nil {
		return fmt.Errorf("compression %q: %w", conf.Compression, err)
	}
	router := store.NewRouter(conf)
	defer func() {
		if err := router.Close(); err != nil {
			logger.Warnf("failed to close store: %v", err)
		}
	}()
	return fn(steg.New(router, compressor))
}

func checkArgs(c *cli.Context, min, max int) error {
	if n := c.Args().Len(); n < min || n > max {
		cli.ShowSubcommandHelp(c)
		if min == max {
			return fmt.Errorf("%s expects %d arguments, got %d", c.Command.Name, min, n)
		}
		return fmt.Errorf("%s expects %d to %d arguments, got %d", c.Command.Name, min, max, n)
	}
	return nil
}

func cmdEncode() *cli.Command {
	return &cli.Command{
		Name:        "encode",
		Usage:       "Encode a message into a PNG file",
		ArgsUsage:   "FILE TYPE MESSAGE [OUTPUT]",
		Description: "Appends a chunk of TYPE (4 ASCII letters) holding MESSAGE. The result goes to OUTPUT, or back to FILE." + locationHelp,
		Action: func(c *cli.Context) error {
			if err := checkArgs(c, 3, 4); err != nil {
				return err
			}
			req := steg.EncodeRequest{
				Input:   c.Args().Get(0),
				Tag:     c.Args().Get(1),
				Message: c.Args().Get(2),
				Output:  c.Args().Get(3),
			}
			return withService(c, func(svc *steg.Service) error {
				if _, err := svc.Encode(c.Context, req); err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, "Successfully encoded message in PNG file.")
				return nil
			})
		},
	}
}

func cmdDecode() *cli.Command {
	return &cli.Command{
		Name:        "decode",
		Usage:       "Decode a message contained in a PNG file",
		ArgsUsage:   "FILE TYPE",
		Description: "Prints the message held by the first chunk of TYPE." + locationHelp,
		Action: func(c *cli.Context) error {
			if err := checkArgs(c, 2, 2); err != nil {
				return err
			}
			return withService(c, func(svc *steg.Service) error {
				msg, err := svc.Decode(c.Context, c.Args().Get(0), c.Args().Get(1))
				if err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "Found! Message:\n\t%s\n", msg)
				return nil
			})
		},
	}
}

func cmdRemove() *cli.Command {
	return &cli.Command{
		Name:        "remove",
		Usage:       "Remove a message from a PNG file",
		ArgsUsage:   "FILE TYPE",
		Description: "Strips the first chunk of TYPE and writes FILE back in place." + locationHelp,
		Action: func(c *cli.Context) error {
			if err := checkArgs(c, 2, 2); err != nil {
				return err
			}
			return withService(c, func(svc *steg.Service) error {
				if _, err := svc.Remove(c.Context, c.Args().Get(0), c.Args().Get(1)); err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, "Successfully removed chunk from PNG file.")
				return nil
			})
		},
	}
}

func cmdPrint() *cli.Command {
	return &cli.Command{
		Name:        "print",
		Aliases:     []string{"inspect"},
		Usage:       "Print the chunks of a PNG file",
		ArgsUsage:   "FILE",
		Description: "Lists every chunk in file order." + locationHelp,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "print every chunk in its full diagnostic form",
			},
		},
		Action: func(c *cli.Context) error {
			if err := checkArgs(c, 1, 1); err != nil {
				return err
			}
			return withService(c, func(svc *steg.Service) error {
				report, err := svc.Inspect(c.Context, c.Args().Get(0))
				if err != nil {
					return err
				}
				if c.Bool("raw") {
					fmt.Fprintln(c.App.Writer, report.Raw)
					return nil
				}
				return printReport(c, report)
			})
		},
	}
}

func printReport(c *cli.Context, report *steg.Report) error {
	w := c.App.Writer
	fmt.Fprintf(w, "%s: %d chunks, %d bytes\n", report.Location, len(report.Chunks), report.Size)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tTYPE\tLENGTH\tCRC\tCRITICAL\tPUBLIC\tSAFE-TO-COPY\tVALID")
	for _, info := range report.Chunks {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%08x\t%t\t%t\t%t\t%t\n",
			info.Index, info.Type, info.Length, info.CRC, info.Critical, info.Public, info.SafeToCopy, info.Valid)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "types: %v\n", report.Tags.Elements())
	return nil
}
