package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"
	"github.com/zhengshuai-xiao/pngmsg/internal"
)

var logger = internal.GetLogger("pngmsg_cmd")

func Main(args []string) error {
	return run(newApp(os.Stdout), args)
}

func newApp(w io.Writer) *cli.App {
	cli.VersionFlag = &cli.BoolFlag{
		Name: "version", Aliases: []string{"V"},
		Usage: "print version only",
	}
	return &cli.App{
		Name:                 "pngmsg",
		Usage:                "Hide, find and strip messages in PNG files.",
		Version:              internal.Version(),
		Copyright:            "Apache License 2.0",
		HideHelpCommand:      true,
		EnableBashCompletion: true,
		Writer:               w,
		Flags:                globalFlags(),
		Before: func(c *cli.Context) error {
			conf, err := configFromContext(c)
			if err != nil {
				return err
			}
			return setupLogger(conf)
		},
		Commands: []*cli.Command{
			cmdEncode(),
			cmdDecode(),
			cmdRemove(),
			cmdPrint(),
		},
	}
}

func run(app *cli.App, args []string) error {
	newArgs, err := reorderOptions(app, args)
	if err != nil {
		return err
	}
	err = app.Run(newArgs)
	if errno, ok := err.(syscall.Errno); ok && errno == 0 {
		err = nil
	}
	return err
}

// reorderOptions moves global flags in front of the command so they may be
// given anywhere on the command line.
func reorderOptions(app *cli.App, args []string) ([]string, error) {
	var newArgs = []string{args[0]}
	var others []string
	globalFlags := append(app.Flags, cli.VersionFlag)
	for i := 1; i < len(args); i++ {
		option := args[i]
		if option == "--" {
			others = append(others, args[i:]...)
			break
		}
		if ok, hasValue := isFlag(globalFlags, option); ok {
			newArgs = append(newArgs, option)
			if hasValue {
				i++
				if i >= len(args) {
					return nil, fmt.Errorf("option %s requires value", option)
				}
				newArgs = append(newArgs, args[i])
			}
		} else {
			others = append(others, option)
		}
	}
	// no command
	if len(others) == 0 {
		return newArgs, nil
	}
	cmdName := others[0]
	var cmd *cli.Command
	for _, c := range app.Commands {
		if c.HasName(cmdName) {
			cmd = c
			break
		}
	}
	if cmd == nil {
		// can't recognize the command, let cli report it
		return append(newArgs, others...), nil
	}

	newArgs = append(newArgs, cmdName)
	args, others = others[1:], nil
	// -h is valid for all the commands
	cmdFlags := append(cmd.Flags, cli.HelpFlag)
	for i := 0; i < len(args); i++ {
		option := args[i]
		if option == "--" {
			// flag parsing only drops "--" where a flag may appear
			newArgs = append(newArgs, "--")
			others = append(others, args[i+1:]...)
			break
		}
		if ok, hasValue := isFlag(cmdFlags, option); ok {
			newArgs = append(newArgs, option)
			if hasValue && len(args[i+1:]) > 0 {
				i++
				newArgs = append(newArgs, args[i])
			}
		} else {
			if strings.HasPrefix(option, "-") && option != "-" && !internal.StringContains(args, "--generate-bash-completion") {
				return nil, fmt.Errorf("unknown option: %s", option)
			}
			others = append(others, option)
		}
	}
	return append(newArgs, others...), nil
}

func isFlag(flags []cli.Flag, option string) (bool, bool) {
	if !strings.HasPrefix(option, "-") {
		return false, false
	}
	// --V or -v work the same
	option = strings.TrimLeft(option, "-")
	for _, flag := range flags {
		_, isBool := flag.(*cli.BoolFlag)
		for _, name := range flag.Names() {
			if option == name || strings.HasPrefix(option, name+"=") {
				return true, !isBool && !strings.Contains(option, "=")
			}
		}
	}
	return false, false
}
