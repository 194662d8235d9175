package main

import (
	"fmt"
	"os"

	"github.com/zhengshuai-xiao/pngmsg/cmd"
)

func main() {
	if err := cmd.Main(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
