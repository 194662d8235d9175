package internal

import "fmt"

// Set through -ldflags "-X github.com/zhengshuai-xiao/pngmsg/internal.version=...".
var (
	version  = "0.1.0"
	revision = "dev"
)

func Version() string {
	return fmt.Sprintf("%s+%s", version, revision)
}
