package scenario

import "embed"

//go:embed scenarios/*.yaml
var builtin embed.FS
