// Package scripts embeds the goose SQL migrations so the binary can migrate
// without the source tree.
package scripts

import "embed"

//go:embed *.sql
var FS embed.FS
