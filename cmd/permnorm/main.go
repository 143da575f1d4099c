package main

import (
	"os"

	"github.com/lucas-albers-lz4/permnorm/pkg/exitcodes"
	log "github.com/lucas-albers-lz4/permnorm/pkg/log"
)

func main() {
	os.Exit(run())
}

// run executes the command tree and returns the process exit code. Errors
// are logged together with the meaning of their exit code.
func run() int {
	err := Execute()
	if err == nil {
		return exitcodes.ExitSuccess
	}
	code := exitcodes.CodeFor(err)
	log.Error(err.Error(), "exit_code", code, "reason", exitcodes.CodeDescriptions[code])
	return code
}
