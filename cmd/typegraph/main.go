package main

import (
	"fmt"
	"os"

	"github.com/roach88/typegraph/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Commands print their own error output; here we only map the
		// error to an exit code.
		code := cli.GetExitCode(err)
		if code == cli.ExitSuccess {
			code = cli.ExitFailure
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(code)
	}
}
