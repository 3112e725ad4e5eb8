package main

import (
	"os"

	"github.com/Iron-Ham/taskroster/internal/cmd"
	"github.com/Iron-Ham/taskroster/internal/exitcode"
)

func main() {
	os.Exit(exitcode.For(cmd.Execute()))
}
