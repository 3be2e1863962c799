package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"

	"github.com/RinpoStk/fmod/internal/session"
	"github.com/RinpoStk/fmod/internal/shell"
)

func main() {
	app := &cli.App{
		Name:      "fmod",
		Usage:     "an interactive shell for reading and writing a FAT32 disk image",
		Version:   "0.1.0",
		ArgsUsage: "IMAGE",
		Action:    run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
		os.Exit(0)
	}
}

// run opens the named image and drives the interactive shell until exit or
// EOF. Per spec.md §6, a missing or malformed argument prints usage and
// still exits 0 rather than returning a nonzero status.
func run(c *cli.Context) error {
	if c.Args().Len() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s IMAGE\n", c.App.Name)
		return nil
	}

	logrus.SetLevel(logrus.WarnLevel)

	s, err := session.Open(afero.NewOsFs(), c.Args().Get(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
		return nil
	}
	defer s.CloseImage()

	shell.Run(s, os.Stdin, os.Stdout)
	return nil
}
