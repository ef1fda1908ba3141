package main

import (
	"os"

	"github.com/mna/mainer"

	"github.com/mna/ippcode23/internal/maincmd"
)

func main() {
	c := maincmd.Cmd{}
	os.Exit(c.Main(os.Args, mainer.CurrentStdio()))
}
