package main

import (
	"context"
	"log"
	"os"

	"github.com/ChainSafe/tvm-asm/cmd"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()
	app.Name = os.Args[0]
	app.Usage = "TVM Assembly Parser"
	app.Description = "TVM Assembly Parser"
	app.Commands = []*cli.Command{
		cmd.CheckCommand,
		cmd.DumpCommand,
	}
	err := app.RunContext(context.Background(), os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
