package main

import (
	"context"
	"os"

	"github.com/ardnew/tsub/cli"
	"github.com/ardnew/tsub/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}
