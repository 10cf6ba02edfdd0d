package main

import (
	"fmt"
	"os"

	"github.com/thomiceli/gists-gone/internal/cli"
)

func main() {
	if err := cli.App(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
