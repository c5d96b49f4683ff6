// Command bookstore runs the line-command bookstore management tool.
package main

import (
	"os"

	"bookstore/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
