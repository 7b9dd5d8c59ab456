package main

import (
	"os"

	"github.com/FACorreiaa/penny-ledger/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
