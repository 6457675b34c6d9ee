package main

import (
	"github.com/myatmin/twodlive/internal/cli"
)

func main() {
	cli.Execute()
}
