package main

import (
	"bd2switch/internal/cli"
)

func main() {
	cli.Execute()
}
