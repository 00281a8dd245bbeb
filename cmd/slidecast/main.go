package main

import "slidecast/internal/cli"

func main() {
	cli.Execute()
}
