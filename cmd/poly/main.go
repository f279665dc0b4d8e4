package main

import "polylith/internal/cli"

func main() {
	cli.Execute()
}
