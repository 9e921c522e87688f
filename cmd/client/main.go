package main

import "seabattle/internal/cli"

func main() {
	cli.Execute()
}
