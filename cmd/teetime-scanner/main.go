package main

import "github.com/pfrederiksen/teetime-scanner/internal/cli"

func main() {
	cli.Execute()
}
