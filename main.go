package main

import "note-cache/cli"

func main() {
	cli.Execute()
}
