package main

import (
	"EmojiFM/cmd"
)

func main() {
	cmd.Execute()
}
