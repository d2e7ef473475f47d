package main

import (
	"newsmerge/cmd"
)

func main() {
	cmd.Execute()
}
