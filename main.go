package main

import "github.com/FluidXR/sinodroid/cmd"

func main() {
	cmd.Execute()
}
