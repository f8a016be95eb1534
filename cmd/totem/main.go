package main

import "github.com/totem-project/totem/cmd"

func main() {
	cmd.Execute()
}
