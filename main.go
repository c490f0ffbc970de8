package main

import "github.com/lepinkainen/gcdtalker/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
