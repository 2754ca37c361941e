package main

import (
	"github.com/DrSkyle/coactor/cmd/coactor/commands"
)

func main() {
	commands.Execute()
}
