package main

import (
	"github.com/framestamp/framestamp/cmd/framestamp/cmd"
)

func main() {
	cmd.Execute()
}
