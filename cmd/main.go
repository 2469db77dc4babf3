package main

import "github.com/cppmaven/singularity/cmd/cli"

func main() {
	cli.Execute()
}
