package main

import "github.com/andrescamacho/ti-habitat-planner/internal/adapters/cli"

func main() {
	cli.Execute()
}
