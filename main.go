package main

import "github.com/faizan/stadium/cmd"

func main() {
	cmd.Execute()
}
