package main

import "github.com/mahmoudkheyrati/cpu-scheduler/cmd"

func main() {
	cmd.Execute()
}
