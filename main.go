package main

import "github.com/pfrederiksen/six-degrees/cmd"

func main() {
	cmd.Execute()
}
