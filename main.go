package main

import "github.com/scienceol/displayidle/cmd"

func main() {
	cmd.Execute()
}
