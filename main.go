package main

import "github.com/catenarytools/sagtension/cmd"

func main() {
	cmd.Execute()
}
