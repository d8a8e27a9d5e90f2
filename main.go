package main

import "github.com/Rostislav62/alppass/cmd"

func main() {
	cmd.Execute()
}
