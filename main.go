package main

import "wtw/cmd"

func main() {
	cmd.Execute()
}
