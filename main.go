package main

import "github.com/HaiFongPan/dirnav/cmd"

func main() {
	cmd.Execute()
}
