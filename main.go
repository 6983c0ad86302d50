package main

import "objectsync/cmd"

func main() {
	cmd.Execute()
}
