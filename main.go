package main

import "bucketeer/cmd"

func main() {
	cmd.Execute()
}
