package main

import "github.com/julienpequegnot/rssgen/cmd"

func main() {
	cmd.Execute()
}
