package main

import "github.com/yasskadd/Scrabble-sub001/internal/cli"

func main() {
	cli.Execute()
}
