package main

import "news_reader/internal/cmd"

func main() {
	cmd.Execute()
}
