package main

import "github.com/KaramelBytes/movietrends/cmd"

func main() {
	cmd.Execute()
}
