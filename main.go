package main

import "github.com/ValentinKolb/atomstore/cmd"

func main() {
	cmd.Execute()
}
