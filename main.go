package main

import "github.com/chrisdamba/takeaway/cmd"

func main() {
	cmd.Execute()
}
