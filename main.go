package main

import "github.com/user/nikto-adapter/cmd"

func main() {
	cmd.Execute()
}
