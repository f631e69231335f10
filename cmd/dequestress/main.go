package main

import (
	"os"

	dequestress "github.com/vkngwrapper/arsenal/deque/cmd/dequestress/command"
)

func main() {
	err := execute(nil)
	if err != nil {
		os.Exit(1)
	}
	os.Exit(0)
}

func execute(args []string) error {
	cmd := dequestress.NewCmd()
	if args != nil {
		cmd.SetArgs(args)
	}
	return cmd.Execute()
}
