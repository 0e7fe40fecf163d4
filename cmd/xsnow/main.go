// Command xsnow shows a winter scene in a window or a terminal.
package main

import "github.com/phanxgames/xsnow/cmd"

func main() {
	cmd.Execute()
}
