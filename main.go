package main

import "github.com/Norgate-AV-Solutions-Ltd/genlinx/cmd"

func main() {
	cmd.Execute()
}
